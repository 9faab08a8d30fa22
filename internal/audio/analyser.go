package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyser defaults, matching the usual browser analyser node setup.
const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.85
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Analyser turns a window of mono samples into a byte magnitude spectrum:
// Blackman window, real FFT, temporal smoothing, then a linear map of the
// [MinDecibels, MaxDecibels] range onto 0..255.
type Analyser struct {
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64

	size     int
	fft      *fourier.FFT
	window   []float64
	windowed []float64
	coeffs   []complex128
	smoothed []float64
}

// NewAnalyser creates an analyser for size-sample windows. size should be a
// power of two; it yields size/2 spectrum bins.
func NewAnalyser(size int) *Analyser {
	if size < 2 {
		size = DefaultFFTSize
	}
	a := &Analyser{
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
		size:        size,
		fft:         fourier.NewFFT(size),
		window:      make([]float64, size),
		windowed:    make([]float64, size),
		coeffs:      make([]complex128, size/2+1),
		smoothed:    make([]float64, size/2),
	}

	const a0, a1, a2 = 0.42, 0.5, 0.08
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / float64(size)
		a.window[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return a
}

// Size is the FFT window length in samples.
func (a *Analyser) Size() int { return a.size }

// Bins is the number of spectrum bins produced per call.
func (a *Analyser) Bins() int { return a.size / 2 }

// Reset drops the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
}

// Process analyses samples (zero-padded or truncated to Size, newest last)
// and writes byte magnitudes into dst. Entries past Bins are zeroed.
func (a *Analyser) Process(samples []float64, dst []byte) {
	offset := 0
	if len(samples) > a.size {
		offset = len(samples) - a.size
	}
	for i := range a.windowed {
		var v float64
		if j := offset + i; j < len(samples) {
			v = samples[j]
		}
		a.windowed[i] = v * a.window[i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.windowed)

	span := a.MaxDecibels - a.MinDecibels
	n := float64(a.size)
	for k := range dst {
		if k >= len(a.smoothed) {
			dst[k] = 0
			continue
		}
		c := a.coeffs[k]
		mag := math.Hypot(real(c), imag(c)) / n
		a.smoothed[k] = a.Smoothing*a.smoothed[k] + (1-a.Smoothing)*mag

		if a.smoothed[k] <= 0 || span <= 0 {
			dst[k] = 0
			continue
		}
		db := 20 * math.Log10(a.smoothed[k])
		scaled := 255 * (db - a.MinDecibels) / span
		switch {
		case scaled <= 0:
			dst[k] = 0
		case scaled >= 255:
			dst[k] = 255
		default:
			dst[k] = byte(scaled)
		}
	}
}
