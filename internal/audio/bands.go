package audio

// Bin ranges of the byte spectrum feeding each band.
const (
	BassStart = 0
	BassEnd   = 20
	MidEnd    = 100
	HighEnd   = 500

	// MinSpectrumLen is the smallest spectrum Extract reads in full.
	MinSpectrumLen = 512
)

// Ceilings applied after normalization.
const (
	MaxBass = 2.0
	MaxMid  = 1.5
	MaxHigh = 1.5
)

// Bands holds the bass, mid and high energies of one spectrum sample.
type Bands struct {
	Bass float64
	Mid  float64
	High float64
}

// bassWeight falls linearly from 1.0 toward 0.5 across the bass bins.
func bassWeight(i int) float64 {
	return 1.0 - float64(i)/40
}

// bassNorm is the weighted bin count, so a full-scale bass region maps to 1.0.
var bassNorm = func() float64 {
	var sum float64
	for i := BassStart; i < BassEnd; i++ {
		sum += bassWeight(i)
	}
	return sum
}()

// Extract reduces a byte spectrum to normalized band energies.
// Bins past the end of a short spectrum count as zero, and an inactive
// source yields zero bands.
func Extract(spectrum []byte, sensitivity, bassBoost float64, active bool) Bands {
	if !active {
		return Bands{}
	}

	var bass, mid, high float64
	for i := BassStart; i < BassEnd && i < len(spectrum); i++ {
		bass += float64(spectrum[i]) * bassWeight(i)
	}
	for i := BassEnd; i < MidEnd && i < len(spectrum); i++ {
		mid += float64(spectrum[i])
	}
	for i := MidEnd; i < HighEnd && i < len(spectrum); i++ {
		high += float64(spectrum[i])
	}

	bass *= sensitivity
	mid *= sensitivity
	high *= sensitivity

	return Bands{
		Bass: clampBand(clampBand(bass/(bassNorm*255), MaxBass)*bassBoost, MaxBass),
		Mid:  clampBand(mid/((MidEnd-BassEnd)*255), MaxMid),
		High: clampBand(high/((HighEnd-MidEnd)*255), MaxHigh),
	}
}

func clampBand(v, ceiling float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
