package audio

// Provider supplies the latest spectrum and playback flags once per frame.
type Provider interface {
	// FillFrequencyData writes byte magnitudes into buf. Without active
	// audio the buffer is zero-filled.
	FillFrequencyData(buf []byte)
	IsPlaying() bool
	HasBeenActivated() bool
}

// Silence is a Provider that never produces sound.
type Silence struct {
	Activated bool
}

func (s *Silence) FillFrequencyData(buf []byte) { clear(buf) }
func (s *Silence) IsPlaying() bool              { return false }
func (s *Silence) HasBeenActivated() bool       { return s.Activated }
