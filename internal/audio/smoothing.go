package audio

// Per-band smoothing coefficients; bass follows the signal fastest.
const (
	BassAlpha = 0.4
	MidAlpha  = 0.15
	HighAlpha = 0.1
)

// Smoother is an exponential moving average over Bands. The zero value
// starts from silence.
type Smoother struct {
	value Bands
}

// Update moves the smoothed value toward target by one step and returns it.
func (s *Smoother) Update(target Bands) Bands {
	s.value.Bass += (target.Bass - s.value.Bass) * BassAlpha
	s.value.Mid += (target.Mid - s.value.Mid) * MidAlpha
	s.value.High += (target.High - s.value.High) * HighAlpha
	return s.value
}

func (s *Smoother) Value() Bands { return s.value }
