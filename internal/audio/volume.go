package audio

import (
	"math"

	"github.com/faiface/beep/effects"
)

// DefaultVolume is the linear output level a new Player starts at.
const DefaultVolume = 0.5

// setLevel maps a linear level in [0,1] onto v, whose gain is Base^Volume.
// Zero silences the stream.
func setLevel(v *effects.Volume, level float64) {
	v.Base = 2
	if level <= 0 || math.IsNaN(level) {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(min(level, 1))
}

func clampLevel(level float64) float64 {
	if math.IsNaN(level) {
		return 0
	}
	return min(max(level, 0), 1)
}
