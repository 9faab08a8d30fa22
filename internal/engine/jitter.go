package engine

import "math/rand/v2"

const (
	jitterGain = 1.5
	jitterDamp = 0.1
)

// Vec3 is a plain float64 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Jitter shakes the whole particle group on bass hits above a threshold
// and eases it back to the origin.
type Jitter struct {
	Offset Vec3
}

func (j *Jitter) Update(enabled bool, bass, threshold, intensity float64, rng *rand.Rand) {
	if enabled {
		if amp := (bass - threshold) * intensity * jitterGain; amp > 0 {
			j.Offset.X += (rng.Float64() - 0.5) * amp
			j.Offset.Y += (rng.Float64() - 0.5) * amp
			j.Offset.Z += (rng.Float64() - 0.5) * amp
		}
	}

	j.Offset.X -= j.Offset.X * jitterDamp
	j.Offset.Y -= j.Offset.Y * jitterDamp
	j.Offset.Z -= j.Offset.Z * jitterDamp
}
