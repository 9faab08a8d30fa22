package engine

import (
	"math"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/shape"
)

const (
	// Pointer repulsion only acts while mostly scattered.
	repelCutoff   = 0.9
	repelRadius   = 7.0
	repelStrength = 2.0

	// Below this eased gather the cloud idles instead of reacting to audio.
	idleCutoff    = 0.01
	idleAmplitude = 0.2
	idleScale     = 0.05
	idleTimeScale = 0.2

	noiseBaseAmp  = 0.3
	noiseBaseFreq = 0.3
	noiseMidFreq  = 1.5
	noiseTimeRate = 0.5

	spikeMinHigh = 0.3
	spikeChance  = 0.05
	spikeGain    = 1.5
)

// updateParticles writes the final position of every particle into
// e.positions.
func (e *Engine) updateParticles(target shape.PointSet, gather, morph float64, bands audio.Bands, s config.Settings, px, py float64) {
	var previous shape.PointSet
	if e.transition.Morphing() {
		previous = e.transition.Previous()
	}

	amp := noiseBaseAmp + bands.Bass*s.MorphingIntensity
	freq := noiseBaseFreq + bands.Mid*noiseMidFreq
	drift := e.time * noiseTimeRate
	idleTime := e.time * idleTimeScale
	spiking := bands.High > spikeMinHigh

	for i := 0; i < e.count; i++ {
		i3 := i * 3
		sx, sy, sz := e.scatter[i3], e.scatter[i3+1], e.scatter[i3+2]
		tx, ty, tz := target[i3], target[i3+1], target[i3+2]

		if previous != nil {
			ox, oy, oz := previous[i3], previous[i3+1], previous[i3+2]
			tx = ox + (tx-ox)*morph
			ty = oy + (ty-oy)*morph
			tz = oz + (tz-oz)*morph
		}

		bx := sx + (tx-sx)*gather
		by := sy + (ty-sy)*gather
		bz := sz + (tz-sz)*gather

		if gather < repelCutoff {
			dx := bx - px
			dy := by - py
			if distSq := dx*dx + dy*dy; distSq < repelRadius*repelRadius {
				d := math.Sqrt(distSq)
				force := (repelRadius - d) / repelRadius * repelStrength * (1 - gather)
				angle := math.Atan2(dy, dx)
				bx += math.Cos(angle) * force
				by += math.Sin(angle) * force
			}
		}

		length := math.Sqrt(bx*bx + by*by + bz*bz)
		var nx, ny, nz float64
		if length > 0 {
			nx, ny, nz = bx/length, by/length, bz/length
		}

		dist := length
		switch {
		case gather <= idleCutoff:
			dist += e.noise.Eval3(bx*idleScale+idleTime, by*idleScale, bz*idleScale) * idleAmplitude
		case s.EnableMorphing:
			n := e.noise.Eval3(nx*freq+drift, ny*freq+drift, nz*freq)
			var spike float64
			if spiking && e.rng.Float64() < spikeChance {
				spike = bands.High * spikeGain
			}
			dist += (n*amp + spike) * gather
		default:
			dist += bands.Bass * s.PulseIntensity * gather
		}

		e.positions[i3] = nx * dist
		e.positions[i3+1] = ny * dist
		e.positions[i3+2] = nz * dist
	}
}
