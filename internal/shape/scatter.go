package shape

import (
	"math"
	"math/rand/v2"
)

// Scatter fills an axis-aligned cube of the given side centred on the origin.
func Scatter(count int, size float64, rng *rand.Rand) PointSet {
	points := make(PointSet, max(count, 0)*3)
	for i := 0; i < count; i++ {
		points.set(i, symmetric(rng)*size, symmetric(rng)*size, symmetric(rng)*size)
	}
	return points
}

// SphericalShell places points uniformly by direction at a distance drawn
// from [inner, outer).
func SphericalShell(count int, inner, outer float64, rng *rand.Rand) PointSet {
	points := make(PointSet, max(count, 0)*3)
	for i := 0; i < count; i++ {
		r := inner + rng.Float64()*(outer-inner)
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		points.set(i,
			r*math.Sin(phi)*math.Cos(theta),
			r*math.Sin(phi)*math.Sin(theta),
			r*math.Cos(phi),
		)
	}
	return points
}
