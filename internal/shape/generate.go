package shape

import (
	"math"
	"math/rand/v2"
)

// DefaultRadius replaces a zero or negative radius.
const DefaultRadius = 5.0

// PointSet is a flat x,y,z sequence, three values per particle.
type PointSet []float64

// Len returns the number of points in the set.
func (p PointSet) Len() int { return len(p) / 3 }

// At returns the coordinates of point i.
func (p PointSet) At(i int) (x, y, z float64) {
	i3 := i * 3
	return p[i3], p[i3+1], p[i3+2]
}

func (p PointSet) set(i int, x, y, z float64) {
	i3 := i * 3
	p[i3] = x
	p[i3+1] = y
	p[i3+2] = z
}

// Clone returns an independent copy of the set.
func (p PointSet) Clone() PointSet {
	out := make(PointSet, len(p))
	copy(out, p)
	return out
}

// Generate builds count points of the given kind scaled by radius.
// Stochastic kinds draw from rng; Sphere, DNA (except rungs) and Mobius
// ignore it.
func Generate(kind Kind, count int, radius float64, rng *rand.Rand) PointSet {
	if count <= 0 {
		return PointSet{}
	}
	if radius <= 0 || math.IsNaN(radius) {
		radius = DefaultRadius
	}

	switch kind {
	case Cube:
		return cubePoints(count, radius, rng)
	case Pyramid:
		return pyramidPoints(count, radius, rng)
	case Flower:
		return flowerPoints(count, radius, rng)
	case DNA:
		return dnaPoints(count, radius, rng)
	case Spiral:
		return spiralPoints(count, radius, rng)
	case Shell:
		return shellPoints(count, radius, rng)
	case Mobius:
		return mobiusPoints(count, radius)
	case Tree:
		return treePoints(count, radius, rng)
	default:
		return spherePoints(count, radius)
	}
}

// symmetric returns a uniform value in [-0.5, 0.5).
func symmetric(rng *rand.Rand) float64 {
	return rng.Float64() - 0.5
}

// spherePoints lays points on a Fibonacci lattice.
func spherePoints(count int, radius float64) PointSet {
	points := make(PointSet, count*3)
	golden := math.Pi * (3 - math.Sqrt(5))
	span := float64(max(count-1, 1))

	for i := 0; i < count; i++ {
		y := 1 - (float64(i)/span)*2
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := golden * float64(i)

		points.set(i, math.Cos(theta)*r*radius, y*radius, math.Sin(theta)*r*radius)
	}
	return points
}

func cubePoints(count int, half float64, rng *rand.Rand) PointSet {
	points := make(PointSet, count*3)

	for i := 0; i < count; i++ {
		face := rng.IntN(6)
		u := (rng.Float64()*2 - 1) * half
		v := (rng.Float64()*2 - 1) * half

		switch face {
		case 0:
			points.set(i, half, u, v)
		case 1:
			points.set(i, -half, u, v)
		case 2:
			points.set(i, u, half, v)
		case 3:
			points.set(i, u, -half, v)
		case 4:
			points.set(i, u, v, half)
		default:
			points.set(i, u, v, -half)
		}
	}
	return points
}

type vertex struct{ x, y, z float64 }

func pyramidPoints(count int, half float64, rng *rand.Rand) PointSet {
	points := make(PointSet, count*3)
	apex := vertex{0, half, 0}
	base := [4]vertex{
		{-half, -half, half},
		{half, -half, half},
		{half, -half, -half},
		{-half, -half, -half},
	}

	for i := 0; i < count; i++ {
		face := rng.IntN(4)
		v1 := base[face]
		v2 := base[(face+1)%4]

		// square-root barycentric keeps the density area-uniform
		s := math.Sqrt(rng.Float64())
		t := rng.Float64()
		a := 1 - s
		b := s * (1 - t)
		c := s * t

		points.set(i,
			v1.x*a+v2.x*b+apex.x*c,
			v1.y*a+v2.y*b+apex.y*c,
			v1.z*a+v2.z*b+apex.z*c,
		)
	}
	return points
}

func flowerPoints(count int, radius float64, rng *rand.Rand) PointSet {
	const (
		petals = 8
		layers = 8
	)
	points := make(PointSet, count*3)
	petalLength := radius * 0.7

	for i := 0; i < count; i++ {
		petal := i % petals
		layer := (i / petals) % layers

		// a share of the two innermost layers fills the core disc
		if layer < 2 && rng.Float64() > 0.7 {
			coreR := radius * 0.15 * rng.Float64()
			coreAngle := rng.Float64() * 2 * math.Pi
			points.set(i,
				math.Cos(coreAngle)*coreR,
				symmetric(rng)*radius*0.1,
				math.Sin(coreAngle)*coreR,
			)
			continue
		}

		angle := float64(petal) / petals * 2 * math.Pi
		phase := float64(layer) / layers
		layerRadius := radius * (0.2 + float64(layer)*0.1)

		petalAngle := angle + math.Sin(phase*2*math.Pi)*0.4
		wave := math.Cos(petalAngle*3)*0.2 + math.Sin(petalAngle*5)*0.1
		r := layerRadius + (wave+1)*petalLength*(0.3+phase*0.4)

		curve := math.Sin(phase*math.Pi) * radius * 0.4
		y := (phase-0.5)*radius*0.8 + curve

		points.set(i, math.Cos(angle)*r, y, math.Sin(angle)*r)
	}
	return points
}

func dnaPoints(count int, radius float64, rng *rand.Rand) PointSet {
	const turns = 4
	points := make(PointSet, count*3)
	height := radius * 4

	for i := 0; i < count; i++ {
		t := float64(i)/float64(count) - 0.5
		y := t * height

		if i%20 == 0 {
			// rung between the strands
			points.set(i, symmetric(rng)*radius*0.5, y, symmetric(rng)*radius*0.5)
			continue
		}

		angle := t * 2 * math.Pi * turns
		if i%2 == 1 {
			angle += math.Pi
		}
		points.set(i, math.Cos(angle)*radius, y, math.Sin(angle)*radius)
	}
	return points
}

func spiralPoints(count int, radius float64, rng *rand.Rand) PointSet {
	const (
		arms      = 5
		armSpread = 0.5
	)
	points := make(PointSet, count*3)

	for i := 0; i < count; i++ {
		t := float64(i) / float64(count)
		base := float64(i%arms) / arms * 2 * math.Pi
		angle := base + t*4*math.Pi

		r := t*radius + symmetric(rng)*radius*0.15*t
		angle += symmetric(rng) * armSpread

		points.set(i,
			math.Cos(angle)*r,
			symmetric(rng)*radius*0.1*t,
			math.Sin(angle)*r,
		)
	}
	return points
}

func shellPoints(count int, radius float64, rng *rand.Rand) PointSet {
	const rings = 3
	points := make(PointSet, count*3)
	perRing := count / rings

	index := 0
	for ring := 0; ring < rings; ring++ {
		n := perRing
		if ring == rings-1 {
			n = count - index
		}
		ringRadius := radius * (0.4 + float64(ring)*0.35)
		yOffset := float64(ring-1) * radius * 0.25

		for i := 0; i < n; i++ {
			angle := float64(i) / float64(n) * 2 * math.Pi
			r := ringRadius + rng.Float64()*ringRadius*0.08

			points.set(index,
				math.Cos(angle)*r,
				yOffset+symmetric(rng)*radius*0.05,
				math.Sin(angle)*r,
			)
			index++
		}
	}
	return points
}

func mobiusPoints(count int, radius float64) PointSet {
	points := make(PointSet, count*3)
	width := radius * 0.4

	for i := 0; i < count; i++ {
		u := float64(i) / float64(count) * 2 * math.Pi
		v := float64(i%20-10) / 10
		half := u / 2
		ring := radius + width*v*math.Cos(half)

		points.set(i, ring*math.Cos(u), width*v*math.Sin(half), ring*math.Sin(u))
	}
	return points
}

const (
	treeDepth     = 5
	treeBranches  = 1<<(treeDepth+1) - 1
	treeSpread    = 0.5
	treeLengthMul = 0.7
)

type treeBuilder struct {
	points  PointSet
	index   int
	perLimb int
	radius  float64
	rng     *rand.Rand
}

func (b *treeBuilder) branch(ox, oy, oz, length, angle float64, depth int) {
	if depth > treeDepth || b.index >= b.points.Len() {
		return
	}

	ex := ox + math.Sin(angle)*length
	ey := oy + math.Cos(angle)*length

	for i := 0; i < b.perLimb && b.index < b.points.Len(); i++ {
		t := float64(i) / float64(b.perLimb)
		b.points.set(b.index,
			ox+(ex-ox)*t,
			oy+(ey-oy)*t,
			oz+symmetric(b.rng)*b.radius*0.1,
		)
		b.index++
	}

	next := length * treeLengthMul
	b.branch(ex, ey, oz, next, angle+treeSpread, depth+1)
	b.branch(ex, ey, oz, next, angle-treeSpread, depth+1)
}

func treePoints(count int, radius float64, rng *rand.Rand) PointSet {
	b := &treeBuilder{
		points:  make(PointSet, count*3),
		perLimb: max(1, count/treeBranches),
		radius:  radius,
		rng:     rng,
	}
	b.branch(0, -radius, 0, radius*0.5, 0, 0)

	// leftover budget becomes foliage around the envelope
	for ; b.index < count; b.index++ {
		b.points.set(b.index,
			symmetric(rng)*radius,
			symmetric(rng)*radius*2,
			symmetric(rng)*radius,
		)
	}
	return b.points
}
