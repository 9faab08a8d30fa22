package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
)

// nearPlane drops points too close to or behind the camera.
const nearPlane = 0.1

// Camera is a perspective camera on the +z axis looking at the origin.
type Camera struct {
	Distance float64
	FOV      float64 // vertical, degrees

	Width, Height float64
}

func NewCamera(width, height int) Camera {
	return Camera{
		Distance: config.CameraDistance,
		FOV:      config.CameraFOV,
		Width:    float64(width),
		Height:   float64(height),
	}
}

func (c Camera) halfTan() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// focal is the screen-space scale at unit depth.
func (c Camera) focal() float64 {
	return c.Height / 2 / c.halfTan()
}

// Project maps a world point to screen coordinates. scale converts world
// lengths at that depth into pixels. ok is false behind the near plane.
func (c Camera) Project(p engine.Vec3) (x, y, scale float64, ok bool) {
	depth := c.Distance - p.Z
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	scale = c.focal() / depth
	return c.Width/2 + p.X*scale, c.Height/2 - p.Y*scale, scale, true
}

// Unproject casts a ray through screen point (sx, sy) and returns where it
// meets the z=0 plane.
func (c Camera) Unproject(sx, sy float64) (x, y float64) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0
	}
	ndcX := sx/c.Width*2 - 1
	ndcY := 1 - sy/c.Height*2
	h := c.halfTan() * c.Distance
	return ndcX * h * c.Width / c.Height, ndcY * h
}

// Rotate applies r to v in X, Y, Z Euler order: the Z rotation acts first.
func Rotate(v engine.Vec3, r engine.Rotation) engine.Vec3 {
	sz, cz := math.Sincos(r.Z)
	v = engine.Vec3{X: v.X*cz - v.Y*sz, Y: v.X*sz + v.Y*cz, Z: v.Z}

	sy, cy := math.Sincos(r.Y)
	v = engine.Vec3{X: v.X*cy + v.Z*sy, Y: v.Y, Z: -v.X*sy + v.Z*cy}

	sx, cx := math.Sincos(r.X)
	return engine.Vec3{X: v.X, Y: v.Y*cx - v.Z*sx, Z: v.Y*sx + v.Z*cx}
}

// Sprite is one projected particle.
type Sprite struct {
	X, Y   float64
	Depth  float64
	Radius float64 // pixels
}

// Sprites appends the sprites for a flat xyz buffer rotated by rot and moved
// by off, sorted back to front. size is the world-space point size.
func (c Camera) Sprites(dst []Sprite, positions []float64, rot engine.Rotation, off engine.Vec3, size float64) []Sprite {
	start := len(dst)
	for i := 0; i+2 < len(positions); i += 3 {
		p := Rotate(engine.Vec3{X: positions[i], Y: positions[i+1], Z: positions[i+2]}, rot)
		p.X += off.X
		p.Y += off.Y
		p.Z += off.Z

		x, y, scale, ok := c.Project(p)
		if !ok {
			continue
		}
		dst = append(dst, Sprite{
			X:      x,
			Y:      y,
			Depth:  c.Distance - p.Z,
			Radius: size * scale / 2,
		})
	}
	slices.SortFunc(dst[start:], func(a, b Sprite) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return dst
}
