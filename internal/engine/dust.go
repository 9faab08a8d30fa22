package engine

import (
	"math"

	"github.com/iburimskiy/vusic/internal/shape"
)

// Dust is the ambient particle shell around the main cloud. Its points never
// move; only its material and rotation respond to the frame.
type Dust struct {
	Points   shape.PointSet
	Material Material
	Rotation Rotation
}

func NewDust(points shape.PointSet) *Dust {
	return &Dust{
		Points:   points,
		Material: Material{Saturation: 0.8, Lightness: 0.8},
	}
}

// Update fades the layer in over the second half of the gather, breathes its
// hue around the theme and sparkles its size on the high band.
func (d *Dust) Update(gather, simTime, high, baseHue, particleSize, rotationSpeed float64) {
	if gather <= 0.5 {
		d.Material.Opacity = 0
		return
	}

	d.Material.Opacity = (gather - 0.5) * 2 * 0.5
	breathe := math.Sin(simTime*0.5) * 0.1
	d.Material.Hue = wrapUnit(baseHue + 0.1 + breathe)
	d.Material.Size = (0.15 + high*0.2) * particleSize

	d.Rotation.Y += rotationSpeed * 0.005
	d.Rotation.X = math.Sin(simTime*0.1) * 0.05
}

// wrapUnit folds v into [0,1).
func wrapUnit(v float64) float64 {
	return v - math.Floor(v)
}
