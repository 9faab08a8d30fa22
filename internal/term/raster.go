package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/vusic/internal/engine"
	"github.com/iburimskiy/vusic/internal/render"
)

// ramp orders glyphs from faint to dense.
var ramp = []rune(" .:-=+*#%@")

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2

// Canvas accumulates particle light per cell before it is drawn.
type Canvas struct {
	Cols, Rows int
	light      []float64
	hue        []float64
	camera     render.Camera
	sprites    []render.Sprite
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	c.Cols, c.Rows = cols, rows
	c.light = make([]float64, cols*rows)
	c.hue = make([]float64, cols*rows)
	// the camera sees square pixels, each cell is cellAspect of them tall
	c.camera = render.NewCamera(cols, rows*cellAspect)
}

func (c *Canvas) Clear() {
	clear(c.light)
	clear(c.hue)
}

// Add splats one particle set. Each particle adds its opacity to the cell it
// lands in, weighted by its projected size.
func (c *Canvas) Add(positions []float64, rot engine.Rotation, off engine.Vec3, m engine.Material) {
	if m.Opacity <= 0 || c.Cols == 0 || c.Rows == 0 {
		return
	}
	c.sprites = c.camera.Sprites(c.sprites[:0], positions, rot, off, m.Size)
	for _, s := range c.sprites {
		col := int(math.Floor(s.X))
		row := int(math.Floor(s.Y / cellAspect))
		if col < 0 || col >= c.Cols || row < 0 || row >= c.Rows {
			continue
		}
		i := row*c.Cols + col
		w := m.Opacity * math.Min(0.25+s.Radius, 1)
		// keep the hue of whichever set dominates the cell
		if w >= c.light[i] {
			c.hue[i] = m.Hue
		}
		c.light[i] += w
	}
}

// Glyph returns the character and brightness for a cell.
func (c *Canvas) Glyph(col, row int) (rune, float64) {
	v := math.Min(c.light[row*c.Cols+col]/2, 1)
	idx := int(math.Round(v * float64(len(ramp)-1)))
	return ramp[idx], v
}

// Draw writes the canvas to screen using saturation and lightness from m.
func (c *Canvas) Draw(screen tcell.Screen, m engine.Material) {
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			ch, v := c.Glyph(col, row)
			if ch == ' ' {
				continue
			}
			mat := m
			mat.Hue = c.hue[row*c.Cols+col]
			mat.Opacity = 1
			rgb := render.Scale(render.MaterialColor(mat), 0.4+0.6*v)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
			screen.SetContent(col, row, ch, nil, style)
		}
	}
}
