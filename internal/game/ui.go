package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
	"github.com/iburimskiy/vusic/internal/render"
)

const (
	helpLine     = "Space play/pause  N/P shape  M morph  S shake  A auto  G glow  H hide  +/- radius  Q quit"
	controlsLine = "O open  [/] track  Up/Down volume  Tab select  Left/Right adjust"
)

func (g *Game) drawButton(screen *ebiten.Image) {
	var bg color.Color
	switch {
	case g.buttonPressed:
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.buttonHovered:
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bg, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open File"
	if g.dialogOpen {
		text = "Opening..."
	}
	textX := config.ButtonX + (config.ButtonWidth-len(text)*6)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	duration := g.player.Duration()
	if duration <= 0 {
		return
	}
	x, y, w, h := barRect()
	position := g.player.Position()
	progress := clamp01(float64(position) / float64(duration))

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	if progress > 0 {
		fill := render.MaterialColor(engine.Material{Hue: g.frame.Material.Hue, Saturation: 0.8, Lightness: 0.55, Opacity: 0.7})
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(progress*float64(w)), float32(h), fill, false)
	}

	indicatorX := float32(float64(x) + progress*float64(w))
	vector.DrawFilledCircle(screen, indicatorX, float32(y+h/2), 6, color.White, true)

	ebitenutil.DebugPrintAt(screen, formatDuration(position), x, y-18)
	total := formatDuration(duration)
	ebitenutil.DebugPrintAt(screen, total, x+w-len(total)*6, y-18)

	if g.barHovered {
		mouseX, _ := ebiten.CursorPosition()
		tip := formatDuration(time.Duration(barFraction(mouseX) * float64(duration)))
		ebitenutil.DebugPrintAt(screen, tip, mouseX-len(tip)*3, y-34)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	f := g.frame
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("shape %-8s radius %.1f  bass %.2f  mid %.2f  high %.2f",
		f.Shape, g.settings.SphereRadius, f.Bands.Bass, f.Bands.Mid, f.Bands.High), 12, 28)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("morph %v  shake %v  auto %v  fps %.0f",
		onOff(g.settings.EnableMorphing), onOff(g.settings.EnableShake), onOff(g.settings.AutoShapeSwitch), ebiten.ActualFPS()),
		config.ButtonX+config.ButtonWidth+16, config.ButtonY+12)
	ebitenutil.DebugPrintAt(screen, g.tuningLine(), 12, 44)
	ebitenutil.DebugPrintAt(screen, helpLine, 12, config.WindowHeight-config.BarMargin-config.BarHeight-74)
	ebitenutil.DebugPrintAt(screen, controlsLine, 12, config.WindowHeight-config.BarMargin-config.BarHeight-58)
}

// tuningLine shows the selected tunable, the volume and the playlist position.
func (g *Game) tuningLine() string {
	line := fmt.Sprintf("> %s  volume %d%%", config.Tunables[g.tunable].Describe(g.settings), int(g.player.Volume()*100+0.5))
	if names, current := g.player.Playlist(); len(names) > 1 {
		line += fmt.Sprintf("  track %d/%d", current+1, len(names))
	}
	return line
}

func (g *Game) drawIntro(screen *ebiten.Image) {
	msg := "Click anywhere or press Enter to begin"
	ebitenutil.DebugPrintAt(screen, msg, (config.WindowWidth-len(msg)*6)/2, config.WindowHeight/2-8)
}

func (g *Game) status() string {
	var status string
	switch {
	case !g.player.Loaded():
		status = "Open an audio file to start"
	case g.player.Paused():
		status = "Paused: " + g.player.Track()
	default:
		status = "Playing: " + g.player.Track()
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
