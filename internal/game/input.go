package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/vusic/internal/config"
)

type action int

const (
	actionPause action = iota
	actionNextShape
	actionPrevShape
	actionMorphing
	actionShake
	actionAutoSwitch
	actionImmersive
	actionGrow
	actionShrink
	actionNextTunable
	actionTuneUp
	actionTuneDown
	actionGlow
	actionVolumeUp
	actionVolumeDown
	actionNextTrack
	actionPrevTrack
	actionOpen
	actionQuit
)

const volumeStep = 0.05

var keyBindings = []struct {
	keys   []ebiten.Key
	action action
}{
	{[]ebiten.Key{ebiten.KeySpace}, actionPause},
	{[]ebiten.Key{ebiten.KeyN}, actionNextShape},
	{[]ebiten.Key{ebiten.KeyP}, actionPrevShape},
	{[]ebiten.Key{ebiten.KeyM}, actionMorphing},
	{[]ebiten.Key{ebiten.KeyS}, actionShake},
	{[]ebiten.Key{ebiten.KeyA}, actionAutoSwitch},
	{[]ebiten.Key{ebiten.KeyH}, actionImmersive},
	{[]ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}, actionGrow},
	{[]ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}, actionShrink},
	{[]ebiten.Key{ebiten.KeyTab}, actionNextTunable},
	{[]ebiten.Key{ebiten.KeyArrowRight}, actionTuneUp},
	{[]ebiten.Key{ebiten.KeyArrowLeft}, actionTuneDown},
	{[]ebiten.Key{ebiten.KeyG}, actionGlow},
	{[]ebiten.Key{ebiten.KeyArrowUp}, actionVolumeUp},
	{[]ebiten.Key{ebiten.KeyArrowDown}, actionVolumeDown},
	{[]ebiten.Key{ebiten.KeyBracketRight, ebiten.KeyPeriod}, actionNextTrack},
	{[]ebiten.Key{ebiten.KeyBracketLeft, ebiten.KeyComma}, actionPrevTrack},
	{[]ebiten.Key{ebiten.KeyO}, actionOpen},
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, actionQuit},
}

func pressedActions() []action {
	var out []action
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				out = append(out, b.action)
				break
			}
		}
	}
	return out
}

// apply performs a keyboard action against the settings or the player.
func (g *Game) apply(a action) {
	s := &g.settings
	switch a {
	case actionPause:
		g.player.TogglePause()
	case actionNextShape:
		s.VisualShape = g.engine.State().Shape.Next()
	case actionPrevShape:
		s.VisualShape = g.engine.State().Shape.Prev()
	case actionMorphing:
		s.EnableMorphing = !s.EnableMorphing
	case actionShake:
		s.EnableShake = !s.EnableShake
	case actionAutoSwitch:
		s.AutoShapeSwitch = !s.AutoShapeSwitch
		log.Printf("auto shape switch: %v", s.AutoShapeSwitch)
	case actionImmersive:
		s.EnableImmersive = !s.EnableImmersive
	case actionGrow:
		s.SphereRadius = config.SphereRadiusRange.Clamp(s.SphereRadius + config.RadiusStep)
	case actionShrink:
		s.SphereRadius = config.SphereRadiusRange.Clamp(s.SphereRadius - config.RadiusStep)
	case actionNextTunable:
		g.tunable = (g.tunable + 1) % len(config.Tunables)
	case actionTuneUp:
		config.Tunables[g.tunable].Adjust(s, 1)
	case actionTuneDown:
		config.Tunables[g.tunable].Adjust(s, -1)
	case actionGlow:
		s.UseHighQualityTexture = !s.UseHighQualityTexture
	case actionVolumeUp:
		g.player.SetVolume(g.player.Volume() + volumeStep)
	case actionVolumeDown:
		g.player.SetVolume(g.player.Volume() - volumeStep)
	case actionNextTrack:
		g.trackErr(g.player.PlayNext())
	case actionPrevTrack:
		g.trackErr(g.player.PlayPrev())
	case actionOpen:
		g.openFileDialog()
	}
}

func (g *Game) trackErr(err error) {
	if err != nil {
		log.Printf("playlist: %v", err)
	}
	g.lastErr = err
}
