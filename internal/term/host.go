// Package term runs the particle engine inside a terminal using tcell.
package term

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	maxDelta      = 0.1
)

// Source is the audio side of the terminal host.
type Source interface {
	audio.Provider
	Activate()
	TogglePause()
	Track() string
	PlayNext() error
	PlayPrev() error
	SetVolume(level float64)
	Volume() float64
}

const volumeStep = 0.05

type Host struct {
	screen   tcell.Screen
	engine   *engine.Engine
	source   Source
	settings config.Settings

	canvas   *Canvas
	spectrum []byte
	frame    engine.Frame
	last     time.Time

	// index into config.Tunables
	tunable int
}

func New(screen tcell.Screen, e *engine.Engine, src Source, s config.Settings) *Host {
	cols, rows := screen.Size()
	return &Host{
		screen:   screen,
		engine:   e,
		source:   src,
		settings: s,
		canvas:   NewCanvas(cols, rows-1),
		spectrum: make([]byte, config.SpectrumSize),
	}
}

func (h *Host) Settings() config.Settings { return h.settings }

// Run loops until the user quits. The screen must already be initialised.
func (h *Host) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(h.screen, events, quit)

	h.last = time.Now()
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			delta := min(now.Sub(h.last).Seconds(), maxDelta)
			h.last = now
			h.Step(delta)
			h.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or quit
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// Step advances the engine by delta seconds. The terminal has no pointer,
// so repulsion is disabled by placing it far outside the scene.
func (h *Host) Step(delta float64) {
	in := engine.Sample(h.source, h.spectrum, delta)
	in.PointerX, in.PointerY = 1e6, 1e6
	h.frame = h.engine.Tick(in, h.settings)
	if h.frame.ShapeChanged {
		h.settings.VisualShape = h.frame.Shape
		log.Printf("shape: %s", h.frame.Shape)
	}
}

func (h *Host) Draw() {
	h.screen.Clear()

	f := h.frame
	h.canvas.Clear()
	h.canvas.Add(f.Dust, f.DustRotation, engine.Vec3{}, f.DustMaterial)
	h.canvas.Add(f.Positions, f.Rotation, f.Offset, f.Material)
	h.canvas.Draw(h.screen, f.Material)

	h.drawStatus()
	h.screen.Show()
}

func (h *Host) drawStatus() {
	_, rows := h.screen.Size()
	var line string
	if !h.source.HasBeenActivated() {
		line = "press Enter to begin | q quit"
	} else {
		f := h.frame
		line = fmt.Sprintf("%s  bass %.2f mid %.2f high %.2f | %s vol %d%% | n/p shape  m morph  a auto(%v)  tab/arrows tune  -/= vol  [/] track  space pause  q quit",
			f.Shape, f.Bands.Bass, f.Bands.Mid, f.Bands.High,
			config.Tunables[h.tunable].Describe(h.settings), int(h.source.Volume()*100+0.5), h.settings.AutoShapeSwitch)
		if track := h.source.Track(); track != "" {
			line = track + " | " + line
		}
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range []rune(line) {
		h.screen.SetContent(i, rows-1, r, nil, style)
	}
}

func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			h.source.Activate()
		case tcell.KeyTab:
			h.tunable = (h.tunable + 1) % len(config.Tunables)
		case tcell.KeyRight:
			config.Tunables[h.tunable].Adjust(&h.settings, 1)
		case tcell.KeyLeft:
			config.Tunables[h.tunable].Adjust(&h.settings, -1)
		case tcell.KeyRune:
			return h.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		cols, rows := h.screen.Size()
		h.canvas.Resize(cols, rows-1)
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleRune(r rune) bool {
	s := &h.settings
	switch r {
	case 'q':
		return false
	case ' ':
		h.source.TogglePause()
	case 'n':
		s.VisualShape = h.engine.State().Shape.Next()
	case 'p':
		s.VisualShape = h.engine.State().Shape.Prev()
	case 'm':
		s.EnableMorphing = !s.EnableMorphing
	case 'a':
		s.AutoShapeSwitch = !s.AutoShapeSwitch
	case 'g':
		s.UseHighQualityTexture = !s.UseHighQualityTexture
	case '=', '+':
		h.source.SetVolume(h.source.Volume() + volumeStep)
	case '-':
		h.source.SetVolume(h.source.Volume() - volumeStep)
	case ']':
		logErr(h.source.PlayNext())
	case '[':
		logErr(h.source.PlayPrev())
	}
	return true
}

func logErr(err error) {
	if err != nil {
		log.Printf("playlist: %v", err)
	}
}
