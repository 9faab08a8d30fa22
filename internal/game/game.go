package game

import (
	"errors"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
	"github.com/iburimskiy/vusic/internal/render"
)

// Player is the playback surface the window needs on top of audio.Provider.
type Player interface {
	audio.Provider
	Activate()
	Load(path string) error
	AddTracks(paths ...string) error
	PlayNext() error
	PlayPrev() error
	Playlist() ([]string, int)
	SetVolume(level float64)
	Volume() float64
	TogglePause()
	Seek(fraction float64) error
	Position() time.Duration
	Duration() time.Duration
	Track() string
	Loaded() bool
	Paused() bool
}

var background = color.RGBA{R: 4, G: 4, B: 10, A: 255}

// Game is the ebiten window host around one engine.
type Game struct {
	engine   *engine.Engine
	player   Player
	settings config.Settings
	camera   render.Camera

	spectrum []byte
	sprites  []render.Sprite
	frame    engine.Frame

	// button state
	buttonHovered bool
	buttonPressed bool
	dialogOpen    bool
	picked        chan pickResult

	// progress bar
	barHovered   bool
	barDragging  bool
	lastSeekTime time.Time

	// index into config.Tunables adjusted by the arrow keys
	tunable int

	lastErr error
}

type pickResult struct {
	paths []string
	err   error
}

func New(e *engine.Engine, p Player, s config.Settings) *Game {
	return &Game{
		engine:   e,
		player:   p,
		settings: s,
		camera:   render.NewCamera(config.WindowWidth, config.WindowHeight),
		spectrum: make([]byte, config.SpectrumSize),
		picked:   make(chan pickResult, 1),
	}
}

// Settings returns the live settings, including keyboard changes.
func (g *Game) Settings() config.Settings { return g.settings }

// LoadFile starts playback of path and records any failure for the HUD.
func (g *Game) LoadFile(path string) error {
	if err := g.player.Load(path); err != nil {
		log.Printf("load %s: %v", path, err)
		g.lastErr = err
		return err
	}
	log.Printf("playing %s", path)
	g.lastErr = nil
	return nil
}

// AddFiles queues paths on the playlist; playback starts if nothing is
// loaded yet.
func (g *Game) AddFiles(paths ...string) error {
	if err := g.player.AddTracks(paths...); err != nil {
		log.Printf("add tracks: %v", err)
		g.lastErr = err
		return err
	}
	log.Printf("queued %d tracks", len(paths))
	g.lastErr = nil
	return nil
}

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()

	g.updateButton(mouseX, mouseY)
	g.updateProgressBar(mouseX, mouseY)
	g.pollDialog()

	// any other click or Enter starts the session
	if !g.player.HasBeenActivated() {
		clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.buttonHovered && !g.barHovered
		if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.player.Activate()
			log.Print("session activated")
		}
	}

	for _, a := range pressedActions() {
		if a == actionQuit {
			return ebiten.Termination
		}
		g.apply(a)
	}

	in := engine.Sample(g.player, g.spectrum, 1/float64(ebiten.TPS()))
	in.PointerX, in.PointerY = g.camera.Unproject(float64(mouseX), float64(mouseY))
	g.frame = g.engine.Tick(in, g.settings)
	if g.frame.ShapeChanged {
		g.settings.VisualShape = g.frame.Shape
		log.Printf("shape: %s", g.frame.Shape)
	}
	return nil
}

func (g *Game) updateButton(mouseX, mouseY int) {
	g.buttonHovered = inRect(mouseX, mouseY, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight)

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.openFileDialog()
		}
		g.buttonPressed = false
	}
}

// openFileDialog shows the picker off the game loop; the result arrives
// through g.picked.
func (g *Game) openFileDialog() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		paths, err := zenity.SelectFileMultiple(
			zenity.Title("Open Audio Files"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: audio.SupportedPatterns,
			}},
		)
		g.picked <- pickResult{paths: paths, err: err}
	}()
}

func (g *Game) pollDialog() {
	select {
	case r := <-g.picked:
		g.dialogOpen = false
		switch {
		case errors.Is(r.err, zenity.ErrCanceled):
		case r.err != nil:
			log.Printf("file dialog: %v", r.err)
			g.lastErr = r.err
		default:
			_ = g.AddFiles(r.paths...)
		}
	default:
	}
}

func (g *Game) updateProgressBar(mouseX, mouseY int) {
	x, y, w, h := barRect()
	g.barHovered = inRect(mouseX, mouseY, x, y, w, h)

	duration := g.player.Duration()
	if duration <= 0 {
		g.barDragging = false
		return
	}

	if g.barHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
		g.seek(barFraction(mouseX), true)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.barDragging = false
	}

	// skip micro seeks while dragging
	if g.barDragging {
		current := float64(g.player.Position()) / float64(duration)
		if target := barFraction(mouseX); abs(target-current) > 0.01 {
			g.seek(target, false)
		}
	}
}

func (g *Game) seek(fraction float64, force bool) {
	if !force && time.Since(g.lastSeekTime) < 50*time.Millisecond {
		return
	}
	if err := g.player.Seek(fraction); err != nil {
		g.lastErr = err
		return
	}
	g.lastSeekTime = time.Now()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	f := g.frame
	if f.Positions != nil {
		g.drawPoints(screen, f.Dust, f.DustRotation, engine.Vec3{}, f.DustMaterial, false)
		g.drawPoints(screen, f.Positions, f.Rotation, f.Offset, f.Material, f.HighQuality)
	}

	if !g.settings.EnableImmersive {
		g.drawButton(screen)
		g.drawProgressBar(screen)
		g.drawHUD(screen)
	}
	if !g.player.HasBeenActivated() {
		g.drawIntro(screen)
	}
}

// drawPoints draws one particle set back to front. With glow a faint halo
// scaled by the bloom strength is drawn under each point.
func (g *Game) drawPoints(screen *ebiten.Image, positions []float64, rot engine.Rotation, off engine.Vec3, m engine.Material, glow bool) {
	if m.Opacity <= 0 || len(positions) == 0 {
		return
	}
	base := render.MaterialColor(m)
	halo := base
	halo.A = uint8(float64(base.A) * clamp01(g.frame.BloomStrength/3) * 0.3)

	g.sprites = g.camera.Sprites(g.sprites[:0], positions, rot, off, m.Size)
	for _, s := range g.sprites {
		r := max(float32(s.Radius), 0.5)
		if glow && halo.A > 0 {
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), r*2.5, halo, true)
		}
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), r, base, true)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
