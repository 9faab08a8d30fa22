package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/shape"
)

// ErrInvalidCount is returned by New for a non-positive particle count.
var ErrInvalidCount = errors.New("particle count must be positive")

// Options are fixed for the lifetime of an Engine.
type Options struct {
	// Seed drives every random choice and the noise field.
	Seed uint64

	DustCount   int
	ScatterSize float64

	// FixedTickRate, when positive, steps transitions by
	// 1/(duration*FixedTickRate) per tick and ignores Input.Delta for them.
	FixedTickRate float64

	// BlendSnapshot makes a shape change during an unfinished morph start
	// from the displayed blend instead of the last settled shape.
	BlendSnapshot bool
}

func DefaultOptions() Options {
	return Options{
		Seed:        1,
		DustCount:   config.DustCount,
		ScatterSize: config.ScatterSize,
	}
}

// Input is everything the host samples once per frame.
type Input struct {
	// Spectrum holds byte magnitudes, at least audio.MinSpectrumLen long for
	// full band coverage. Nil is treated as silence.
	Spectrum  []byte
	Playing   bool
	Activated bool

	// Pointer position in world units on the z=0 plane.
	PointerX, PointerY float64

	// Delta is the elapsed time since the previous tick in seconds.
	Delta float64
}

// Sample reads one frame of audio state from p into spectrum and wraps it
// in an Input. The pointer fields are left for the host to fill.
func Sample(p audio.Provider, spectrum []byte, delta float64) Input {
	p.FillFrequencyData(spectrum)
	return Input{
		Spectrum:  spectrum,
		Playing:   p.IsPlaying(),
		Activated: p.HasBeenActivated(),
		Delta:     delta,
	}
}

// Material is the shared appearance of one particle set. Hue, Saturation
// and Lightness are in [0,1].
type Material struct {
	Hue        float64
	Saturation float64
	Lightness  float64
	Size       float64
	Opacity    float64
}

// Rotation is an accumulated Euler rotation in radians.
type Rotation struct {
	X, Y, Z float64
}

// Frame is the per-tick output. Positions and Dust alias engine-owned
// buffers and are only valid until the next Tick.
type Frame struct {
	Positions []float64
	Material  Material
	Rotation  Rotation
	Offset    Vec3

	Dust         []float64
	DustMaterial Material
	DustRotation Rotation

	Bands  audio.Bands
	Gather float64 // eased
	Morph  float64 // eased

	Shape        shape.Kind
	ShapeChanged bool

	BloomStrength float64
	HighQuality   bool
}

// State is a snapshot of the engine's mutable per-session values.
type State struct {
	Bands       audio.Bands
	Gather      float64
	Morph       float64
	Shape       shape.Kind
	Radius      float64
	Time        float64
	AutoElapsed float64
	Rotation    Rotation
	Offset      Vec3
}

// Engine owns the particle buffers and all state that persists between
// frames. It is not safe for concurrent use.
type Engine struct {
	count int
	opts  Options

	rng   *rand.Rand
	noise opensimplex.Noise
	cache *shape.Cache

	scatter   shape.PointSet
	positions []float64
	dust      *Dust

	smoother   audio.Smoother
	transition Transition
	scheduler  Scheduler
	jitter     Jitter

	shape     shape.Kind
	requested shape.Kind
	radius    float64
	time      float64
	rotation  Rotation
}

// New prepares an engine for count particles starting from settings s.
func New(count int, s config.Settings, opts Options) (*Engine, error) {
	if count <= 0 {
		return nil, fmt.Errorf("new engine with %d particles: %w", count, ErrInvalidCount)
	}
	if opts.ScatterSize <= 0 {
		opts.ScatterSize = config.ScatterSize
	}
	opts.DustCount = max(opts.DustCount, 0)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	e := &Engine{
		count:      count,
		opts:       opts,
		rng:        rng,
		noise:      opensimplex.New(int64(opts.Seed)),
		scatter:    shape.Scatter(count, opts.ScatterSize, rng),
		positions:  make([]float64, count*3),
		transition: NewTransition(),
		shape:      s.VisualShape,
		requested:  s.VisualShape,
		radius:     radiusOf(s),
	}
	e.dust = NewDust(shape.SphericalShell(opts.DustCount, config.DustInner, config.DustOuter, rng))
	e.cache = shape.NewCache(count, rng)
	copy(e.positions, e.scatter)
	return e, nil
}

func radiusOf(s config.Settings) float64 {
	if s.SphereRadius <= 0 || math.IsNaN(s.SphereRadius) {
		return shape.DefaultRadius
	}
	return s.SphereRadius
}

func (e *Engine) Count() int { return e.count }

func (e *Engine) State() State {
	return State{
		Bands:       e.smoother.Value(),
		Gather:      e.transition.Gather,
		Morph:       e.transition.Morph,
		Shape:       e.shape,
		Radius:      e.radius,
		Time:        e.time,
		AutoElapsed: e.scheduler.Elapsed,
		Rotation:    e.rotation,
		Offset:      e.jitter.Offset,
	}
}

// Target returns the point set the particles gather into.
func (e *Engine) Target() shape.PointSet {
	return e.cache.Get(e.shape, e.radius)
}

func (e *Engine) changeShape(next shape.Kind) {
	if next == e.shape {
		return
	}
	e.transition.Retarget(e.Target(), e.opts.BlendSnapshot)
	e.shape = next
}

// Tick advances the simulation by one frame and returns its output.
func (e *Engine) Tick(in Input, s config.Settings) Frame {
	delta := in.Delta
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}

	prevShape := e.shape
	if e.scheduler.Advance(delta, s.AutoShapeSwitch && in.Activated, s.AutoShapeInterval) {
		e.changeShape(e.shape.Next())
	}
	if s.VisualShape != e.requested && s.VisualShape.Valid() {
		e.requested = s.VisualShape
		e.changeShape(s.VisualShape)
	}
	e.radius = radiusOf(s)
	target := e.Target()

	e.time += delta * s.RotationSpeed

	e.transition.Advance(in.Activated,
		Step(delta, s.ParticleResetTime, e.opts.FixedTickRate),
		Step(delta, s.ShapeTransitionTime, e.opts.FixedTickRate),
	)

	active := in.Playing || in.Activated
	bands := e.smoother.Update(audio.Extract(in.Spectrum, s.AudioSensitivity, s.BassBoost, active))

	e.jitter.Update(in.Activated && s.EnableShake, bands.Bass, s.BassThreshold, s.ShakeIntensity, e.rng)

	spin := (0.05 + bands.Bass*0.1) * s.RotationSpeed
	e.rotation.Y += spin * 0.01
	e.rotation.Z += spin * 0.5 * 0.01

	gather := EaseInOutCubic(e.transition.Gather)
	morph := EaseInOutCubic(e.transition.Morph)
	e.updateParticles(target, gather, morph, bands, s, in.PointerX, in.PointerY)

	e.dust.Update(e.transition.Gather, e.time, bands.High, s.ColorTheme, s.ParticleSize, spin)

	return Frame{
		Positions:     e.positions,
		Material:      mainMaterial(bands.Bass, gather, s),
		Rotation:      e.rotation,
		Offset:        e.jitter.Offset,
		Dust:          e.dust.Points,
		DustMaterial:  e.dust.Material,
		DustRotation:  e.dust.Rotation,
		Bands:         bands,
		Gather:        gather,
		Morph:         morph,
		Shape:         e.shape,
		ShapeChanged:  e.shape != prevShape,
		BloomStrength: s.BloomStrength,
		HighQuality:   s.UseHighQualityTexture,
	}
}

// Point sizes for the glow sprite and the plain dot.
const (
	glowPointSize  = 0.3
	plainPointSize = 0.12
)

func mainMaterial(bass, gather float64, s config.Settings) Material {
	base := plainPointSize
	if s.UseHighQualityTexture {
		base = glowPointSize
	}
	return Material{
		Hue:        wrapUnit(s.ColorTheme + bass*0.15*gather),
		Saturation: 0.8,
		Lightness:  math.Min(0.4+bass*0.4*gather, 1),
		Size:       (base*math.Max(0.5, gather) + bass*0.15) * s.ParticleSize,
		Opacity:    0.4 + gather*0.4,
	}
}
