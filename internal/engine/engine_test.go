package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/shape"
)

const frameDelta = 1.0 / 60

// farPointer keeps the pointer well away from every particle
var farPointer = Input{PointerX: 1e4, PointerY: 1e4, Delta: frameDelta}

func newTestEngine(t *testing.T, count int, s config.Settings) *Engine {
	t.Helper()
	e, err := New(count, s, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func quietSettings() config.Settings {
	s := config.Defaults()
	s.EnableMorphing = false
	return s
}

func activeInput() Input {
	in := farPointer
	in.Activated = true
	in.Spectrum = make([]byte, config.SpectrumSize)
	return in
}

func copyPositions(f Frame) []float64 {
	out := make([]float64, len(f.Positions))
	copy(out, f.Positions)
	return out
}

func maxDiff(a, b []float64) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

func assertFinite(t *testing.T, pts []float64) {
	t.Helper()
	for i, v := range pts {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("coord %d not finite: %v", i, v)
		}
	}
}

func TestNewRejectsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		_, err := New(count, config.Defaults(), DefaultOptions())
		if !errors.Is(err, ErrInvalidCount) {
			t.Errorf("count=%d: expected ErrInvalidCount, got %v", count, err)
		}
	}
}

// TestScatteredBeforeActivation: 4000 particles, sphere, radius 3.5, no activation
func TestScatteredBeforeActivation(t *testing.T) {
	s := config.Defaults()
	e := newTestEngine(t, 4000, s)

	half := config.ScatterSize / 2
	for i, v := range e.scatter {
		if math.Abs(v) > half {
			t.Fatalf("scatter coord %d = %v outside cube of side %v", i, v, config.ScatterSize)
		}
	}

	var f Frame
	for i := 0; i < 120; i++ {
		f = e.Tick(farPointer, s)
		if e.State().Gather != 0 {
			t.Fatalf("tick %d: expected gather 0, got %v", i, e.State().Gather)
		}
	}

	if len(f.Positions) != 4000*3 {
		t.Fatalf("expected %d coords, got %d", 4000*3, len(f.Positions))
	}
	assertFinite(t, f.Positions)
	for i, v := range f.Positions {
		if math.Abs(v) > half+idleAmplitude+1e-9 {
			t.Fatalf("coord %d = %v outside scatter volume", i, v)
		}
	}
}

// TestGatherOntoSphere activates with silent audio for particleResetTime
func TestGatherOntoSphere(t *testing.T) {
	s := config.Defaults()
	s.ParticleResetTime = 2.0
	e := newTestEngine(t, 4000, s)

	in := activeInput()
	var f Frame
	for i := 0; i < 119; i++ {
		f = e.Tick(in, s)
	}
	if g := e.State().Gather; g >= 1 {
		t.Fatalf("expected gather below 1 after 119 ticks, got %v", g)
	}
	f = e.Tick(in, s)
	if g := e.State().Gather; g != 1 {
		t.Fatalf("expected gather 1 after 120 ticks, got %v", g)
	}

	// silent noise amplitude is 0.3
	for i := 0; i < len(f.Positions)/3; i++ {
		x, y, z := f.Positions[i*3], f.Positions[i*3+1], f.Positions[i*3+2]
		d := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(d-3.5) > noiseBaseAmp+1e-6 {
			t.Fatalf("particle %d at distance %v, expected near 3.5", i, d)
		}
	}
}

func TestGatherExactWithoutMorphing(t *testing.T) {
	s := quietSettings()
	e := newTestEngine(t, 500, s)
	in := activeInput()

	var f Frame
	for i := 0; i < 120; i++ {
		f = e.Tick(in, s)
	}
	target := e.Target()
	if d := maxDiff(f.Positions, target); d > 1e-9 {
		t.Errorf("expected positions on target, max diff %v", d)
	}
	if f.Gather != 1 || f.Material.Opacity != 0.8 {
		t.Errorf("expected full gather and opacity 0.8, got %v / %v", f.Gather, f.Material.Opacity)
	}
}

// TestShapeMorphSphereToCube switches mid-session with a 1.5s transition
func TestShapeMorphSphereToCube(t *testing.T) {
	s := quietSettings()
	s.ShapeTransitionTime = 1.5
	e := newTestEngine(t, 1000, s)
	in := activeInput()

	for i := 0; i < 121; i++ {
		e.Tick(in, s)
	}
	sphere := e.Target()

	s.VisualShape = shape.Cube
	f := e.Tick(in, s)
	if !f.ShapeChanged || f.Shape != shape.Cube {
		t.Fatalf("expected change to cube, got %s (changed=%v)", f.Shape, f.ShapeChanged)
	}
	if m := e.State().Morph; m > Step(frameDelta, 1.5, 0)+1e-12 {
		t.Fatalf("expected morph reset on change, got %v", m)
	}
	if d := maxDiff(f.Positions, sphere); d > 1e-3 {
		t.Errorf("expected positions still on sphere at switch, max diff %v", d)
	}

	cube := e.Target()
	prev := e.State().Morph
	for i := 1; i < 90; i++ {
		f = e.Tick(in, s)
		if m := e.State().Morph; m < prev {
			t.Fatalf("morph decreased at tick %d", i)
		}
		prev = e.State().Morph
	}
	if m := e.State().Morph; m != 1 {
		t.Errorf("expected morph 1 after 90 ticks, got %v", m)
	}
	if d := maxDiff(f.Positions, cube); d > 1e-9 {
		t.Errorf("expected positions on cube after 90 ticks, max diff %v", d)
	}
	if f.ShapeChanged {
		t.Error("expected ShapeChanged only on the switching tick")
	}
}

func TestBassSmoothingThroughEngine(t *testing.T) {
	s := quietSettings()
	s.BassBoost = 1
	s.AudioSensitivity = 1
	e := newTestEngine(t, 10, s)

	in := activeInput()
	for i := 0; i < 20; i++ {
		in.Spectrum[i] = 255
	}

	f := e.Tick(in, s)
	if math.Abs(f.Bands.Bass-audio.BassAlpha) > 1e-9 {
		t.Errorf("expected first smoothed bass %v, got %v", audio.BassAlpha, f.Bands.Bass)
	}
	prev := f.Bands.Bass
	for i := 0; i < 60; i++ {
		f = e.Tick(in, s)
		if f.Bands.Bass < prev || f.Bands.Bass > 1+1e-9 {
			t.Fatalf("tick %d: bass %v not rising toward 1", i, f.Bands.Bass)
		}
		prev = f.Bands.Bass
	}
	if math.Abs(f.Bands.Bass-1) > 1e-6 {
		t.Errorf("expected bass to converge to 1, got %v", f.Bands.Bass)
	}
}

func TestAutoSwitchAdvancesOnce(t *testing.T) {
	s := quietSettings()
	s.AutoShapeSwitch = true
	s.AutoShapeInterval = 5
	e := newTestEngine(t, 50, s)
	in := activeInput()

	changes := 0
	var f Frame
	for i := 0; i < 301; i++ {
		f = e.Tick(in, s)
		if f.ShapeChanged {
			changes++
		}
	}
	if changes != 1 {
		t.Errorf("expected exactly one shape change, got %d", changes)
	}
	if f.Shape != shape.Cube {
		t.Errorf("expected cube after one advance, got %s", f.Shape)
	}
}

func TestAutoSwitchNeedsActivation(t *testing.T) {
	s := quietSettings()
	s.AutoShapeSwitch = true
	s.AutoShapeInterval = 3
	e := newTestEngine(t, 20, s)

	for i := 0; i < 400; i++ {
		if f := e.Tick(farPointer, s); f.ShapeChanged {
			t.Fatalf("unexpected shape change at tick %d before activation", i)
		}
	}
	if e.State().AutoElapsed != 0 {
		t.Errorf("expected scheduler held at 0, got %v", e.State().AutoElapsed)
	}
}

// TestIdleSilenceSmooth checks the scattered cloud keeps drifting gently
func TestIdleSilenceSmooth(t *testing.T) {
	s := quietSettings()
	e := newTestEngine(t, 800, s)

	prev := copyPositions(e.Tick(farPointer, s))
	first := prev
	for i := 0; i < 120; i++ {
		cur := copyPositions(e.Tick(farPointer, s))
		if d := maxDiff(prev, cur); d > 0.05 {
			t.Fatalf("tick %d: jump of %v between frames", i, d)
		}
		prev = cur
	}
	if maxDiff(first, prev) == 0 {
		t.Error("expected idle motion, positions frozen")
	}
	for i, v := range prev {
		if math.Abs(v) > config.ScatterSize/2+idleAmplitude+1e-9 {
			t.Fatalf("coord %d = %v escaped scatter volume", i, v)
		}
	}
}

func TestZeroRotationSpeedFreezesTime(t *testing.T) {
	s := quietSettings()
	s.RotationSpeed = 0
	e := newTestEngine(t, 100, s)

	a := copyPositions(e.Tick(farPointer, s))
	for i := 0; i < 30; i++ {
		e.Tick(farPointer, s)
	}
	b := copyPositions(e.Tick(farPointer, s))
	if d := maxDiff(a, b); d != 0 {
		t.Errorf("expected frozen idle positions, max diff %v", d)
	}
	st := e.State()
	if st.Time != 0 || st.Rotation != (Rotation{}) {
		t.Errorf("expected frozen time and rotation, got %v / %+v", st.Time, st.Rotation)
	}
}

func TestRotationFollowsBass(t *testing.T) {
	s := quietSettings()
	s.RotationSpeed = 1
	e := newTestEngine(t, 10, s)

	f := e.Tick(farPointer, s)
	if math.Abs(f.Rotation.Y-0.05*0.01) > 1e-12 {
		t.Errorf("rotation Y = %v, want %v", f.Rotation.Y, 0.05*0.01)
	}
	if math.Abs(f.Rotation.Z-f.Rotation.Y/2) > 1e-12 {
		t.Errorf("rotation Z = %v, want half of Y", f.Rotation.Z)
	}
}

func TestPointerRepelsScatteredParticles(t *testing.T) {
	s := quietSettings()
	s.RotationSpeed = 0
	e := newTestEngine(t, 1, s)
	x, y, _ := e.scatter.At(0)

	in := Input{PointerX: x + 1, PointerY: y, Delta: frameDelta}
	f := e.Tick(in, s)
	dx := f.Positions[0] - in.PointerX
	dy := f.Positions[1] - in.PointerY
	if d := math.Hypot(dx, dy); d < 2 {
		t.Errorf("expected particle pushed away from pointer, distance %v", d)
	}
	if f.Positions[0] >= x {
		t.Errorf("expected push toward -x, got %v from %v", f.Positions[0], x)
	}
}

func TestMaterial(t *testing.T) {
	s := config.Defaults()
	s.ColorTheme = 0.95
	s.ParticleSize = 2

	m := mainMaterial(2, 1, s)
	if math.Abs(m.Hue-0.25) > 1e-9 {
		t.Errorf("hue = %v, want wrapped 0.25", m.Hue)
	}
	if m.Lightness != 1 {
		t.Errorf("lightness = %v, want clamped 1", m.Lightness)
	}
	if math.Abs(m.Size-(0.3+0.3)*2) > 1e-12 {
		t.Errorf("size = %v, want %v", m.Size, (0.3+0.3)*2)
	}
	if m.Opacity != 0.8 {
		t.Errorf("opacity = %v, want 0.8", m.Opacity)
	}

	s.UseHighQualityTexture = false
	m = mainMaterial(0, 0, s)
	if math.Abs(m.Size-0.12*0.5*2) > 1e-12 {
		t.Errorf("scattered plain size = %v, want %v", m.Size, 0.12*0.5*2)
	}
	if m.Opacity != 0.4 || m.Lightness != 0.4 {
		t.Errorf("scattered opacity/lightness = %v/%v", m.Opacity, m.Lightness)
	}
}

func TestRadiusChangeRegenerates(t *testing.T) {
	s := quietSettings()
	e := newTestEngine(t, 200, s)
	in := activeInput()
	for i := 0; i < 121; i++ {
		e.Tick(in, s)
	}

	s.SphereRadius = 6
	f := e.Tick(in, s)
	for i := 0; i < len(f.Positions)/3; i++ {
		x, y, z := f.Positions[i*3], f.Positions[i*3+1], f.Positions[i*3+2]
		if d := math.Sqrt(x*x + y*y + z*z); math.Abs(d-6) > 1e-9 {
			t.Fatalf("particle %d at %v, want radius 6", i, d)
		}
	}

	s.SphereRadius = 0
	e.Tick(in, s)
	if r := e.State().Radius; r != shape.DefaultRadius {
		t.Errorf("expected fallback radius, got %v", r)
	}
}

func TestFixedTickRateIgnoresDelta(t *testing.T) {
	s := quietSettings()
	opts := DefaultOptions()
	opts.FixedTickRate = AssumedFrameRate
	e, err := New(10, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	in := activeInput()
	in.Delta = 1
	e.Tick(in, s)
	if g := e.State().Gather; math.Abs(g-1/(s.ParticleResetTime*60)) > 1e-12 {
		t.Errorf("expected one fixed step, got %v", g)
	}
}

func TestShakeMovesGroup(t *testing.T) {
	s := quietSettings()
	s.EnableShake = true
	s.ShakeIntensity = 1
	s.BassThreshold = 0
	s.BassBoost = 3
	s.AudioSensitivity = 3
	e := newTestEngine(t, 10, s)

	in := activeInput()
	for i := range in.Spectrum {
		in.Spectrum[i] = 255
	}
	var f Frame
	for i := 0; i < 5; i++ {
		f = e.Tick(in, s)
	}
	if f.Offset == (Vec3{}) {
		t.Error("expected shake offset with loud bass")
	}
}

func TestDustAppearsWhenGathered(t *testing.T) {
	s := quietSettings()
	e := newTestEngine(t, 10, s)

	f := e.Tick(farPointer, s)
	if f.DustMaterial.Opacity != 0 {
		t.Errorf("expected hidden dust while scattered, got %v", f.DustMaterial.Opacity)
	}
	if len(f.Dust) != config.DustCount*3 {
		t.Errorf("expected %d dust coords, got %d", config.DustCount*3, len(f.Dust))
	}

	in := activeInput()
	for i := 0; i < 130; i++ {
		f = e.Tick(in, s)
	}
	if f.DustMaterial.Opacity != 0.5 {
		t.Errorf("expected dust opacity 0.5 when gathered, got %v", f.DustMaterial.Opacity)
	}
}

func TestSeedReproducible(t *testing.T) {
	s := config.Defaults()
	s.VisualShape = shape.Spiral
	a := newTestEngine(t, 300, s)
	b := newTestEngine(t, 300, s)
	in := activeInput()
	for i := 0; i < 40; i++ {
		fa := a.Tick(in, s)
		fb := b.Tick(in, s)
		if d := maxDiff(fa.Positions, fb.Positions); d != 0 {
			t.Fatalf("tick %d: engines with equal seeds diverged by %v", i, d)
		}
	}
}

func TestSampleFromProvider(t *testing.T) {
	buf := []byte{9, 9, 9}
	in := Sample(&audio.Silence{Activated: true}, buf, 0.5)
	if !in.Activated || in.Playing || in.Delta != 0.5 {
		t.Errorf("unexpected input flags %+v", in)
	}
	for i, b := range in.Spectrum {
		if b != 0 {
			t.Fatalf("expected silent spectrum, bin %d = %d", i, b)
		}
	}
}

// recordingNoise returns a constant and remembers every 3D sample point.
type recordingNoise struct {
	value float64
	calls []Vec3
}

func (n *recordingNoise) Eval2(x, y float64) float64       { return n.value }
func (n *recordingNoise) Eval4(x, y, z, w float64) float64 { return n.value }
func (n *recordingNoise) Eval3(x, y, z float64) float64 {
	n.calls = append(n.calls, Vec3{X: x, Y: y, Z: z})
	return n.value
}

func TestParticleAtOriginStaysAtOrigin(t *testing.T) {
	s := quietSettings()
	e := newTestEngine(t, 4, s)
	clear(e.scatter)
	e.noise = &recordingNoise{value: 1}

	f := e.Tick(farPointer, s)
	if f.Gather != 0 {
		t.Fatalf("expected idle path, gather %v", f.Gather)
	}
	assertFinite(t, f.Positions)
	for i, v := range f.Positions {
		if v != 0 {
			t.Fatalf("coord %d = %v, want exactly 0", i, v)
		}
	}
}

func TestMorphNoiseDriftsOnXYOnly(t *testing.T) {
	s := config.Defaults()
	s.RotationSpeed = 1
	e := newTestEngine(t, 3, s)
	in := activeInput()
	for i := 0; i < 120; i++ {
		e.Tick(in, s)
	}

	rec := &recordingNoise{}
	e.noise = rec
	f := e.Tick(in, s)
	if f.Gather != 1 {
		t.Fatalf("expected gathered cloud, gather %v", f.Gather)
	}

	// the middle sphere point sits on the equator, away from both poles
	if len(rec.calls) != 3 {
		t.Fatalf("expected one noise sample per particle, got %d", len(rec.calls))
	}
	got := rec.calls[1]
	x, y, z := e.Target().At(1)
	if z == 0 {
		t.Fatal("expected a point with a z component")
	}
	length := math.Sqrt(x*x + y*y + z*z)
	drift := e.State().Time * noiseTimeRate
	if drift == 0 {
		t.Fatal("expected simulated time to advance")
	}
	freq := noiseBaseFreq + f.Bands.Mid*noiseMidFreq

	if got, want := got.X, x/length*freq+drift; math.Abs(got-want) > 1e-12 {
		t.Errorf("noise x = %v, want %v", got, want)
	}
	if got, want := got.Y, y/length*freq+drift; math.Abs(got-want) > 1e-12 {
		t.Errorf("noise y = %v, want %v", got, want)
	}
	if got, want := got.Z, z/length*freq; math.Abs(got-want) > 1e-12 {
		t.Errorf("noise z = %v, want %v without time drift", got, want)
	}
}
