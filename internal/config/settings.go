package config

import (
	"math"

	"github.com/iburimskiy/vusic/internal/shape"
)

// Range is an inclusive bound for a numeric setting.
type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Documented ranges of the numeric settings.
var (
	RotationSpeedRange       = Range{0, 2}
	BassBoostRange           = Range{1, 3}
	BassThresholdRange       = Range{0, 0.5}
	MorphingIntensityRange   = Range{1, 10}
	PulseIntensityRange      = Range{0.1, 2}
	ColorThemeRange          = Range{0, 1}
	BloomStrengthRange       = Range{0, 3}
	ParticleSizeRange        = Range{0.5, 3}
	SphereRadiusRange        = Range{2, 10}
	AudioSensitivityRange    = Range{0.5, 3}
	ParticleResetTimeRange   = Range{0.5, 5}
	ShapeTransitionTimeRange = Range{0.5, 5}
	AutoShapeIntervalRange   = Range{3, 30}
	ShakeIntensityRange      = Range{0, 1}
)

// Settings is the user-tunable parameter set, read once per frame.
type Settings struct {
	RotationSpeed     float64
	BassBoost         float64
	BassThreshold     float64
	MorphingIntensity float64
	PulseIntensity    float64
	ColorTheme        float64
	BloomStrength     float64
	ParticleSize      float64
	SphereRadius      float64
	VisualShape       shape.Kind
	AudioSensitivity  float64

	// Seconds
	ParticleResetTime   float64
	ShapeTransitionTime float64

	AutoShapeSwitch   bool
	AutoShapeInterval float64

	EnableShake    bool
	ShakeIntensity float64

	EnableMorphing        bool
	UseHighQualityTexture bool

	// Hides the HUD in the window host
	EnableImmersive bool
}

func Defaults() Settings {
	return Settings{
		RotationSpeed:         0.2,
		BassBoost:             1.0,
		BassThreshold:         0.5,
		MorphingIntensity:     3.0,
		PulseIntensity:        0.5,
		ColorTheme:            0.6,
		BloomStrength:         1.5,
		ParticleSize:          1.0,
		SphereRadius:          3.5,
		VisualShape:           shape.Sphere,
		AudioSensitivity:      0.7,
		ParticleResetTime:     2.0,
		ShapeTransitionTime:   1.5,
		AutoShapeSwitch:       false,
		AutoShapeInterval:     10,
		EnableShake:           false,
		ShakeIntensity:        0.2,
		EnableMorphing:        true,
		UseHighQualityTexture: true,
	}
}

// Clamp forces every field into its documented range. A non-positive radius
// falls back to shape.DefaultRadius first.
func (s *Settings) Clamp() {
	if s.SphereRadius <= 0 || math.IsNaN(s.SphereRadius) {
		s.SphereRadius = shape.DefaultRadius
	}
	if !s.VisualShape.Valid() {
		s.VisualShape = shape.Sphere
	}

	s.RotationSpeed = RotationSpeedRange.Clamp(s.RotationSpeed)
	s.BassBoost = BassBoostRange.Clamp(s.BassBoost)
	s.BassThreshold = BassThresholdRange.Clamp(s.BassThreshold)
	s.MorphingIntensity = MorphingIntensityRange.Clamp(s.MorphingIntensity)
	s.PulseIntensity = PulseIntensityRange.Clamp(s.PulseIntensity)
	s.ColorTheme = ColorThemeRange.Clamp(s.ColorTheme)
	s.BloomStrength = BloomStrengthRange.Clamp(s.BloomStrength)
	s.ParticleSize = ParticleSizeRange.Clamp(s.ParticleSize)
	s.SphereRadius = SphereRadiusRange.Clamp(s.SphereRadius)
	s.AudioSensitivity = AudioSensitivityRange.Clamp(s.AudioSensitivity)
	s.ParticleResetTime = ParticleResetTimeRange.Clamp(s.ParticleResetTime)
	s.ShapeTransitionTime = ShapeTransitionTimeRange.Clamp(s.ShapeTransitionTime)
	s.AutoShapeInterval = AutoShapeIntervalRange.Clamp(s.AutoShapeInterval)
	s.ShakeIntensity = ShakeIntensityRange.Clamp(s.ShakeIntensity)
}
