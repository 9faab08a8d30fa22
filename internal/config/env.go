package config

import (
	"log"
	"os"
	"strconv"

	"github.com/iburimskiy/vusic/internal/shape"
)

// LoadSettings starts from Defaults and applies VUSIC_* environment
// overrides. Unparsable values are logged and ignored; the result is clamped.
func LoadSettings() Settings {
	return loadSettings(os.Getenv)
}

func loadSettings(getenv func(string) string) Settings {
	s := Defaults()

	floats := []struct {
		env string
		dst *float64
	}{
		{"VUSIC_ROTATION_SPEED", &s.RotationSpeed},
		{"VUSIC_BASS_BOOST", &s.BassBoost},
		{"VUSIC_BASS_THRESHOLD", &s.BassThreshold},
		{"VUSIC_MORPH_INTENSITY", &s.MorphingIntensity},
		{"VUSIC_PULSE_INTENSITY", &s.PulseIntensity},
		{"VUSIC_COLOR_THEME", &s.ColorTheme},
		{"VUSIC_BLOOM", &s.BloomStrength},
		{"VUSIC_PARTICLE_SIZE", &s.ParticleSize},
		{"VUSIC_RADIUS", &s.SphereRadius},
		{"VUSIC_SENSITIVITY", &s.AudioSensitivity},
		{"VUSIC_RESET_TIME", &s.ParticleResetTime},
		{"VUSIC_TRANSITION_TIME", &s.ShapeTransitionTime},
		{"VUSIC_AUTO_INTERVAL", &s.AutoShapeInterval},
		{"VUSIC_SHAKE_INTENSITY", &s.ShakeIntensity},
	}
	for _, f := range floats {
		raw := getenv(f.env)
		if raw == "" {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("ignoring %s=%q: %v", f.env, raw, err)
			continue
		}
		*f.dst = val
	}

	bools := []struct {
		env string
		dst *bool
	}{
		{"VUSIC_AUTO_SWITCH", &s.AutoShapeSwitch},
		{"VUSIC_SHAKE", &s.EnableShake},
		{"VUSIC_MORPHING", &s.EnableMorphing},
		{"VUSIC_HQ_TEXTURE", &s.UseHighQualityTexture},
		{"VUSIC_IMMERSIVE", &s.EnableImmersive},
	}
	for _, b := range bools {
		raw := getenv(b.env)
		if raw == "" {
			continue
		}
		val, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("ignoring %s=%q: %v", b.env, raw, err)
			continue
		}
		*b.dst = val
	}

	if raw := getenv("VUSIC_SHAPE"); raw != "" {
		if k, err := shape.ParseKind(raw); err == nil {
			s.VisualShape = k
		} else {
			log.Printf("ignoring VUSIC_SHAPE: %v", err)
		}
	}

	s.Clamp()
	return s
}
