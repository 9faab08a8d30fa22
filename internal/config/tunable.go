package config

import (
	"fmt"
	"math"
)

// Tunable is a numeric setting that can be stepped at runtime from the
// keyboard.
type Tunable struct {
	Name  string
	Range Range
	Step  float64
	// Wrap cycles past either end instead of stopping.
	Wrap  bool
	field func(*Settings) *float64
}

// Tunables lists the settings the hosts expose for live adjustment, in
// cycling order.
var Tunables = []Tunable{
	{Name: "color", Range: ColorThemeRange, Step: 0.05, Wrap: true, field: func(s *Settings) *float64 { return &s.ColorTheme }},
	{Name: "rotation", Range: RotationSpeedRange, Step: 0.05, field: func(s *Settings) *float64 { return &s.RotationSpeed }},
	{Name: "sensitivity", Range: AudioSensitivityRange, Step: 0.1, field: func(s *Settings) *float64 { return &s.AudioSensitivity }},
	{Name: "size", Range: ParticleSizeRange, Step: 0.1, field: func(s *Settings) *float64 { return &s.ParticleSize }},
	{Name: "bloom", Range: BloomStrengthRange, Step: 0.1, field: func(s *Settings) *float64 { return &s.BloomStrength }},
	{Name: "shake", Range: ShakeIntensityRange, Step: 0.05, field: func(s *Settings) *float64 { return &s.ShakeIntensity }},
}

func (t Tunable) Value(s Settings) float64 { return *t.field(&s) }

// Adjust moves the setting by dir steps and snaps the result to the step
// grid so repeated presses do not accumulate rounding error.
func (t Tunable) Adjust(s *Settings, dir int) {
	p := t.field(s)
	v := *p + float64(dir)*t.Step
	v = t.Range.Min + math.Round((v-t.Range.Min)/t.Step)*t.Step

	switch {
	case t.Wrap && v > t.Range.Max+t.Step/2:
		v = t.Range.Min
	case t.Wrap && v < t.Range.Min-t.Step/2:
		v = t.Range.Max
	}
	*p = t.Range.Clamp(v)
}

// Describe formats the tunable and its current value for a status line.
func (t Tunable) Describe(s Settings) string {
	return fmt.Sprintf("%s %.2f", t.Name, t.Value(s))
}
