package config

const (
	WindowWidth  = 1280
	WindowHeight = 720
	TPS          = 60

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Progress bar, anchored to the bottom edge
	BarHeight = 14
	BarMargin = 20

	// Particle system
	ParticleCount = 4000
	DustCount     = 800
	ScatterSize   = 60.0
	DustInner     = 20.0
	DustOuter     = 60.0

	// Camera
	CameraDistance = 15.0
	CameraFOV      = 45.0

	// Audio analysis
	FFTSize      = 2048
	SpectrumSize = FFTSize / 2

	// Step applied by the radius keys
	RadiusStep = 0.5
)
