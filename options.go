package bmode

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default animation rate
//	eng, err := bmode.New(s, cfg)
//
//	// Slower loop, reproducible speckle
//	eng, err := bmode.New(s, cfg, bmode.WithTargetFPS(10), bmode.WithSeed(1))
type Option func(*Engine)

// WithTargetFPS sets the animation loop's target frame rate.
// Non-positive values fall back to the default.
func WithTargetFPS(fps float64) Option {
	return func(e *Engine) {
		e.targetFPS = fps
	}
}

// WithSeed fixes the noise-cache seed so speckle is reproducible.
// By default the seed is taken from the construction time.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}
