package bmode

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sonolab/bmode/surface"
)

// Construction and lifecycle errors.
var (
	// ErrNilSurface is returned by New when no drawing surface is
	// supplied. Rendering is impossible without a target, so this is
	// the one fatal configuration error.
	ErrNilSurface = errors.New("bmode: nil drawing surface")

	// ErrEngineDestroyed is returned by operations on a destroyed
	// engine.
	ErrEngineDestroyed = errors.New("bmode: engine destroyed")
)

// Engine owns one imaging configuration, its noise caches, and the
// animation loop, and renders B-mode frames into a caller-owned
// surface.
//
// The configuration is an immutable snapshot behind an atomic pointer:
// UpdateConfig replaces it wholesale, and a frame in flight keeps the
// snapshot it started with, so a render never sees a torn config.
type Engine struct {
	surf surface.Surface

	cfg atomic.Pointer[Config]

	// Noise cache plus the fingerprint it was built for. Guarded by
	// renderMu: regeneration happens between frames, on the render
	// path.
	noise      *NoiseCache
	noiseW     int
	noiseH     int
	noiseClass int

	// renderMu makes rendering a single non-reentrant pass.
	renderMu sync.Mutex

	seed      int64
	targetFPS float64

	state  atomic.Int32
	stopCh chan struct{}
	loopWG sync.WaitGroup

	// simulation clock, advanced once per rendered frame.
	tick atomic.Uint64

	framesRendered  atomic.Uint64
	droppedTicks    atomic.Uint64
	lastRenderNanos atomic.Int64
}

// Engine states.
const (
	stateStopped int32 = iota
	stateRunning
	stateDestroyed
)

// New binds an engine to a caller-owned drawing surface and takes
// ownership of the initial configuration. Out-of-range config fields
// are clamped and logged; a nil surface is fatal.
func New(s surface.Surface, cfg Config, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	e := &Engine{
		surf:      s,
		seed:      time.Now().UnixNano(),
		targetFPS: defaultTargetFPS,
	}
	for _, opt := range opts {
		opt(e)
	}
	c := cfg.withDefaults()
	e.cfg.Store(&c)
	e.ensureNoise(&c)
	return e, nil
}

// Config returns a copy of the current configuration snapshot.
func (e *Engine) Config() Config {
	return *e.cfg.Load()
}

// UpdateConfig replaces the configuration wholesale. It is legal in
// any state except destroyed and takes effect with the next rendered
// frame; it never renders and never regenerates caches itself (the
// next render does, if needed).
func (e *Engine) UpdateConfig(cfg Config) error {
	if e.state.Load() == stateDestroyed {
		return ErrEngineDestroyed
	}
	c := cfg.withDefaults()
	e.cfg.Store(&c)
	return nil
}

// ModifyConfig applies fn to a copy of the current configuration and
// swaps the result in, for partial updates:
//
//	eng.ModifyConfig(func(c *bmode.Config) { c.Gain = 70 })
func (e *Engine) ModifyConfig(fn func(*Config)) error {
	if e.state.Load() == stateDestroyed {
		return ErrEngineDestroyed
	}
	c := *e.cfg.Load()
	fn(&c)
	c = c.withDefaults()
	e.cfg.Store(&c)
	return nil
}

// RenderFrame synchronously renders one frame from the current
// configuration snapshot and presents it to the surface. Usable
// without the scheduler, e.g. for static snapshots and tests.
func (e *Engine) RenderFrame() error {
	if e.state.Load() == stateDestroyed {
		return ErrEngineDestroyed
	}
	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	start := time.Now()
	cfg := e.cfg.Load()
	e.ensureNoise(cfg)

	mapper := Mapper{
		Width:        e.surf.Width(),
		Height:       e.surf.Height(),
		Transducer:   cfg.Transducer,
		ScanDepthCm:  cfg.ScanDepthCm,
		FrequencyMHz: cfg.FrequencyMHz,
	}
	frame := NewFrame(mapper.Width, mapper.Height)
	p := newPipeline(cfg, e.noise, mapper)
	p.render(frame, e.tick.Load())

	ov := overlayRenderer{cfg: cfg, mapper: mapper}
	ov.draw(frame)

	if err := e.surf.Present(frame.Image()); err != nil {
		return err
	}
	e.tick.Add(1)
	e.framesRendered.Add(1)
	e.lastRenderNanos.Store(int64(time.Since(start)))
	return nil
}

// RenderMMode renders one beam-line column of display values at the
// raster column x, for motion-mode readout. The slice has one entry
// per surface row.
func (e *Engine) RenderMMode(x int) ([]float64, error) {
	if e.state.Load() == stateDestroyed {
		return nil, ErrEngineDestroyed
	}
	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	cfg := e.cfg.Load()
	e.ensureNoise(cfg)
	mapper := Mapper{
		Width:        e.surf.Width(),
		Height:       e.surf.Height(),
		Transducer:   cfg.Transducer,
		ScanDepthCm:  cfg.ScanDepthCm,
		FrequencyMHz: cfg.FrequencyMHz,
	}
	out := make([]float64, mapper.Height)
	p := newPipeline(cfg, e.noise, mapper)
	p.renderColumn(x, mapper.Height, e.tick.Load(), out)
	return out, nil
}

// ensureNoise regenerates the noise cache when the raster resolution
// or the frequency class changed since the last frame. Called on the
// render path, between frames; never per pixel. Must hold renderMu.
func (e *Engine) ensureNoise(cfg *Config) {
	w, h := e.surf.Width(), e.surf.Height()
	class := cfg.freqClass()
	switch {
	case e.noise == nil || w != e.noiseW || h != e.noiseH:
		Logger().Debug("noise cache rebuilt",
			slog.Int("width", w), slog.Int("height", h), slog.Int("freqClass", class))
		e.noise = newNoiseCache(w, h, cfg.FrequencyMHz, e.seed)
	case class != e.noiseClass:
		Logger().Debug("noise cache regenerated", slog.Int("freqClass", class))
		e.noise.setFrequency(cfg.FrequencyMHz)
		e.noise.Regenerate()
	default:
		return
	}
	e.noiseW, e.noiseH, e.noiseClass = w, h, class
}
