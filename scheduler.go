package bmode

import (
	"log/slog"
	"time"
)

// defaultTargetFPS is the animation rate when no option overrides it.
const defaultTargetFPS = 24

// SchedulerStats is a snapshot of frame-loop counters, for hosts that
// export timing metrics.
type SchedulerStats struct {
	// FramesRendered counts frames presented since construction,
	// including manual RenderFrame calls.
	FramesRendered uint64

	// DroppedTicks counts scheduler ticks skipped because the previous
	// frame had not aged past the target interval.
	DroppedTicks uint64

	// LastRenderDuration is the wall time of the most recent frame.
	LastRenderDuration time.Duration
}

// Stats returns the current frame-loop counters.
func (e *Engine) Stats() SchedulerStats {
	return SchedulerStats{
		FramesRendered:     e.framesRendered.Load(),
		DroppedTicks:       e.droppedTicks.Load(),
		LastRenderDuration: time.Duration(e.lastRenderNanos.Load()),
	}
}

// Running reports whether the animation loop is active.
func (e *Engine) Running() bool {
	return e.state.Load() == stateRunning
}

// Start transitions the engine from Stopped to Running: a throttled
// loop renders one frame per target interval and presents it to the
// surface. Starting a running engine is a no-op; starting a destroyed
// engine fails.
func (e *Engine) Start() error {
	if e.state.Load() == stateDestroyed {
		return ErrEngineDestroyed
	}
	if !e.state.CompareAndSwap(stateStopped, stateRunning) {
		return nil // already running
	}
	e.stopCh = make(chan struct{})
	e.loopWG.Add(1)
	go e.run(e.stopCh)
	Logger().Info("scheduler started", slog.Float64("targetFPS", e.targetFPS))
	return nil
}

// Stop transitions Running to Stopped and cancels the pending tick.
// Stopping a stopped engine is a no-op. Stop returns after the loop
// has exited, so no frame is in flight afterwards.
func (e *Engine) Stop() {
	if !e.state.CompareAndSwap(stateRunning, stateStopped) {
		return
	}
	close(e.stopCh)
	e.loopWG.Wait()
	Logger().Info("scheduler stopped")
}

// Destroy forces Stopped, releases the engine's resources, and closes
// the surface. It is the only operation guaranteed safe after the host
// goes away; every other call fails with ErrEngineDestroyed afterwards.
// Destroy is idempotent.
func (e *Engine) Destroy() {
	prev := e.state.Swap(stateDestroyed)
	if prev == stateDestroyed {
		return
	}
	if prev == stateRunning {
		close(e.stopCh)
		e.loopWG.Wait()
	}
	// Rendering may still hold the lock from a manual RenderFrame;
	// wait for it before tearing the surface down.
	e.renderMu.Lock()
	e.noise = nil
	e.renderMu.Unlock()
	if err := e.surf.Close(); err != nil {
		Logger().Warn("surface close failed", slog.Any("error", err))
	}
	Logger().Info("engine destroyed")
}

// run is the animation loop: one goroutine, one frame per tick, never
// two frames concurrently. Each tick checks the elapsed time against
// the target interval so a slow host drops ticks instead of queueing
// frames.
func (e *Engine) run(stop <-chan struct{}) {
	defer e.loopWG.Done()

	fps := e.targetFPS
	if fps <= 0 {
		fps = defaultTargetFPS
	}
	interval := time.Duration(float64(time.Second) / fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now().Add(-interval)
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if now.Sub(last) < interval {
				e.droppedTicks.Add(1)
				continue
			}
			if err := e.RenderFrame(); err != nil {
				Logger().Warn("frame render failed", slog.Any("error", err))
				continue
			}
			last = now
		}
	}
}
