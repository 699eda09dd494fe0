package bmode

import (
	"testing"
	"time"

	"github.com/sonolab/bmode/surface"
)

func TestScheduler_StartStop(t *testing.T) {
	eng, _ := newTestEngine(t, 24, 24)

	if eng.Running() {
		t.Fatal("engine running before Start")
	}
	if err := eng.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !eng.Running() {
		t.Fatal("engine not running after Start")
	}
	if err := eng.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	eng.Stop()
	if eng.Running() {
		t.Fatal("engine running after Stop")
	}
	eng.Stop() // no-op

	// The loop can be restarted after a stop.
	if err := eng.Start(); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	eng.Stop()
}

func TestScheduler_RendersFrames(t *testing.T) {
	eng, _ := newTestEngine(t, 24, 24)
	eng.targetFPS = 100

	if err := eng.Start(); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for eng.Stats().FramesRendered == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	eng.Stop()

	stats := eng.Stats()
	if stats.FramesRendered == 0 {
		t.Fatal("scheduler rendered no frames within the deadline")
	}
	if stats.LastRenderDuration <= 0 {
		t.Error("LastRenderDuration not recorded")
	}
}

func TestScheduler_UpdateConfigWhileRunning(t *testing.T) {
	eng, _ := newTestEngine(t, 24, 24)
	eng.targetFPS = 100

	if err := eng.Start(); err != nil {
		t.Fatal(err)
	}
	// Config updates are legal in any live state and must not tear a
	// frame in flight; they just swap the snapshot.
	for i := 0; i < 20; i++ {
		if err := eng.ModifyConfig(func(c *Config) { c.Gain = float64(i * 5) }); err != nil {
			t.Fatalf("ModifyConfig while running: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	eng.Stop()
}

func TestScheduler_DestroyForcesStop(t *testing.T) {
	eng, _ := newTestEngine(t, 24, 24)
	if err := eng.Start(); err != nil {
		t.Fatal(err)
	}
	eng.Destroy()
	if eng.Running() {
		t.Fatal("engine still running after Destroy")
	}
}

func TestWithTargetFPS(t *testing.T) {
	eng, _ := newTestEngine(t, 8, 8)
	if eng.targetFPS != defaultTargetFPS {
		t.Errorf("default targetFPS = %v, want %v", eng.targetFPS, float64(defaultTargetFPS))
	}

	custom, err := New(surface.NewImageSurface(8, 8), testConfig(), WithTargetFPS(5))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(custom.Destroy)
	if custom.targetFPS != 5 {
		t.Errorf("targetFPS = %v, want 5", custom.targetFPS)
	}
}
