package hud

import (
	"testing"
	"time"

	"github.com/maxdcmn/gpuhud/internal/model"
)

func idleSnapshot(ticks uint64) model.Snapshot {
	return model.Snapshot{}.With(model.GpuIdleTicks, ticks)
}

func TestGPULoadSampleWindow(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(StatGpuLoad), clock)

	clock.Advance(499 * time.Millisecond)
	agg.Update(idleSnapshot(100))
	if got := agg.GPULoadString(); got != "GPU: 0%" {
		t.Fatalf("load recomputed before 500ms: %q", got)
	}

	// 500ms elapsed with 400ms idle: 100ms busy.
	clock.Advance(1 * time.Millisecond)
	agg.Update(idleSnapshot(400_000))
	if got := agg.GPULoadString(); got != "GPU: 20%" {
		t.Fatalf("expected GPU: 20%%, got %q", got)
	}
	if agg.GPULoad() != 20 {
		t.Fatalf("expected load 20, got %d", agg.GPULoad())
	}

	// Repeated updates inside the window keep the cached value.
	for i := 0; i < 4; i++ {
		clock.Advance(100 * time.Millisecond)
		agg.Update(idleSnapshot(400_000 + uint64(i+1)*90_000))
		if got := agg.GPULoadString(); got != "GPU: 20%" {
			t.Fatalf("update %d changed cached load to %q", i, got)
		}
	}

	// 500ms since last sample, idle advanced by 500ms -> fully idle.
	clock.Advance(100 * time.Millisecond)
	agg.Update(idleSnapshot(900_000))
	if got := agg.GPULoadString(); got != "GPU: 0%" {
		t.Fatalf("expected GPU: 0%%, got %q", got)
	}

	// Idle time exceeding elapsed time clamps to zero busy ticks.
	clock.Advance(500 * time.Millisecond)
	agg.Update(idleSnapshot(1_600_000))
	if got := agg.GPULoadString(); got != "GPU: 0%" {
		t.Fatalf("expected clamp to GPU: 0%%, got %q", got)
	}

	// No idle time at all.
	clock.Advance(750 * time.Millisecond)
	agg.Update(idleSnapshot(1_600_000))
	if got := agg.GPULoadString(); got != "GPU: 100%" {
		t.Fatalf("expected GPU: 100%%, got %q", got)
	}
}

func TestGPULoadTruncates(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(StatGpuLoad), clock)

	// busy = 600000 - 100001 = 499999 -> 83.33% -> 83
	clock.Advance(600 * time.Millisecond)
	agg.Update(idleSnapshot(100_001))
	if got := agg.GPULoad(); got != 83 {
		t.Fatalf("expected 83, got %d", got)
	}
}

func TestGPULoadDisabled(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(StatDrawCalls), clock)

	clock.Advance(time.Second)
	agg.Update(idleSnapshot(100_000))
	if got := agg.GPULoadString(); got != "GPU: 0%" {
		t.Fatalf("load should not be sampled when disabled, got %q", got)
	}
	if agg.Counters().Get(model.GpuIdleTicks) != 100_000 {
		t.Fatalf("snapshot was not stored")
	}
}

func TestUpdateWithNoElementsIsNoop(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(), clock)
	before := *agg

	clock.Advance(2 * time.Second)
	agg.Update(model.Snapshot{}.With(model.CmdDrawCalls, 50).With(model.GpuIdleTicks, 10))

	if agg.Counters() != before.prev || agg.Diff() != before.diff {
		t.Fatalf("snapshots changed on empty element set")
	}
	if !agg.gpuLoadUpdateTime.Equal(before.gpuLoadUpdateTime) {
		t.Fatalf("gpu load timer changed on empty element set")
	}
	if !agg.compilerShowTime.Equal(before.compilerShowTime) {
		t.Fatalf("compiler timer changed on empty element set")
	}
	if agg.GPULoadString() != before.gpuLoadString {
		t.Fatalf("cached load changed on empty element set")
	}
}

func TestPerFrame(t *testing.T) {
	tests := []struct {
		name     string
		presents uint64
		draws    uint64
		want     uint64
	}{
		{"no frames presented uses divisor 1", 0, 17, 17},
		{"single frame", 1, 17, 17},
		{"truncating division", 4, 10, 2},
		{"even split", 3, 3000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(NewElements(StatDrawCalls), newMockClock())
			agg.Update(model.Snapshot{}.
				With(model.QueuePresentCount, tt.presents).
				With(model.CmdDrawCalls, tt.draws))
			if got := agg.PerFrame(model.CmdDrawCalls); got != tt.want {
				t.Errorf("PerFrame = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPerFrameUsesLastInterval(t *testing.T) {
	agg := NewAggregator(NewElements(StatSubmissions), newMockClock())
	base := model.Snapshot{}.With(model.QueuePresentCount, 100).With(model.QueueSubmitCount, 1000)
	agg.Update(base)
	agg.Update(base.With(model.QueuePresentCount, 102).With(model.QueueSubmitCount, 1006))

	if got := agg.PerFrame(model.QueueSubmitCount); got != 3 {
		t.Fatalf("expected 3 submissions per frame, got %d", got)
	}
}

func busySnapshot(busy bool) model.Snapshot {
	if busy {
		return model.Snapshot{}.With(model.PipeCompilerBusy, 1)
	}
	return model.Snapshot{}
}

func TestCompilerActivityShownAtStartup(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(CompilerActivity), clock)

	clock.Advance(999 * time.Millisecond)
	if !agg.CompilerActive() {
		t.Fatal("indicator should be visible during the first second")
	}
	clock.Advance(1 * time.Millisecond)
	if agg.CompilerActive() {
		t.Fatal("indicator should be hidden after the first second")
	}
}

func TestCompilerActivityHysteresis(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(CompilerActivity), clock)
	clock.Advance(2 * time.Second)

	agg.Update(busySnapshot(false))
	if agg.CompilerActive() {
		t.Fatal("idle compiler should not be shown")
	}

	agg.Update(busySnapshot(true))
	if !agg.CompilerActive() {
		t.Fatal("busy compiler should be shown")
	}

	clock.Advance(300 * time.Millisecond)
	agg.Update(busySnapshot(false))
	if !agg.CompilerActive() {
		t.Fatal("indicator should linger after compiler goes idle")
	}

	clock.Advance(699 * time.Millisecond)
	if !agg.CompilerActive() {
		t.Fatal("indicator should still be visible at 999ms")
	}

	clock.Advance(1 * time.Millisecond)
	if agg.CompilerActive() {
		t.Fatal("indicator should be hidden 1000ms after the last busy sample")
	}

	// Busy again restarts the window from that moment.
	clock.Advance(5 * time.Second)
	agg.Update(busySnapshot(true))
	if !agg.CompilerActive() {
		t.Fatal("busy compiler should be shown")
	}
	clock.Advance(100 * time.Millisecond)
	agg.Update(busySnapshot(true))
	if !agg.CompilerActive() {
		t.Fatal("sustained busy compiler should be shown")
	}
	clock.Advance(50 * time.Millisecond)
	agg.Update(busySnapshot(false))
	clock.Advance(900 * time.Millisecond)
	if !agg.CompilerActive() {
		t.Fatal("window should restart at the last busy sample")
	}
	clock.Advance(100 * time.Millisecond)
	if agg.CompilerActive() {
		t.Fatal("indicator should be hidden once the restarted window expires")
	}
}

func TestCompilerActivitySingleBusyFrameRefreshesTimer(t *testing.T) {
	clock := newMockClock()
	agg := NewAggregator(NewElements(CompilerActivity), clock)
	clock.Advance(2 * time.Second)

	agg.Update(busySnapshot(false))
	if agg.CompilerActive() {
		t.Fatal("idle compiler should not be shown")
	}

	// One busy frame with idle frames on both sides.
	clock.Advance(16 * time.Millisecond)
	agg.Update(busySnapshot(true))
	if !agg.CompilerActive() {
		t.Fatal("busy compiler should be shown")
	}
	if agg.Diff().Get(model.PipeCompilerBusy) != 1 {
		t.Fatal("busy flag should carry into the interval diff")
	}

	clock.Advance(16 * time.Millisecond)
	agg.Update(busySnapshot(false))
	clock.Advance(983 * time.Millisecond)
	if !agg.CompilerActive() {
		t.Fatal("a lone busy frame should keep the indicator up for a second")
	}
	clock.Advance(1 * time.Millisecond)
	if agg.CompilerActive() {
		t.Fatal("indicator should be hidden 1000ms after the lone busy frame")
	}
}
