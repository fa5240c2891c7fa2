package hud

import (
	"fmt"
	"time"

	"github.com/maxdcmn/gpuhud/internal/model"
)

const (
	gpuLoadInterval    = 500 * time.Millisecond
	compilerHysteresis = 1000 * time.Millisecond
)

// Aggregator turns cumulative device counters into per-frame and windowed
// values. It is driven from a single render loop and holds no locks.
type Aggregator struct {
	clock    Clock
	elements Elements

	prev model.Snapshot
	diff model.Snapshot

	gpuLoadUpdateTime time.Time
	prevGpuIdleTicks  uint64
	gpuLoadPercent    uint64
	gpuLoadString     string

	compilerShowTime time.Time
}

func NewAggregator(elements Elements, clock Clock) *Aggregator {
	if clock == nil {
		clock = SystemClock{}
	}
	now := clock.Now()
	return &Aggregator{
		clock:             clock,
		elements:          elements,
		gpuLoadUpdateTime: now,
		gpuLoadString:     "GPU: 0%",
		compilerShowTime:  now,
	}
}

// Update consumes the next snapshot. It does nothing when no element is
// enabled.
func (a *Aggregator) Update(next model.Snapshot) {
	if a.elements.Empty() {
		return
	}

	// Some counters are shown as absolute values, others as the average
	// increment per frame.
	a.diff = next.Diff(a.prev)
	a.prev = next

	if a.elements.Has(StatGpuLoad) {
		a.updateGPULoad()
	}
}

// updateGPULoad refreshes the load estimate at most every 500ms.
func (a *Aggregator) updateGPULoad() {
	now := a.clock.Now()
	ticks := elapsedMicros(a.gpuLoadUpdateTime, now)
	if ticks < uint64(gpuLoadInterval.Microseconds()) {
		return
	}
	a.gpuLoadUpdateTime = now

	idle := a.prev.Get(model.GpuIdleTicks)
	diffIdle := idle - a.prevGpuIdleTicks
	a.prevGpuIdleTicks = idle

	var busyTicks uint64
	if ticks > diffIdle {
		busyTicks = ticks - diffIdle
	}

	a.gpuLoadPercent = (100 * busyTicks) / ticks
	a.gpuLoadString = fmt.Sprintf("GPU: %d%%", a.gpuLoadPercent)
}

// CompilerActive reports whether the shader compiler indicator should be
// shown. It keeps the indicator up for a second after the last busy sample.
func (a *Aggregator) CompilerActive() bool {
	now := a.clock.Now()
	busy := a.prev.Get(model.PipeCompilerBusy) != 0

	if busy && a.diff.Get(model.PipeCompilerBusy) != 0 {
		a.compilerShowTime = now
	}
	if busy {
		return true
	}
	return now.Sub(a.compilerShowTime) < compilerHysteresis
}

// PerFrame returns the counter's increment averaged over the frames
// presented during the last interval.
func (a *Aggregator) PerFrame(c model.Counter) uint64 {
	return a.diff.Get(c) / a.frameCount()
}

func (a *Aggregator) frameCount() uint64 {
	return max(a.diff.Get(model.QueuePresentCount), 1)
}

// Counters returns the most recent snapshot.
func (a *Aggregator) Counters() model.Snapshot { return a.prev }

// Diff returns the activity of the last interval.
func (a *Aggregator) Diff() model.Snapshot { return a.diff }

func (a *Aggregator) GPULoad() uint64 { return a.gpuLoadPercent }

func (a *Aggregator) GPULoadString() string { return a.gpuLoadString }

func elapsedMicros(from, to time.Time) uint64 {
	d := to.Sub(from).Microseconds()
	if d < 0 {
		return 0
	}
	return uint64(d)
}
