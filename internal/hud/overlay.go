package hud

import "github.com/maxdcmn/gpuhud/internal/model"

// statElements is the subset of elements the stats overlay knows how to
// draw. Anything else in a configured set is dropped.
var statElements = NewElements(
	StatSubmissions,
	StatDrawCalls,
	StatPipelines,
	StatMemory,
	StatGpuLoad,
	CompilerActivity,
)

// Overlay combines the aggregator and composer behind a per-frame
// Update/Render pair.
type Overlay struct {
	elements Elements
	stats    *Aggregator
	composer *Composer
}

func New(elements Elements, clock Clock) *Overlay {
	filtered := elements.Intersect(statElements)
	stats := NewAggregator(filtered, clock)
	return &Overlay{
		elements: filtered,
		stats:    stats,
		composer: NewComposer(stats),
	}
}

// Update pulls the next counter snapshot from src.
func (o *Overlay) Update(src CounterSource) {
	if o.elements.Empty() {
		return
	}
	o.stats.Update(src.StatCounters())
}

// Render draws every enabled block starting at pos and returns the position
// below the last stacked block.
func (o *Overlay) Render(r Renderer, pos Pos) Pos {
	if o.elements.Has(StatSubmissions) {
		pos = o.composer.printSubmissionStats(r, pos)
	}
	if o.elements.Has(StatDrawCalls) {
		pos = o.composer.printDrawCallStats(r, pos)
	}
	if o.elements.Has(StatPipelines) {
		pos = o.composer.printPipelineStats(r, pos)
	}
	if o.elements.Has(StatMemory) {
		pos = o.composer.printMemoryStats(r, pos)
	}
	if o.elements.Has(StatGpuLoad) {
		pos = o.composer.printGPULoad(r, pos)
	}
	if o.elements.Has(CompilerActivity) {
		o.composer.printCompilerActivity(r, Pos{pos.X, r.SurfaceSize().Height - 20})
	}
	return pos
}

// Elements returns the filtered set of enabled elements.
func (o *Overlay) Elements() Elements { return o.elements }

func (o *Overlay) GPULoad() uint64 { return o.stats.GPULoad() }

func (o *Overlay) PerFrame(c model.Counter) uint64 { return o.stats.PerFrame(c) }

func (o *Overlay) Counters() model.Snapshot { return o.stats.Counters() }
