package device

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/maxdcmn/gpuhud/internal/model"
)

const (
	mib          = 1024 * 1024
	chunkSize    = 16 * mib
	maxBurst     = 40
	busyFraction = 0.65
)

// Sim is a synthetic graphics device. Each Frame call advances the counters
// as if one frame had been recorded, submitted and presented.
type Sim struct {
	mu       sync.Mutex
	rng      *rand.Rand
	counters model.Snapshot

	compileLeft int
	frames      uint64
}

func NewSim(seed uint64) *Sim {
	s := &Sim{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	s.counters = s.counters.
		With(model.MemoryAllocated, 4*chunkSize).
		With(model.MemoryUsed, 3*chunkSize)
	return s
}

// StatCounters returns the current counters.
func (s *Sim) StatCounters() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Frames returns how many frames have been simulated.
func (s *Sim) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Frame simulates one presented frame that took dt of wall time.
func (s *Sim) Frame(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counters
	add := func(ctr model.Counter, n uint64) {
		c = c.With(ctr, c.Get(ctr)+n)
	}

	renderPasses := 4 + s.rng.Uint64N(6)
	add(model.QueueSubmitCount, 1+s.rng.Uint64N(3))
	add(model.QueuePresentCount, 1)
	add(model.CmdRenderPassCount, renderPasses)
	add(model.CmdDrawCalls, renderPasses*(80+s.rng.Uint64N(120)))
	add(model.CmdDispatchCalls, s.rng.Uint64N(24))

	// Compilation comes in bursts, usually when new content streams in.
	if s.compileLeft == 0 && s.rng.IntN(120) == 0 {
		s.compileLeft = 1 + s.rng.IntN(maxBurst)
	}
	busy := uint64(0)
	if s.compileLeft > 0 {
		s.compileLeft--
		busy = 1
		add(model.PipeCountGraphics, 1+s.rng.Uint64N(4))
		if s.rng.IntN(4) == 0 {
			add(model.PipeCountCompute, 1)
		}
	}
	c = c.With(model.PipeCompilerBusy, busy)

	used := c.Get(model.MemoryUsed) + s.rng.Uint64N(mib/4)
	for used > c.Get(model.MemoryAllocated) {
		add(model.MemoryAllocated, chunkSize)
	}
	c = c.With(model.MemoryUsed, used)

	micros := uint64(max(dt.Microseconds(), 0))
	load := busyFraction + (s.rng.Float64()-0.5)*0.3
	idle := uint64(float64(micros) * (1 - load))
	add(model.GpuIdleTicks, min(idle, micros))

	s.counters = c
	s.frames++
}

// Run advances the device at the given frame interval until ctx is done.
func (s *Sim) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.Frame(now.Sub(last))
			last = now
		}
	}
}
