package model

import (
	"encoding/json"
	"fmt"
)

// Counter identifies one statistic exposed by the graphics device.
type Counter int

const (
	QueueSubmitCount Counter = iota
	QueuePresentCount
	CmdDrawCalls
	CmdDispatchCalls
	CmdRenderPassCount
	PipeCountGraphics
	PipeCountCompute
	PipeCompilerBusy
	MemoryAllocated
	MemoryUsed
	GpuIdleTicks

	NumCounters
)

var counterNames = [NumCounters]string{
	QueueSubmitCount:   "queue_submit_count",
	QueuePresentCount:  "queue_present_count",
	CmdDrawCalls:       "cmd_draw_calls",
	CmdDispatchCalls:   "cmd_dispatch_calls",
	CmdRenderPassCount: "cmd_render_pass_count",
	PipeCountGraphics:  "pipe_count_graphics",
	PipeCountCompute:   "pipe_count_compute",
	PipeCompilerBusy:   "pipe_compiler_busy",
	MemoryAllocated:    "memory_allocated",
	MemoryUsed:         "memory_used",
	GpuIdleTicks:       "gpu_idle_ticks",
}

func (c Counter) String() string {
	if c < 0 || c >= NumCounters {
		return fmt.Sprintf("counter(%d)", int(c))
	}
	return counterNames[c]
}

// Counters lists every counter in declaration order.
func Counters() []Counter {
	out := make([]Counter, 0, NumCounters)
	for c := Counter(0); c < NumCounters; c++ {
		out = append(out, c)
	}
	return out
}

// Instantaneous reports whether the counter is a sampled flag rather than a
// cumulative count.
func (c Counter) Instantaneous() bool {
	return c == PipeCompilerBusy
}

// Snapshot holds the value of every counter at one point in time.
// The zero value is a valid all-zero snapshot.
type Snapshot struct {
	values [NumCounters]uint64
}

func (s Snapshot) Get(c Counter) uint64 {
	if c < 0 || c >= NumCounters {
		return 0
	}
	return s.values[c]
}

// With returns a copy of s with c set to v.
func (s Snapshot) With(c Counter, v uint64) Snapshot {
	if c >= 0 && c < NumCounters {
		s.values[c] = v
	}
	return s
}

// Diff returns the per-interval activity between prev and s. Cumulative
// counters are subtracted; instantaneous flags carry the current value.
func (s Snapshot) Diff(prev Snapshot) Snapshot {
	var out Snapshot
	for c := Counter(0); c < NumCounters; c++ {
		if c.Instantaneous() {
			out.values[c] = s.values[c]
			continue
		}
		out.values[c] = s.values[c] - prev.values[c]
	}
	return out
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	m := make(map[string]uint64, NumCounters)
	for c := Counter(0); c < NumCounters; c++ {
		m[counterNames[c]] = s.values[c]
	}
	return json.Marshal(m)
}

// UnmarshalJSON ignores unknown keys; missing counters read as zero.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var m map[string]uint64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var next Snapshot
	for c := Counter(0); c < NumCounters; c++ {
		next.values[c] = m[counterNames[c]]
	}
	*s = next
	return nil
}
