package hud

import (
	"fmt"

	"github.com/maxdcmn/gpuhud/internal/model"
)

const (
	fontSize    = 16.0
	lineSpacing = 20.0
	mib         = 1024 * 1024
)

// Composer lays out the stat blocks and hands each line to the renderer.
type Composer struct {
	stats *Aggregator
}

func NewComposer(stats *Aggregator) *Composer {
	return &Composer{stats: stats}
}

func (c *Composer) drawLines(r Renderer, pos Pos, lines ...string) {
	for i, line := range lines {
		r.DrawText(fontSize, Pos{pos.X, pos.Y + float32(i)*lineSpacing}, White, line)
	}
}

func (c *Composer) printSubmissionStats(r Renderer, pos Pos) Pos {
	c.drawLines(r, pos,
		fmt.Sprintf("Queue submissions: %d", c.stats.PerFrame(model.QueueSubmitCount)))
	return Pos{pos.X, pos.Y + 24}
}

func (c *Composer) printDrawCallStats(r Renderer, pos Pos) Pos {
	c.drawLines(r, pos,
		fmt.Sprintf("Draw calls:     %d", c.stats.PerFrame(model.CmdDrawCalls)),
		fmt.Sprintf("Dispatch calls: %d", c.stats.PerFrame(model.CmdDispatchCalls)),
		fmt.Sprintf("Render passes:  %d", c.stats.PerFrame(model.CmdRenderPassCount)))
	return Pos{pos.X, pos.Y + 64}
}

func (c *Composer) printPipelineStats(r Renderer, pos Pos) Pos {
	counters := c.stats.Counters()
	c.drawLines(r, pos,
		fmt.Sprintf("Graphics pipelines: %d", counters.Get(model.PipeCountGraphics)),
		fmt.Sprintf("Compute pipelines:  %d", counters.Get(model.PipeCountCompute)))
	return Pos{pos.X, pos.Y + 44}
}

func (c *Composer) printMemoryStats(r Renderer, pos Pos) Pos {
	counters := c.stats.Counters()
	c.drawLines(r, pos,
		fmt.Sprintf("Memory allocated: %d MB", counters.Get(model.MemoryAllocated)/mib),
		fmt.Sprintf("Memory used:      %d MB", counters.Get(model.MemoryUsed)/mib))
	return Pos{pos.X, pos.Y + 44}
}

func (c *Composer) printGPULoad(r Renderer, pos Pos) Pos {
	c.drawLines(r, pos, c.stats.GPULoadString())
	return Pos{pos.X, pos.Y + 24}
}

// printCompilerActivity draws at a fixed anchor and is not part of the
// vertical stack.
func (c *Composer) printCompilerActivity(r Renderer, pos Pos) Pos {
	if c.stats.CompilerActive() {
		c.drawLines(r, pos, "Compiling shaders...")
	}
	return Pos{pos.X, pos.Y + 24}
}
