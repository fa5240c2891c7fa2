package hud

import "github.com/maxdcmn/gpuhud/internal/model"

// Pos is a position on the overlay surface, in pixels from the top left.
type Pos struct {
	X, Y float32
}

type Size struct {
	Width, Height float32
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

var White = Color{1, 1, 1, 1}

// Renderer paints text onto the overlay surface. Calls are synchronous and
// cannot fail.
type Renderer interface {
	DrawText(size float32, pos Pos, color Color, text string)
	SurfaceSize() Size
}

// CounterSource provides the device's current counters.
type CounterSource interface {
	StatCounters() model.Snapshot
}

// SourceFunc adapts a plain function to CounterSource.
type SourceFunc func() model.Snapshot

func (f SourceFunc) StatCounters() model.Snapshot { return f() }
