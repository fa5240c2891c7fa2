package hud

import (
	"testing"
	"time"

	"github.com/maxdcmn/gpuhud/internal/model"
)

// mockClock is a manually advanced clock.
type mockClock struct {
	current time.Time
}

func newMockClock() *mockClock {
	return &mockClock{current: time.Unix(1_700_000_000, 0)}
}

func (m *mockClock) Now() time.Time { return m.current }

func (m *mockClock) Advance(d time.Duration) { m.current = m.current.Add(d) }

type drawCall struct {
	size  float32
	pos   Pos
	color Color
	text  string
}

// recordingRenderer captures every DrawText call.
type recordingRenderer struct {
	size  Size
	calls []drawCall
}

func newRecorder() *recordingRenderer {
	return &recordingRenderer{size: Size{Width: 800, Height: 600}}
}

func (r *recordingRenderer) DrawText(size float32, pos Pos, color Color, text string) {
	r.calls = append(r.calls, drawCall{size: size, pos: pos, color: color, text: text})
}

func (r *recordingRenderer) SurfaceSize() Size { return r.size }

func (r *recordingRenderer) texts() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.text
	}
	return out
}

func staticSource(s model.Snapshot) SourceFunc {
	return func() model.Snapshot { return s }
}

func failingSource(t *testing.T) SourceFunc {
	return func() model.Snapshot {
		t.Helper()
		t.Fatal("counter source must not be read")
		return model.Snapshot{}
	}
}
