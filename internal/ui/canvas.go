package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maxdcmn/gpuhud/internal/hud"
)

// Terminal cells stand in for pixels: one cell is cellWidth x cellHeight
// overlay units, so a 20 unit line advance maps to one row.
const (
	cellWidth  = 8
	cellHeight = 20
)

type cell struct {
	r     rune
	color string
}

// Canvas is a character grid implementing hud.Renderer.
type Canvas struct {
	cols, rows int
	cells      [][]cell
}

func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *Canvas) SurfaceSize() hud.Size {
	return hud.Size{Width: float32(c.cols * cellWidth), Height: float32(c.rows * cellHeight)}
}

// DrawText clips text that falls outside the grid.
func (c *Canvas) DrawText(size float32, pos hud.Pos, color hud.Color, text string) {
	if pos.X < 0 || pos.Y < 0 {
		return
	}
	row := int(pos.Y / cellHeight)
	col := int(pos.X / cellWidth)
	if row >= c.rows || col >= c.cols {
		return
	}
	hex := colorHex(color)
	for _, r := range text {
		if col >= c.cols {
			break
		}
		c.cells[row][col] = cell{r: r, color: hex}
		col++
	}
}

// Lines returns the grid without styling.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	for i, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		out[i] = b.String()
	}
	return out
}

// Render returns the grid with runs of same colored cells styled together.
func (c *Canvas) Render() string {
	lines := make([]string, c.rows)
	for i, row := range c.cells {
		var b, run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != runColor {
				flush()
				runColor = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func colorHex(c hud.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
