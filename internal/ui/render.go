package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/model"
)

// renderOverlayPanel draws the stats overlay onto a fresh canvas sized to
// the panel interior.
func (m *DashboardModel) renderOverlayPanel(width, height int) string {
	width, height = ensureMin(width, height, 20, 5)

	if m.fetch == nil {
		return m.renderEmptyState(width, height, "No counter source configured")
	}
	if !m.loaded {
		return m.renderEmptyState(width, height, "Waiting for counters...")
	}
	if m.lastErr != nil && m.frames == 0 {
		return m.renderEmptyState(width, height, fmt.Sprintf("Error: %s", m.lastErr.Error()))
	}

	canvas := NewCanvas(width-4, height-2)
	m.overlay.Render(canvas, hud.Pos{})
	return borderStyle(width, height, true).Render(canvas.Render())
}

func (m *DashboardModel) renderSidePanel(width, height int) string {
	width, height = ensureMin(width, height, 20, 5)

	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen)).Render("Counters")
	b.WriteString(header + "\n\n")

	counters := m.overlay.Counters()
	for _, c := range model.Counters() {
		value := fmt.Sprintf("%d", counters.Get(c))
		switch {
		case c == model.MemoryAllocated || c == model.MemoryUsed:
			value = formatBytes(counters.Get(c))
		case c.Instantaneous():
			value = "idle"
			if counters.Get(c) != 0 {
				value = styleColor(colorOrange).Render("busy")
			}
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", c.String()+":")), value))
	}

	chartWidth := max(10, width-6)
	load := m.getLoadHistory()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		lipgloss.NewStyle().Foreground(loadColor).Bold(true).Render("GPU load"),
		styleColor(getPercentColor(float64(m.overlay.GPULoad()))).Render(fmt.Sprintf("%d%%", m.overlay.GPULoad()))))
	b.WriteString(renderSparkline(load, chartWidth, loadColor, 100) + "\n")

	draws := m.getDrawsHistory()
	b.WriteString(fmt.Sprintf("%s %s\n",
		lipgloss.NewStyle().Foreground(drawsColor).Bold(true).Render("Draws/frame"),
		styleColor(colorItalic).Render(fmt.Sprintf("%d", m.overlay.PerFrame(model.CmdDrawCalls)))))
	b.WriteString(renderSparkline(draws, chartWidth, drawsColor, 0) + "\n")

	m.fillToHeight(&b, b.String(), width, height-2, colorBg)
	return borderStyle(width, height, false).Render(b.String())
}

func (m *DashboardModel) renderEmptyState(width, height int, message string) string {
	var b strings.Builder
	b.WriteString("\n")
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorDim)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width - 4)
	b.WriteString(emptyStyle.Render(message))
	m.fillToHeight(&b, b.String(), width, height-2, colorBg)
	return borderStyle(width, height, false).Render(b.String())
}

func (m *DashboardModel) renderStatusBar(width, height int) string {
	width, height = ensureMin(width, height, 10, 1)

	keys := "?: help  p: pause  q: quit"
	if m.paused {
		keys = styleColor(colorYellow).Render("paused") + "  " + keys
	}
	leftContent := styleColor(colorItalic).Render(keys)

	source := truncateName(m.sourceName, 32)
	uptime := formatUptime(m.clock.Now().Sub(m.started))
	last := "--:--:--"
	if !m.lastSample.IsZero() {
		last = formatTime(m.lastSample)
	}
	versionV := styleColor(colorGreen).Bold(true).Render("v")
	versionNum := styleColor(colorGreen).Render(version)
	rightContent := fmt.Sprintf("%s  frames %d  last %s  up %s  %s%s",
		styleColor(colorYellow).Render(source), m.frames, last, uptime, versionV, versionNum)

	availableWidth := width - 2
	leftLen := lipgloss.Width(leftContent)
	rightLen := lipgloss.Width(rightContent)
	spacerLen := max(1, availableWidth-leftLen-rightLen)

	content := leftContent + strings.Repeat(" ", spacerLen) + rightContent
	return statusBarStyle.Width(width).Height(height).Render(content)
}

func (m *DashboardModel) fillToHeight(b *strings.Builder, content string, width, targetHeight int, bgColor string) {
	lines := strings.Split(content, "\n")
	fillWidth := max(0, width-4)
	bgFill := lipgloss.NewStyle().Background(lipgloss.Color(bgColor)).Render(strings.Repeat(" ", fillWidth))
	for i := len(lines); i < targetHeight; i++ {
		b.WriteString(bgFill + "\n")
	}
}
