package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/model"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

type DataPoint struct {
	Time          time.Time
	GPULoad       uint64
	DrawsPerFrame uint64
}

// FetchFunc produces the device counters for the next frame.
type FetchFunc func(ctx context.Context) (model.Snapshot, error)

type Options struct {
	Elements   hud.Elements
	Interval   time.Duration
	Timeout    time.Duration
	SourceName string
	Fetch      FetchFunc
	Clock      hud.Clock
}

// DashboardModel hosts the stats overlay in the terminal. Every frame it
// fetches counters, updates the overlay and redraws.
type DashboardModel struct {
	overlay       *hud.Overlay
	fetch         FetchFunc
	sourceName    string
	clock         hud.Clock
	interval      time.Duration
	timeout       time.Duration
	width         int
	height        int
	started       time.Time
	lastSample    time.Time
	lastErr       error
	loaded        bool
	paused        bool
	helpActive    bool
	quitting      bool
	frames        uint64
	history       []DataPoint
	fetchSequence int
}

func NewDashboard(opts Options) *DashboardModel {
	if opts.Clock == nil {
		opts.Clock = hud.SystemClock{}
	}
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	return &DashboardModel{
		overlay:    hud.New(opts.Elements, opts.Clock),
		fetch:      opts.Fetch,
		sourceName: opts.SourceName,
		clock:      opts.Clock,
		interval:   opts.Interval,
		timeout:    opts.Timeout,
		started:    opts.Clock.Now(),
		history:    make([]DataPoint, 0, maxHistorySize),
	}
}

type frameMsg time.Time
type snapMsg struct {
	s        model.Snapshot
	err      error
	fetchSeq int
}

func (m *DashboardModel) Init() tea.Cmd {
	if m.fetch == nil {
		return nil
	}
	return m.fetchSnapshot()
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *DashboardModel) fetchSnapshot() tea.Cmd {
	fetch, timeout, seq := m.fetch, m.timeout, m.fetchSequence
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s, err := fetch(ctx)
		return snapMsg{s: s, err: err, fetchSeq: seq}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.helpActive {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.helpActive = false
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case frameMsg:
		if m.paused || m.fetch == nil {
			return m, nil
		}
		return m, m.fetchSnapshot()

	case snapMsg:
		if msg.fetchSeq != m.fetchSequence {
			return m, nil
		}
		m.loaded = true
		m.lastErr = msg.err
		if msg.err != nil {
			utils.Warn("counter fetch failed", "source", m.sourceName, "error", msg.err)
		} else {
			m.applySnapshot(msg.s)
		}
		return m, tick(m.interval)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) applySnapshot(s model.Snapshot) {
	m.overlay.Update(hud.SourceFunc(func() model.Snapshot { return s }))
	m.frames++
	m.lastSample = m.clock.Now()

	m.history = append(m.history, DataPoint{
		Time:          m.lastSample,
		GPULoad:       m.overlay.GPULoad(),
		DrawsPerFrame: m.overlay.PerFrame(model.CmdDrawCalls),
	})
	if len(m.history) > maxHistorySize {
		m.history = m.history[1:]
	}
	utils.Debug("frame updated", "frame", m.frames, "gpu_load", m.overlay.GPULoad())
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.helpActive = !m.helpActive
		return m, nil
	case "p":
		m.paused = !m.paused
		// Drop any fetch still in flight from before the toggle.
		m.fetchSequence++
		if !m.paused && m.fetch != nil {
			return m, m.fetchSnapshot()
		}
		return m, nil
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	sizes := calculateContainerSizes(m.width, m.height)
	overlayPanel := m.renderOverlayPanel(sizes.Overlay.Width, sizes.Overlay.Height)
	sidePanel := m.renderSidePanel(sizes.Side.Width, sizes.Side.Height)
	statusBar := m.renderStatusBar(sizes.StatusBar.Width, sizes.StatusBar.Height)

	separator := lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)).Render("│")
	main := lipgloss.JoinHorizontal(lipgloss.Top, overlayPanel, separator, sidePanel)
	content := lipgloss.JoinVertical(lipgloss.Left, main, statusBar)

	if m.helpActive {
		helpText := `Keyboard Shortcuts
?         - Show this help
q, ctrl+c - Quit
p         - Pause / resume sampling
Press any key to close`
		popup := popupStyle.Width(40).Render(helpText)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
	}

	return content
}

func (m *DashboardModel) getHistory(extractor func(DataPoint) float64) []float64 {
	values := make([]float64, len(m.history))
	for i, dp := range m.history {
		values[i] = extractor(dp)
	}
	return values
}

func (m *DashboardModel) getLoadHistory() []float64 {
	return m.getHistory(func(dp DataPoint) float64 { return float64(dp.GPULoad) })
}

func (m *DashboardModel) getDrawsHistory() []float64 {
	return m.getHistory(func(dp DataPoint) float64 { return float64(dp.DrawsPerFrame) })
}
