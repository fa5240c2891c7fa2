package ui

type layoutConfig struct {
	OverlayWidthRatio float64
	MinOverlayWidth   int
	Margin            int
	StatusBarHeight   int
}

type containerSizes struct {
	Overlay   containerSize
	Side      containerSize
	StatusBar containerSize
}

type containerSize struct {
	Width  int
	Height int
}

var defaultLayout = layoutConfig{
	OverlayWidthRatio: 0.45,
	MinOverlayWidth:   30,
	Margin:            2,
	StatusBarHeight:   1,
}

// calculateContainerSizes splits the window into the overlay surface on the
// left, the counter/chart panel on the right and a status bar underneath.
func calculateContainerSizes(windowWidth, windowHeight int) containerSizes {
	cfg := defaultLayout
	sizes := containerSizes{}

	if windowWidth < 40 {
		windowWidth = 40
	}
	if windowHeight < 12 {
		windowHeight = 12
	}

	panelHeight := windowHeight - cfg.StatusBarHeight - cfg.Margin
	if panelHeight < 5 {
		panelHeight = 5
	}

	overlayWidth := int(float64(windowWidth)*cfg.OverlayWidthRatio) - cfg.Margin
	if overlayWidth < cfg.MinOverlayWidth {
		overlayWidth = cfg.MinOverlayWidth
	}
	sizes.Overlay = containerSize{Width: overlayWidth, Height: panelHeight}

	sideWidth := windowWidth - overlayWidth - 2*cfg.Margin - 1
	if sideWidth < 20 {
		sideWidth = 20
	}
	sizes.Side = containerSize{Width: sideWidth, Height: panelHeight}

	sizes.StatusBar = containerSize{Width: windowWidth, Height: cfg.StatusBarHeight}
	return sizes
}
