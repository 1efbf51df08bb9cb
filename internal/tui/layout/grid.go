package layout

// GridLayout holds the calculated group card grid dimensions.
type GridLayout struct {
	Columns   int
	CardWidth int // outer width of one card including borders
}

// CalculateBoardHeight computes the height available to the card grid.
// Returns at least MinHeight.
func CalculateBoardHeight(terminalHeight int, cfg BoardConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateGrid splits the terminal width into card columns.
// groupCount limits the column count so a few groups use the full width.
func CalculateGrid(terminalWidth, groupCount int, cfg BoardConfig) GridLayout {
	available := terminalWidth - cfg.HorizontalOffset
	if available < cfg.CardMinWidth {
		available = cfg.CardMinWidth
	}

	columns := available / cfg.CardMinWidth
	if columns > cfg.MaxColumns {
		columns = cfg.MaxColumns
	}
	if groupCount > 0 && columns > groupCount {
		columns = groupCount
	}
	if columns < 1 {
		columns = 1
	}

	return GridLayout{
		Columns:   columns,
		CardWidth: available / columns,
	}
}

// CalculateContentWidth computes the width available for text inside a card.
func CalculateContentWidth(cardWidth int, cfg BoardConfig) int {
	width := cardWidth - cfg.CardChrome
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
