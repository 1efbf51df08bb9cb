package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		percent       int
		want          int
	}{
		{"clamped to min", 120, 40, 50},  // 48 -> 50
		{"percentage used", 150, 40, 60}, // 60
		{"clamped to max", 250, 40, 80},  // 100 -> 80
		{"narrow terminal", 52, 40, 48},  // 50 exceeds 52 - 4
		{"tiny terminal clamps to 1", 3, 40, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, tt.percent, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.percent, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name        string
		maxVisible  int
		selectedIdx int
		totalItems  int
		wantStart   int
		wantEnd     int
	}{
		{"at start", 5, 0, 10, 0, 5},
		{"near start", 5, 2, 10, 0, 5},
		{"in middle", 5, 7, 10, 3, 8},
		{"at end", 5, 9, 10, 5, 10},
		{"fewer than max", 5, 2, 3, 0, 3},
		{"exact max items", 5, 2, 5, 0, 5},
		{"selected beyond max", 8, 10, 15, 3, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleListItems(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.selectedIdx, tt.totalItems,
					start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
