package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Board BoardConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// BoardConfig holds the group card grid configuration.
type BoardConfig struct {
	// HeightReduction is subtracted from terminal height for the card grid.
	// Accounts for: app padding (1) + tab bar (2) + help bar (3) = 6
	HeightReduction int

	// MinHeight is the minimum grid height.
	MinHeight int

	// CardMinWidth is the narrowest a group card may get before the grid
	// drops a column.
	CardMinWidth int

	// MaxColumns caps the number of cards per row.
	MaxColumns int

	// HorizontalOffset is subtracted from the terminal width before
	// splitting it into columns. Accounts for app padding on both sides.
	HorizontalOffset int

	// CardChrome is the width taken by card borders and padding.
	CardChrome int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay key column.
	HelpLeftColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	URLCharLimit    int
	SearchCharLimit int

	StandardWidth int // title, URL, icon inputs
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Board: BoardConfig{
			HeightReduction:  6,
			MinHeight:        5,
			CardMinWidth:     24,
			MaxColumns:       4,
			HorizontalOffset: 4,
			CardChrome:       4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            50,
			MaxWidth:            80,
			HelpLeftColumnWidth: 14,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
