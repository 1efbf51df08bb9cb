package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"multiple codes", "\x1b[1m\x1b[31mred bold\x1b[0m", "red bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"unicode", "こんにちは", 5},
		{"mixed ANSI and unicode", "\x1b[1mこんにちは\x1b[0m", 5},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"unicode text", "こんにちは", 4, "こ...", true},
		{"unicode no truncation", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		text     string
		suffix   string
		maxWidth int
		want     string
	}{
		{"fits", "Development", " (3)", 20, "Development (3)"},
		{"truncates text keeps suffix", "Development", " (3)", 12, "Devel... (3)"},
		{"suffix wider than max", "Dev", " (12)", 4, "D..."},
		{"empty suffix", "Development", "", 8, "Devel..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithSuffix(tt.text, tt.suffix, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("TruncateWithSuffix(%q, %q, %d) = %q, want %q",
					tt.text, tt.suffix, tt.maxWidth, got, tt.want)
			}
		})
	}
}
