package ascii

import "testing"

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Rust", 4},
		{"全角", 4},
		{"café", 4},
		{"├─┤", 3},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align Align
		want  string
	}{
		{"left", "Go", 5, AlignLeft, "Go   "},
		{"right", "42", 5, AlignRight, "   42"},
		{"center even", "ab", 6, AlignCenter, "  ab  "},
		{"center odd", "ab", 5, AlignCenter, " ab  "},
		{"wide runes", "日本", 6, AlignLeft, "日本  "},
		{"already wide", "overflow", 3, AlignRight, "overflow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pad(tt.in, tt.width, tt.align); got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
