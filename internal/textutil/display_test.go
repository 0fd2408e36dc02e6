package textutil

import "testing"

func TestDisplayNameComposesDecomposedNames(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	if got := DisplayName(decomposed); got != "caf\u00e9.txt" {
		t.Fatalf("DisplayName(%q) = %q, want composed form", decomposed, got)
	}
}

func TestDisplayNameSanitizes(t *testing.T) {
	if got := DisplayName("evil\x1b]0;x\a"); got != "evil?]0;x?" {
		t.Fatalf("DisplayName sanitized to %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "report.txt", 10},
		{"wide cjk", "文書", 4},
		{"combining accent", "e\u0301", 1},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}
