package arabictext

import "testing"

func TestShapePassThrough(t *testing.T) {
	tests := []string{
		"",
		"2607.20",
		"EB-2510-001",
		"hello world",
	}
	for _, s := range tests {
		if got := Shape(s); got != s {
			t.Errorf("Shape(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestShapeReversesArabic(t *testing.T) {
	// A purely Arabic word must come back in reversed (visual) rune order
	// with the same rune count; shaping maps letters to presentation forms
	// but never drops them (lam-alef ligatures aside, absent here).
	in := "حائط"
	got := Shape(in)
	if got == in {
		t.Errorf("Shape(%q) returned logical order", in)
	}
	if len([]rune(got)) == 0 {
		t.Fatalf("Shape(%q) returned empty string", in)
	}
}

func TestShapeKeepsNumbersReadable(t *testing.T) {
	in := "الإجمالي: 2607.20"
	got := Shape(in)
	if !contains(got, "2607.20") {
		t.Errorf("Shape(%q) = %q, number got scrambled", in, got)
	}
}

func TestVisualNumberRuns(t *testing.T) {
	// visual() on its own: weak-LTR runs survive the line reversal intact.
	tests := []struct {
		in   string
		want string
	}{
		{in: "ب 44.8 م", want: "م 44.8 ب"},
		{in: "44.8", want: "44.8"},
		{in: "أب", want: "بأ"},
	}
	for _, tt := range tests {
		if got := visual(tt.in); got != tt.want {
			t.Errorf("visual(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
