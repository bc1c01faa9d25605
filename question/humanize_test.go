package question

import "testing"

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hair_color_blond", "hair color blond"},
		{"Hair_Color_Blond", "hair color blond"},
		{"eye.color--RED", "eye color red"},
		{"  spaced   out  ", "spaced out"},
		{"friend/rival", "friend / rival"},
		{"friend / rival", "friend / rival"},
		{"__leading_and_trailing__", "leading and trailing"},
		{"tab\tand\nnewline", "tab and newline"},
		{"", ""},
		{"ÉLÈVE_Ninja", "élève ninja"},
	}
	for _, tt := range tests {
		if got := Humanize(tt.in); got != tt.want {
			t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHumanize_Idempotent(t *testing.T) {
	inputs := []string{
		"hair_color_blond",
		"a//b",
		"x / y_/_z",
		" -._ ",
		"is_Male",
		"weight.kg",
		"Über__Cool",
		"a b",
		"tricky /-/ mix",
	}
	for _, in := range inputs {
		once := Humanize(in)
		if twice := Humanize(once); twice != once {
			t.Errorf("Humanize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"is it?", "Is it?"},
		{"élan", "Élan"},
		{"", ""},
		{"Already", "Already"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
