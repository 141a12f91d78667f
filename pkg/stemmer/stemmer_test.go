package stemmer

import "testing"

func TestStem(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "short token unchanged", token: "cat", want: "cat"},
		{name: "short token keeps case", token: "The", want: "The"},
		{name: "short token with suffix kept", token: "is", want: "is"},
		{name: "es before s", token: "boxes", want: "box"},
		{name: "plain s", token: "runs", want: "run"},
		{name: "est", token: "happiest", want: "happi"},
		{name: "ing", token: "running", want: "runn"},
		{name: "est on fastest", token: "fastest", want: "fast"},
		{name: "ed", token: "walked", want: "walk"},
		{name: "ly", token: "quickly", want: "quick"},
		{name: "ful", token: "hopeful", want: "hope"},
		{name: "ity", token: "parity", want: "par"},
		{name: "trailing s after ing", token: "kings", want: "king"},
		{name: "upper case lowered", token: "CATS", want: "cat"},
		{name: "mixed case lowered", token: "Running", want: "runn"},
		{name: "no suffix lowered", token: "HOUSE", want: "house"},
		{name: "no suffix unchanged", token: "word", want: "word"},
		{name: "suffix equal to whole tail only", token: "sing", want: "s"},
		{name: "four letters ending in s", token: "cats", want: "cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stem(tt.token); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestStem_Deterministic(t *testing.T) {
	tokens := []string{"a", "ab", "abc", "Abcd", "boxes", "Dressing", "fullest", "s", "ss", "sss", "ssss"}
	for _, tok := range tokens {
		first := Stem(tok)
		for i := 0; i < 3; i++ {
			if got := Stem(tok); got != first {
				t.Errorf("Stem(%q) not repeatable: %q then %q", tok, first, got)
			}
		}
		if len(tok) <= 3 && first != tok {
			t.Errorf("Stem(%q) = %q, short tokens must be unchanged", tok, first)
		}
	}
}

func TestStem_StripsAtMostOneSuffix(t *testing.T) {
	// "needless" ends in "s"; only that suffix is removed even though the
	// result still ends in "s".
	if got := Stem("needless"); got != "needles" {
		t.Errorf("Stem(needless) = %q, want %q", got, "needles")
	}
	if got := Stem("boxeses"); got != "boxes" {
		t.Errorf("Stem(boxeses) = %q, want %q", got, "boxes")
	}
}
