package tokenizer

import (
	"reflect"
	"testing"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		first bool
		last  bool
		want  []string
	}{
		{
			name:  "whole corpus in one chunk",
			chunk: "the cats running fastest boxes",
			first: true, last: true,
			want: []string{"the", "cats", "running", "fastest", "boxes"},
		},
		{
			name:  "trailing partial token dropped when not last",
			chunk: "hello wor",
			first: true, last: false,
			want: []string{"hello"},
		},
		{
			name:  "trailing token kept in last chunk",
			chunk: "a b c",
			first: true, last: true,
			want: []string{"a", "b", "c"},
		},
		{
			name:  "leading remnant skipped when not first",
			chunk: "lo world",
			first: false, last: true,
			want: []string{"world"},
		},
		{
			name:  "leading separator consumed when not first",
			chunk: " world",
			first: false, last: true,
			want: []string{"world"},
		},
		{
			name:  "leading whole word skipped when not first",
			chunk: "word next",
			first: false, last: true,
			want: []string{"next"},
		},
		{
			name:  "chunk without separator yields nothing",
			chunk: "abcdefgh",
			first: false, last: false,
			want: nil,
		},
		{
			name:  "chunk without separator yields nothing even when last",
			chunk: "abcdefgh",
			first: false, last: true,
			want: nil,
		},
		{
			name:  "separator on final byte",
			chunk: "abc ",
			first: false, last: false,
			want: nil,
		},
		{
			name:  "punctuation separates",
			chunk: "don't stop-now",
			first: true, last: true,
			want: []string{"don", "t", "stop", "now"},
		},
		{
			name:  "non ascii bytes separate",
			chunk: "café au lait",
			first: true, last: true,
			want: []string{"caf", "au", "lait"},
		},
		{
			name:  "digits separate",
			chunk: "abc123def",
			first: true, last: true,
			want: []string{"abc", "def"},
		},
		{
			name:  "middle chunk",
			chunk: "ab,cd ef gh",
			first: false, last: false,
			want: []string{"cd", "ef"},
		},
		{
			name:  "runs of separators",
			chunk: "  one \n\t two  ",
			first: true, last: false,
			want: []string{"one", "two"},
		},
		{
			name:  "empty chunk",
			chunk: "",
			first: true, last: true,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectTokens([]byte(tt.chunk), tt.first, tt.last)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectTokens(%q, first=%v, last=%v) = %q, want %q", tt.chunk, tt.first, tt.last, got, tt.want)
			}
			if n := countTokens([]byte(tt.chunk), tt.first, tt.last); n != len(tt.want) {
				t.Errorf("countTokens() = %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestScanner_NotRestartable(t *testing.T) {
	s := NewScanner([]byte("one two"), true, true)
	var n int
	for s.Scan() {
		n++
	}
	if n != 2 {
		t.Fatalf("got %d tokens, want 2", n)
	}
	if s.Scan() {
		t.Error("Scan() returned true after exhaustion")
	}
	if s.Token() != nil {
		t.Errorf("Token() = %q after exhaustion, want nil", s.Token())
	}
}

func TestScanner_TokenAliasesBuffer(t *testing.T) {
	buf := []byte("alpha beta")
	s := NewScanner(buf, true, true)
	if !s.Scan() {
		t.Fatal("expected a token")
	}
	tok := s.Token()
	buf[0] = 'A'
	if string(tok) != "Alpha" {
		t.Errorf("Token() = %q, expected it to alias the chunk buffer", tok)
	}
}

func TestIsAlpha(t *testing.T) {
	for b := 0; b < 256; b++ {
		want := (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		if got := IsAlpha(byte(b)); got != want {
			t.Errorf("IsAlpha(%#x) = %v, want %v", b, got, want)
		}
	}
}

func countTokens(buf []byte, first, last bool) int {
	n := 0
	s := NewScanner(buf, first, last)
	for s.Scan() {
		n++
	}
	return n
}

func collectTokens(buf []byte, first, last bool) []string {
	var out []string
	s := NewScanner(buf, first, last)
	for s.Scan() {
		out = append(out, string(s.Token()))
	}
	return out
}
