package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name string
		text string
		want Counter
	}{
		{
			name: "stems are counted",
			text: "the cats running fastest boxes",
			want: Counter{"the": 1, "cat": 1, "runn": 1, "fast": 1, "box": 1},
		},
		{
			name: "different tokens share a stem",
			text: "Box boxes BOXES box",
			want: Counter{"Box": 1, "box": 3},
		},
		{
			name: "trailing token counted",
			text: "walked",
			want: Counter{"walk": 1},
		},
		{
			name: "empty text",
			text: "",
			want: Counter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.WordFrequency(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordFrequency(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCounter_Total(t *testing.T) {
	c := NewCounter()
	for _, tok := range []string{"cats", "cat", "dogs", "dog", "dog"} {
		c.AddToken([]byte(tok))
	}
	if got := c.Total(); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
	if c["cat"] != 2 || c["dog"] != 3 {
		t.Errorf("unexpected counts: %v", c)
	}
}

func TestIsStopword(t *testing.T) {
	tests := []struct {
		stem string
		want bool
	}{
		{stem: "the", want: true},
		{stem: "The", want: false},
		{stem: "and", want: true},
		{stem: "becom", want: true}, // stem of "becoming"
		{stem: "box", want: false},
		{stem: "runn", want: false},
	}
	for _, tt := range tests {
		if got := IsStopword(tt.stem); got != tt.want {
			t.Errorf("IsStopword(%q) = %v, want %v", tt.stem, got, tt.want)
		}
	}
}
