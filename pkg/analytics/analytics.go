package analytics

import (
	"github.com/dtnitsch/wordfreq/pkg/stemmer"
	"github.com/dtnitsch/wordfreq/pkg/tokenizer"
)

// Counter maps a stem to its number of occurrences. During a scan each
// worker owns exactly one Counter; nothing else reads or writes it until the
// worker has finished.
type Counter map[string]int64

// NewCounter returns an empty Counter.
func NewCounter() Counter {
	return make(Counter)
}

// AddToken stems a raw token and counts it.
func (c Counter) AddToken(token []byte) {
	c[stemmer.Stem(string(token))]++
}

// Total returns the sum of all counts.
func (c Counter) Total() int64 {
	var n int64
	for _, v := range c {
		n += v
	}
	return n
}

type Analytics struct{}

// WordFrequency counts the stems of a complete text, treating it as a
// single chunk so no token is lost to a boundary.
func (a *Analytics) WordFrequency(text string) Counter {
	frequencies := NewCounter()
	s := tokenizer.NewScanner([]byte(text), true, true)
	for s.Scan() {
		frequencies.AddToken(s.Token())
	}
	return frequencies
}
