// Package tokenizer splits one chunk of a corpus into alphabetic tokens.
//
// A chunk is scanned independently of its neighbours. Any token that touches
// an internal chunk boundary is dropped whole: the chunk on the left discards
// its unterminated trailing token and the chunk on the right skips everything
// up to and including its first separator. Neither side reassembles the word,
// so at most one token is lost per internal boundary and none is counted
// twice.
package tokenizer

// IsAlpha reports whether b belongs to a token. Every other byte, including
// any byte of a multi-byte UTF-8 sequence, is a separator.
func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Scanner yields the tokens of one chunk. It follows the bufio.Scanner
// pattern: call Scan until it returns false and read each token with Token.
// A Scanner cannot be rewound.
type Scanner struct {
	buf   []byte
	pos   int
	last  bool
	token []byte
}

// NewScanner returns a Scanner over buf. first marks the chunk that starts
// at corpus offset 0; last marks the chunk that ends at the end of the
// corpus. A single-chunk corpus is both.
func NewScanner(buf []byte, first, last bool) *Scanner {
	s := &Scanner{buf: buf, last: last}
	if !first {
		s.pos = skipLeadingEdge(buf)
	}
	return s
}

// skipLeadingEdge returns the offset just past the first separator. If the
// chunk has no separator it returns len(buf) and the chunk yields nothing.
func skipLeadingEdge(buf []byte) int {
	i := 0
	for i < len(buf) && IsAlpha(buf[i]) {
		i++
	}
	if i < len(buf) {
		i++
	}
	return i
}

// Scan advances to the next token.
func (s *Scanner) Scan() bool {
	s.token = nil
	n := len(s.buf)

	for s.pos < n && !IsAlpha(s.buf[s.pos]) {
		s.pos++
	}
	if s.pos >= n {
		return false
	}

	start := s.pos
	for s.pos < n && IsAlpha(s.buf[s.pos]) {
		s.pos++
	}

	// Unterminated at the right edge: only the final chunk may keep it.
	if s.pos == n && !s.last {
		return false
	}

	s.token = s.buf[start:s.pos]
	return true
}

// Token returns the most recent token. The slice aliases the chunk buffer
// and is only valid until the next call to Scan.
func (s *Scanner) Token() []byte {
	return s.token
}
