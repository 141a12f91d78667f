// Package stemmer normalizes raw tokens by lower-casing and stripping at most
// one suffix. It is a heuristic, not a linguistic stemmer.
package stemmer

import "strings"

// suffixes are tested in order; the first match wins.
// "es" must stay ahead of "s" so "boxes" becomes "box", not "boxe".
var suffixes = []string{"ing", "ed", "ly", "ful", "est", "ity", "es", "s"}

// Stem returns the normalized form of token.
// Tokens of three bytes or fewer are returned unchanged, case included.
func Stem(token string) string {
	if len(token) <= 3 {
		return token
	}

	word := toLowerASCII(token)
	for _, suffix := range suffixes {
		if len(word) > len(suffix) && strings.HasSuffix(word, suffix) {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

// toLowerASCII avoids the allocation when token is already lower case.
func toLowerASCII(token string) string {
	for i := 0; i < len(token); i++ {
		if c := token[i]; c >= 'A' && c <= 'Z' {
			b := []byte(token)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return token
}
