// Package orp locates the Optimal Recognition Point of a word.
package orp

import "unicode/utf8"

// Offset returns the rune index the eye should fixate on.
// Words of one or two runes anchor on the first rune; longer words
// anchor roughly 30% in.
func Offset(word string) int {
	n := utf8.RuneCountInString(word)
	if n <= 2 {
		return 0
	}
	return n * 3 / 10
}
