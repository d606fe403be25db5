// Package pacing maps words to display durations.
package pacing

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	sentenceFactor = 2.0
	clauseFactor   = 1.5
	longWordFactor = 1.2
	longWordRunes  = 10
)

// closers are stripped before terminal punctuation is classified.
const closers = `)"']`

// Delay returns how long word stays on screen at the given words-per-minute.
func Delay(word string, wpm int) time.Duration {
	if wpm <= 0 {
		wpm = 1
	}
	ms := 60000.0 / float64(wpm)

	stripped := strings.TrimRight(word, closers)
	switch {
	case endsWithAny(stripped, ".!?"):
		ms *= sentenceFactor
	case endsWithAny(stripped, ",;:"):
		ms *= clauseFactor
	}

	if utf8.RuneCountInString(word) > longWordRunes {
		ms *= longWordFactor
	}
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// Base returns the undecorated per-word duration at wpm.
func Base(wpm int) time.Duration {
	return Delay("", wpm)
}

func endsWithAny(word, set string) bool {
	if word == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(word)
	return strings.ContainsRune(set, last)
}
