package orp

import (
	"testing"
	"unicode/utf8"
)

func TestOffset(t *testing.T) {
	cases := map[string]int{
		"":              0,
		"a":             0,
		"an":            0,
		"the":           0,
		"word":          1,
		"reader":        1,
		"recognition":   3,
		"éclair":        1,
		"extraordinary": 3,
	}
	for word, want := range cases {
		if got := Offset(word); got != want {
			t.Fatalf("Offset(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestOffsetInRange(t *testing.T) {
	word := ""
	for i := 0; i < 40; i++ {
		word += "x"
		got := Offset(word)
		if got < 0 || got >= utf8.RuneCountInString(word) {
			t.Fatalf("Offset out of range for len %d: %d", i+1, got)
		}
	}
}
