package editor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func clusterCount(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset converts a rune offset into a byte offset, clamped to the
// string bounds.
func byteOffset(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runes {
			return i
		}
		n++
	}
	return len(s)
}

// lastClusterStart returns the byte and rune offsets where the final
// grapheme cluster of s begins. A multi-step composed character (for
// example a Hangul syllable assembled from jamo) is one cluster even
// though it spans several runes.
func lastClusterStart(s string) (byteOff, runeOff int) {
	if s == "" {
		return 0, 0
	}
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		start, _ := gr.Positions()
		byteOff = start
	}
	return byteOff, runeLen(s[:byteOff])
}
