package tui

import (
	xansi "github.com/charmbracelet/x/ansi"
)

// clipLine truncates a possibly-styled line to the given cell width,
// terminating ANSI styling so colors never bleed into adjacent chrome.
func clipLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Cut(s, 0, width) + "\x1b[0m"
}
