package glint

import (
	"github.com/rivo/uniseg"
)

// CellLength returns the width of a text run in terminal cells,
// accounting for zero-width and double-width code points via grapheme
// cluster segmentation. It is total: unmappable characters count one
// cell and no input fails.
func CellLength(text string) int {
	if text == "" {
		return 0
	}
	// Fast path for ASCII, which dominates real output.
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return len(text)
	}
	return uniseg.StringWidth(text)
}

// splitTextCells splits text at the given cell offset. A cut landing
// inside a multi-cell grapheme cluster rounds down to the cluster
// start, so the left half is at most cut cells wide.
func splitTextCells(text string, cut int) (string, string) {
	if cut <= 0 {
		return "", text
	}
	if CellLength(text) <= cut {
		return text, ""
	}
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if width+w > cut {
			start, _ := g.Positions()
			return text[:start], text[start:]
		}
		width += w
	}
	return text, ""
}

// firstGrapheme splits off the first grapheme cluster of text.
func firstGrapheme(text string) (string, string) {
	g := uniseg.NewGraphemes(text)
	if g.Next() {
		_, to := g.Positions()
		return text[:to], text[to:]
	}
	return text, ""
}
