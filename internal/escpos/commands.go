// Package escpos encodes print operations as ESC/POS command bytes.
//
// Functions return complete byte sequences and never touch the network, so a
// caller can build, inspect, and transmit them independently. The command set
// covers what a receipt bridge needs: initialization, code page 437 text,
// raster images (GS v 0), one-dimensional barcodes (GS k) and paper cut
// (GS V).
package escpos

import (
	"fmt"
	"strings"
)

// Control bytes.
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	LF  byte = 0x0A
	NUL byte = 0x00
)

// Alignment values for ESC a.
const (
	AlignLeft   byte = 0
	AlignCenter byte = 1
	AlignRight  byte = 2
)

// CutMode selects the paper cut performed by GS V.
type CutMode string

// Supported cut modes.
const (
	CutFull    CutMode = "full"
	CutPartial CutMode = "partial"
)

// ParseCutMode parses a cut mode name case-insensitively.
func ParseCutMode(s string) (CutMode, error) {
	switch CutMode(strings.ToLower(strings.TrimSpace(s))) {
	case CutFull, "":
		return CutFull, nil
	case CutPartial:
		return CutPartial, nil
	default:
		return "", fmt.Errorf("unknown cut mode %q", s)
	}
}

// Initialize returns ESC @, which clears the print buffer and resets modes.
func Initialize() []byte {
	return []byte{ESC, '@'}
}

// Align returns ESC a n.
func Align(n byte) []byte {
	return []byte{ESC, 'a', n}
}

// Feed returns ESC d n: print the buffer and feed n lines.
func Feed(lines int) []byte {
	return []byte{ESC, 'd', clampByte(lines)}
}

// Cut feeds the given number of lines so the last printed line clears the
// cutter, then cuts.
func Cut(feedLines int, mode CutMode) []byte {
	m := byte(0x00)
	if mode == CutPartial {
		m = 0x01
	}
	out := make([]byte, 0, 6)
	if feedLines > 0 {
		out = append(out, Feed(feedLines)...)
	}
	return append(out, GS, 'V', m)
}

func clampByte(n int) byte {
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	default:
		return byte(n)
	}
}
