package lsbsteg

import (
	"github.com/yyyoichi/lsbsteg/pixel"
	"github.com/yyyoichi/lsbsteg/textmark"
)

type (
	// Mark converts a message to bits and back. The default is textmark.New().
	Mark = textmark.Mark

	// Grid is the pixel buffer a message is hidden in.
	Grid = pixel.Grid
)

// Report describes one HideGrid call.
type Report struct {
	// Chars is the number of characters in the message.
	Chars int
	// Bits is the length of the sequence to embed, end marker and
	// error correction included.
	Bits int
	// Written is how many of those bits fit in the grid.
	Written int
	// Capacity is the number of pixels of the grid.
	Capacity int
}

// Truncated reports whether part of the message or its end marker was lost.
func (r Report) Truncated() bool {
	return r.Written < r.Bits
}
