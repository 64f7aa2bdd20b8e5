// Package textmark converts text to the bit sequence hidden in an image and
// back. Every character is written as one byte, most significant bit first,
// and the sequence is closed by a 16-bit end marker.
package textmark

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yyyoichi/lsbsteg/internal/bitconv"
)

const (
	// EndMarker closes every encoded message.
	EndMarker = "1111111111111110"
	// MaxRune is the largest code point that fits in one encoded character.
	MaxRune rune = 0xff

	bitsPerChar = 8
)

var (
	ErrEncodingRange  = errors.New("character does not fit in 8 bits")
	ErrTruncatedGroup = errors.New("trailing bit group shorter than 8 bits")
)

var endMarker = bitconv.ParseBits(EndMarker)

// Encode encodes the input string into a slice of booleans representing bits.
// The result is 8 bits per character followed by EndMarker, so its length is
// always 8*utf8.RuneCountInString(src)+16.
func Encode(src string) ([]bool, error) {
	chars := make([]byte, 0, len(src))
	for i, r := range []rune(src) {
		if r > MaxRune {
			return nil, fmt.Errorf("%w: %U at index %d", ErrEncodingRange, r, i)
		}
		chars = append(chars, byte(r))
	}
	return append(bitconv.BytesToBools(chars), endMarker...), nil
}

// Decode decodes the input slice of booleans back into the original string.
//
// The message ends at the first EndMarker found at any bit offset. Without a
// marker the whole input is decoded. A final group of fewer than 8 bits is
// reported as ErrTruncatedGroup.
func Decode(mark []bool) (string, error) {
	if at, ok := Locate(mark); ok {
		mark = mark[:at]
	}
	if rest := len(mark) % bitsPerChar; rest != 0 {
		return "", fmt.Errorf("%w: %d bits left over after %d characters", ErrTruncatedGroup, rest, len(mark)/bitsPerChar)
	}
	var sb strings.Builder
	sb.Grow(len(mark) / bitsPerChar)
	for _, c := range bitconv.BoolsToBytes(mark) {
		sb.WriteRune(rune(c))
	}
	return sb.String(), nil
}

// Locate reports the bit offset of the first EndMarker in mark.
func Locate(mark []bool) (at int, found bool) {
	at = bitconv.Index(mark, endMarker)
	return at, at >= 0
}

// EncodedLen returns the number of bits Encode produces for n characters.
func EncodedLen(n int) int {
	return n*bitsPerChar + len(endMarker)
}

// MaxChars returns how many characters fit into capacity bits, marker included.
func MaxChars(capacity int) int {
	if capacity < EncodedLen(0) {
		return 0
	}
	return (capacity - EncodedLen(0)) / bitsPerChar
}

var _ Mark = (*TextMark)(nil)

type TextMark struct {
}

func New() Mark {
	return &TextMark{}
}

func (tm *TextMark) Encode(src string) ([]bool, error) {
	return Encode(src)
}

func (tm *TextMark) Decode(mark []bool) (string, error) {
	return Decode(mark)
}
