package bitconv

import (
	"strings"

	"github.com/samber/lo"
)

func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		bits = AppendByte(bits, bb)
	}
	return bits
}

// AppendByte appends the 8 bits of b to bits, most significant bit first.
func AppendByte(bits []bool, b byte) []bool {
	for i := 7; i >= 0; i-- {
		bits = append(bits, ((b>>uint(i))&1) == 1)
	}
	return bits
}

// BoolsToByte packs up to 8 bits, most significant bit first.
// Missing low bits are zero.
func BoolsToByte(bits []bool) byte {
	var v byte
	for j := 0; j < 8 && j < len(bits); j++ {
		if bits[j] {
			v |= 1 << uint(7-j)
		}
	}
	return v
}

// BoolsToBytes packs bits 8 at a time, most significant bit first. A short
// final group is padded with zero bits.
func BoolsToBytes(bits []bool) []byte {
	return lo.Map(lo.Chunk(bits, 8), func(group []bool, _ int) byte {
		return BoolsToByte(group)
	})
}

// FormatBits renders bits as a string of '0' and '1'.
func FormatBits(bits []bool) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBits is the inverse of FormatBits. Any rune other than '1' is read as 0.
func ParseBits(s string) []bool {
	bits := make([]bool, len(s))
	for i := range len(s) {
		bits[i] = s[i] == '1'
	}
	return bits
}

// Index returns the bit offset of the first occurrence of pattern in bits,
// or -1. Offsets are not aligned to byte boundaries.
func Index(bits, pattern []bool) int {
	if len(pattern) == 0 {
		return 0
	}
	last := len(bits) - len(pattern)
outer:
	for i := 0; i <= last; i++ {
		for j, p := range pattern {
			if bits[i+j] != p {
				continue outer
			}
		}
		return i
	}
	return -1
}
