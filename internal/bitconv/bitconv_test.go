package bitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitConv(t *testing.T) {
	test := []struct {
		data []byte
		exp  []byte
	}{
		{data: []byte{0b10101010}, exp: []byte{0b10101010}},
		{data: []byte{0b11110000, 0b00001111}, exp: []byte{0b11110000, 0b00001111}},
		{data: []byte("Hello"), exp: []byte("Hello")},
		{data: []byte{0x00, 0xff, 0x7f}, exp: []byte{0x00, 0xff, 0x7f}},
		{data: []byte{}, exp: []byte{}},
	}
	for _, tt := range test {
		bits := BytesToBools(tt.data)
		assert.Len(t, bits, len(tt.data)*8)
		out := BoolsToBytes(bits)
		assert.Equal(t, tt.exp, out)
	}
}

func TestBoolsToBytesPadding(t *testing.T) {
	assert.Equal(t, []byte{0b10110000}, BoolsToBytes([]bool{true, false, true, true}))
	assert.Equal(t, []byte{0xff, 0b10000000}, BoolsToBytes(ParseBits("111111111")))
}

func TestFormatParse(t *testing.T) {
	s := "0100100001101001"
	bits := ParseBits(s)
	assert.Equal(t, BytesToBools([]byte("Hi")), bits)
	assert.Equal(t, s, FormatBits(bits))
	assert.Equal(t, "", FormatBits(nil))
}

func TestIndex(t *testing.T) {
	test := []struct {
		name    string
		bits    string
		pattern string
		exp     int
	}{
		{"empty pattern", "0101", "", 0},
		{"empty bits", "", "1", -1},
		{"at start", "1110", "11", 0},
		{"unaligned", "0001111111111111111000", "1111111111111110", 4},
		{"first of many", "0110110", "110", 1},
		{"missing", "000000", "1", -1},
		{"longer pattern", "11", "111", -1},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, Index(ParseBits(tt.bits), ParseBits(tt.pattern)))
		})
	}
}
