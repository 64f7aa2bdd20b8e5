package ecc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/lsbsteg/internal/bitconv"
)

func TestGolay(t *testing.T) {
	c := Golay()
	t.Run("encode length", func(t *testing.T) {
		for size := range 64 * 2 {
			data := make([]bool, size)
			encoded := c.Encode(data)
			assert.Len(t, encoded, c.EncodedLen(size))
			assert.Zero(t, len(encoded)%CodewordBits)
			assert.Len(t, c.Decode(encoded), len(encoded)/CodewordBits*12)
		}
	})

	t.Run("encode/decode", func(t *testing.T) {
		data := bitconv.BytesToBools([]byte("Hi, golay"))
		encoded := c.Encode(data)
		decoded := c.Decode(encoded)
		require.GreaterOrEqual(t, len(decoded), len(data))
		assert.Equal(t, data, decoded[:len(data)])
	})

	t.Run("corrects one flip per codeword", func(t *testing.T) {
		data := bitconv.BytesToBools([]byte("corrected"))
		encoded := c.Encode(data)
		for i := 0; i*CodewordBits < len(encoded); i++ {
			j := i*CodewordBits + i%CodewordBits
			encoded[j] = !encoded[j]
		}
		decoded := c.Decode(encoded)
		assert.Equal(t, data, decoded[:len(data)])
	})

	t.Run("corrects three flips in one codeword", func(t *testing.T) {
		data := bitconv.BytesToBools([]byte("corrected"))
		for cw := range c.EncodedLen(len(data)) / CodewordBits {
			encoded := c.Encode(data)
			for _, j := range []int{0, 7, CodewordBits - 1} {
				encoded[cw*CodewordBits+j] = !encoded[cw*CodewordBits+j]
			}
			decoded := c.Decode(encoded)
			assert.Equal(t, data, decoded[:len(data)], "codeword %d", cw)
		}
	})

	t.Run("trailing partial codeword", func(t *testing.T) {
		data := bitconv.BytesToBools([]byte("abc"))
		encoded := c.Encode(data)
		junk := append(encoded, true, false, true)
		assert.Equal(t, c.Decode(encoded), c.Decode(junk))
		assert.Nil(t, c.Decode(junk[:CodewordBits-1]))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, c.Encode(nil))
		assert.Empty(t, c.Decode(nil))
	})
}

func TestNone(t *testing.T) {
	c := None()
	data := bitconv.ParseBits("1011")
	assert.Equal(t, data, c.Encode(data))
	assert.Equal(t, data, c.Decode(data))
	assert.Equal(t, 4, c.EncodedLen(4))
	assert.Equal(t, 30, c.DataBits(30))
}

func TestGolayDataBits(t *testing.T) {
	c := Golay()
	assert.Equal(t, 0, c.DataBits(22))
	assert.Equal(t, 12, c.DataBits(23))
	assert.Equal(t, 24, c.DataBits(46))
	assert.Equal(t, 36, c.DataBits(80))
	for size := range 64 {
		assert.GreaterOrEqual(t, c.DataBits(c.EncodedLen(size)), size)
	}
}
