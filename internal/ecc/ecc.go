// Package ecc wraps a bit sequence in an optional error correcting code before
// it is written to an image.
package ecc

import (
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

// CodewordBits is the length of one Golay(23,12) codeword.
const CodewordBits = 23

type Codec interface {
	// Encode returns the bits to embed for data.
	Encode(data []bool) []bool
	// Decode recovers data bits from whatever was read back. Input that is
	// not a whole number of codewords is cut to the last complete one.
	Decode(encoded []bool) []bool
	// EncodedLen returns len(Encode(data)) for len(data) == size.
	EncodedLen(size int) int
	// DataBits returns how many data bits fit in capacity encoded bits.
	DataBits(capacity int) int
}

func None() Codec { return withoutecc{} }

// Golay returns a codec that corrects up to 3 flipped bits per 23-bit codeword.
// Unlike the shuffled variant used for watermarks, codewords stay in order so
// a decoder that does not know the message length can decode any prefix.
func Golay() Codec { return golaycodec{} }

var _ Codec = (*golaycodec)(nil)

type golaycodec struct{}

func (golaycodec) Encode(data []bool) []bool {
	if len(data) == 0 {
		return nil
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(pack(data), len(data))
	return unpack(encoded, enc.Bits())
}

func (golaycodec) Decode(encoded []bool) []bool {
	n := len(encoded) - len(encoded)%CodewordBits
	if n == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range encoded[:n] {
		w.WriteBool(v)
	}
	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	_ = dec.Decode(&decoded)
	return unpack(decoded, dec.Bits())
}

func (golaycodec) EncodedLen(size int) int {
	return golay.EncodedBits(size)
}

func (golaycodec) DataBits(capacity int) int {
	return golay.DecodedBits(capacity)
}

var _ Codec = (*withoutecc)(nil)

type withoutecc struct{}

func (withoutecc) Encode(data []bool) []bool    { return data }
func (withoutecc) Decode(encoded []bool) []bool { return encoded }
func (withoutecc) EncodedLen(size int) int      { return size }
func (withoutecc) DataBits(capacity int) int    { return capacity }

func pack(data []bool) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range data {
		w.WriteBool(v)
	}
	return w.Data()
}

func unpack(data []uint64, size int) []bool {
	r := bitstream.NewBitReader(data, 0, 0)
	r.SetBits(size)
	bits := make([]bool, size)
	for i := range bits {
		bits[i], _ = r.ReadBitAt(i)
	}
	return bits
}
