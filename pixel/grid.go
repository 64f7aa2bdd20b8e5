package pixel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RGB is one pixel with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Grid is an ordered 2D array of pixels addressed from (0, 0) to
// (width-1, height-1). Any image buffer can satisfy it.
type Grid interface {
	Size() (width, height int)
	At(x, y int) RGB
	Set(x, y int, c RGB)
}

// Capacity returns the number of bits g can hold: one per pixel.
func Capacity(g Grid) int {
	w, h := g.Size()
	return w * h
}

var _ Grid = (*Slice)(nil)

// Slice is a Grid backed by a row-major slice.
type Slice struct {
	Width, Height int
	Pix           []RGB
}

func NewSlice(width, height int) *Slice {
	return &Slice{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

func (s *Slice) Size() (int, int)    { return s.Width, s.Height }
func (s *Slice) At(x, y int) RGB     { return s.Pix[y*s.Width+x] }
func (s *Slice) Set(x, y int, c RGB) { s.Pix[y*s.Width+x] = c }

var _ Grid = (*NRGBA)(nil)

// NRGBA adapts an opaque *image.NRGBA to Grid. Alpha is never touched.
type NRGBA struct {
	img           *image.NRGBA
	width, height int
}

func NewNRGBA(img *image.NRGBA) *NRGBA {
	b := img.Bounds()
	return &NRGBA{img: img, width: b.Dx(), height: b.Dy()}
}

// FromImage copies src into a new opaque RGB buffer, dropping transparency
// the way a conversion to an RGB color model does. The result's origin is
// (0, 0) whatever the bounds of src.
func FromImage(src image.Image) *NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if s, ok := src.(*image.NRGBA); ok {
		// straight alpha already: copy samples instead of round-tripping
		// through premultiplied color
		for y := range b.Dy() {
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], s.Pix[i:i+b.Dx()*4])
		}
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return NewNRGBA(dst)
}

func (n *NRGBA) Size() (int, int) { return n.width, n.height }

func (n *NRGBA) At(x, y int) RGB {
	i := n.offset(x, y)
	p := n.img.Pix[i : i+3 : i+3]
	return RGB{R: p[0], G: p[1], B: p[2]}
}

func (n *NRGBA) Set(x, y int, c RGB) {
	i := n.offset(x, y)
	p := n.img.Pix[i : i+3 : i+3]
	p[0], p[1], p[2] = c.R, c.G, c.B
}

// Image returns the underlying image, ready to be encoded.
func (n *NRGBA) Image() *image.NRGBA { return n.img }

func (n *NRGBA) offset(x, y int) int {
	o := n.img.Rect.Min
	return n.img.PixOffset(o.X+x, o.Y+y)
}

// ToImage renders g as an opaque image.
func ToImage(g Grid) *image.NRGBA {
	if n, ok := g.(*NRGBA); ok {
		return n.img
	}
	w, h := g.Size()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := g.At(x, y)
			dst.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
