package yuv

import "image/color"

// https://github.com/opencv/opencv/blob/0e88b49a53842f0f7cdc4c61b98c283be7e5057c/modules/imgproc/src/opencl/color_yuv.cl#L148-L234

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
)

// Luma returns the Y component of an 8-bit RGB sample.
func Luma(r, g, b uint8) float64 {
	return yr*float64(r) + yg*float64(g) + yb*float64(b)
}

// LumaBatch writes the Y component of every pixel to y.
// Pixels are taken as straight (non-premultiplied) RGB.
func LumaBatch(pixels []color.NRGBA, y []float64) {
	for i, p := range pixels {
		y[i] = Luma(p.R, p.G, p.B)
	}
}
