package yuv

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuma(t *testing.T) {
	test := []struct {
		name string
		c    color.NRGBA
		exp  float64
	}{
		{"Red", color.NRGBA{R: 255, A: 255}, 76.245},
		{"Green", color.NRGBA{G: 255, A: 255}, 149.685},
		{"Blue", color.NRGBA{B: 255, A: 255}, 29.07},
		{"White", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 255},
		{"Black", color.NRGBA{A: 255}, 0},
		{"Gray", color.NRGBA{R: 128, G: 128, B: 128, A: 255}, 128},
		{"Custom", color.NRGBA{R: 100, G: 150, B: 200, A: 255}, 140.75},
		// alpha does not weigh in
		{"Transparent", color.NRGBA{R: 128, G: 128, B: 128}, 128},
	}
	pixels := make([]color.NRGBA, len(test))
	for i, tt := range test {
		pixels[i] = tt.c
	}
	y := make([]float64, len(pixels))
	LumaBatch(pixels, y)

	for i, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.exp, Luma(tt.c.R, tt.c.G, tt.c.B), 1e-9)
			assert.InDelta(t, tt.exp, y[i], 1e-9)
		})
	}
}
