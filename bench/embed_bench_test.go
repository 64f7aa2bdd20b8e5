package bench_test

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/yyyoichi/lsbsteg"
	"github.com/yyyoichi/lsbsteg/pixel"
)

func BenchmarkHide_FHD(b *testing.B) {
	test := []struct {
		name string
		opts []lsbsteg.Option
	}{
		{name: "plain", opts: nil},
		{name: "golay", opts: []lsbsteg.Option{lsbsteg.WithGolay()}},
	}

	img := createImage(1920, 1080)
	text := createTestMessage(4096)
	ctx := b.Context()

	for _, tt := range test {
		b.Run(tt.name, func(b *testing.B) {
			s, err := lsbsteg.New(tt.opts...)
			if err != nil {
				b.Fatalf("Failed to create Steg instance (%s): %v", tt.name, err)
			}
			for b.Loop() {
				out, err := s.Hide(ctx, img, text)
				if err != nil {
					b.Fatalf("Failed to hide message (%s): %v", tt.name, err)
				}
				_ = out
			}
		})
	}
}

func BenchmarkReveal_FHD(b *testing.B) {
	test := []struct {
		name    string
		workers int
		opts    []lsbsteg.Option
	}{
		{name: "plain_1", workers: 1},
		{name: "plain_4", workers: 4},
		{name: "plain_8", workers: 8},
		{name: "golay_4", workers: 4, opts: []lsbsteg.Option{lsbsteg.WithGolay()}},
	}

	img := createImage(1920, 1080)
	text := createTestMessage(4096)
	ctx := b.Context()

	for _, tt := range test {
		b.Run(tt.name, func(b *testing.B) {
			s, err := lsbsteg.New(append(tt.opts, lsbsteg.WithWorkers(tt.workers))...)
			if err != nil {
				b.Fatalf("Failed to create Steg instance (%s): %v", tt.name, err)
			}
			stego, err := s.Hide(ctx, img, text)
			if err != nil {
				b.Fatalf("Failed to hide message (%s): %v", tt.name, err)
			}
			g := pixel.NewNRGBA(stego)
			for b.Loop() {
				got, err := s.RevealGrid(ctx, g)
				if err != nil {
					b.Fatalf("Failed to reveal message (%s): %v", tt.name, err)
				}
				if len(got) != len(text) {
					b.Fatalf("Revealed %d chars, want %d", len(got), len(text))
				}
			}
		})
	}
}

func BenchmarkExtractAll_FHD(b *testing.B) {
	g := pixel.FromImage(createImage(1920, 1080))
	for b.Loop() {
		_ = pixel.ExtractAll(g)
	}
}

// createImage creates a widthxheight test image with gradient pattern
func createImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

// createTestMessage returns n ASCII chars without the end marker pattern.
func createTestMessage(n int) string {
	const words = "the quick brown fox jumps over the lazy dog "
	return strings.Repeat(words, n/len(words)+1)[:n]
}
