// Package quality measures how far a stego image drifted from its cover.
package quality

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/yyyoichi/lsbsteg/internal/yuv"
	"github.com/yyyoichi/lsbsteg/pixel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrSizeMismatch = errors.New("images differ in size")

const (
	maxSample = 255.0
	// SSIM is averaged over non-overlapping windows of this size.
	window = 8
)

var (
	c1 = math.Pow(0.01*maxSample, 2)
	c2 = math.Pow(0.03*maxSample, 2)
)

type Report struct {
	Width, Height int
	// ChangedPixels counts pixels with at least one differing channel.
	ChangedPixels int
	// MSE is the mean squared error over the R, G and B samples.
	MSE float64
	// PSNR in dB. +Inf for identical images.
	PSNR float64
	// SSIM is the mean structural similarity of the luma planes, 1 for
	// identical images.
	SSIM float64
}

// Compare measures b against the reference a. Both are compared as opaque
// RGB, so alpha is ignored.
func Compare(a, b image.Image) (Report, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return Report{}, fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	ga, gb := pixel.FromImage(a), pixel.FromImage(b)
	r := Report{Width: ab.Dx(), Height: ab.Dy()}

	var (
		area   = r.Width * r.Height
		pa, pb = make([]color.NRGBA, 0, area), make([]color.NRGBA, 0, area)
		sa, sb = make([]float64, 0, area*3), make([]float64, 0, area*3)
	)
	for y := range r.Height {
		for x := range r.Width {
			pa = append(pa, ga.Image().NRGBAAt(x, y))
			pb = append(pb, gb.Image().NRGBAAt(x, y))
		}
	}
	for i := range pa {
		ca, cb := pa[i], pb[i]
		if ca != cb {
			r.ChangedPixels++
		}
		sa = append(sa, float64(ca.R), float64(ca.G), float64(ca.B))
		sb = append(sb, float64(cb.R), float64(cb.G), float64(cb.B))
	}

	r.MSE = MSE(sa, sb)
	r.PSNR = PSNR(r.MSE)

	la, lb := make([]float64, area), make([]float64, area)
	yuv.LumaBatch(pa, la)
	yuv.LumaBatch(pb, lb)
	r.SSIM = SSIM(la, lb, r.Width, r.Height)
	return r, nil
}

// MSE returns the mean squared difference of two equally long sample slices.
func MSE(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	d := floats.Distance(a, b, 2)
	return d * d / float64(len(a))
}

// PSNR converts a mean squared error of 8-bit samples to decibels.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(maxSample*maxSample/mse)
}

// SSIM returns the mean structural similarity of two planes of width*height
// samples, over 8x8 windows. Windows at the right and bottom edges may be
// smaller.
func SSIM(a, b []float64, width, height int) float64 {
	if width == 0 || height == 0 {
		return 1
	}
	var (
		sum   float64
		count int
		wa    = make([]float64, 0, window*window)
		wb    = make([]float64, 0, window*window)
	)
	for y0 := 0; y0 < height; y0 += window {
		for x0 := 0; x0 < width; x0 += window {
			wa, wb = wa[:0], wb[:0]
			for y := y0; y < min(y0+window, height); y++ {
				row := y * width
				wa = append(wa, a[row+x0:row+min(x0+window, width)]...)
				wb = append(wb, b[row+x0:row+min(x0+window, width)]...)
			}
			sum += windowSSIM(wa, wb)
			count++
		}
	}
	return sum / float64(count)
}

func windowSSIM(a, b []float64) float64 {
	ma, va := stat.PopMeanVariance(a, nil)
	mb, vb := stat.PopMeanVariance(b, nil)
	cov := floats.Dot(a, b)/float64(len(a)) - ma*mb
	return ((2*ma*mb + c1) * (2*cov + c2)) / ((ma*ma + mb*mb + c1) * (va + vb + c2))
}
