package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/yyyoichi/lsbsteg"
	"github.com/yyyoichi/lsbsteg/internal/imageio"
	"github.com/yyyoichi/lsbsteg/internal/quality"
	"github.com/yyyoichi/lsbsteg/pixel"
)

func runHide(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("hide", e)
	in := fs.String("in", "", "The filepath or http(s) URL of the cover image")
	out := fs.String("out", "", "The filepath to write the stego image to (.png or .bmp)")
	msg := fs.String("msg", "", "The message to hide")
	msgFile := fs.String("msg-file", "", "Read the message to hide from this file")
	useECC := fs.Bool("ecc", e.cfg.ECC, "Whether to protect the message with Golay error correction")
	strict := fs.Bool("strict", false, "Fail instead of truncating a message that does not fit")
	report := fs.Bool("report", false, "Print distortion metrics of the stego image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return errUsage
	}
	if _, err := imageio.FormatOf(*out); err != nil {
		return err
	}

	text := *msg
	if *msgFile != "" {
		b, err := os.ReadFile(*msgFile)
		if err != nil {
			return err
		}
		text = string(b)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: please enter a message to hide", errUsage)
	}

	cover, format, err := imageio.NewLoader(e.cfg.CacheDir).Load(ctx, *in)
	if err != nil {
		return err
	}
	e.log.Debug("cover loaded", "format", format, "bounds", cover.Bounds())

	s, err := lsbsteg.New(stegOptions(e, *useECC, *strict)...)
	if err != nil {
		return err
	}
	g := pixel.FromImage(cover)
	r, err := s.HideGrid(ctx, g, text)
	if err != nil {
		return err
	}
	if r.Truncated() {
		fmt.Fprintf(e.stderr, "warning: only %d of %d bits fit, the message will be cut short\n", r.Written, r.Bits)
	}

	level, _ := e.cfg.Compression()
	if err := imageio.Save(*out, pixel.ToImage(g), level); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Message encoded and saved to: %s\n", *out)

	if *report {
		q, err := quality.Compare(cover, pixel.ToImage(g))
		if err != nil {
			return err
		}
		writeQuality(e, q)
	}
	return nil
}

func runReveal(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("reveal", e)
	in := fs.String("in", "", "The filepath or http(s) URL of the stego image")
	useECC := fs.Bool("ecc", e.cfg.ECC, "Whether the message was hidden with Golay error correction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}

	img, format, err := imageio.NewLoader(e.cfg.CacheDir).Load(ctx, *in)
	if err != nil {
		return err
	}
	if !format.Lossless() {
		e.log.Warn("image is stored in a lossy format, hidden bits are likely gone", "format", format)
	}

	s, err := lsbsteg.New(stegOptions(e, *useECC, false)...)
	if err != nil {
		return err
	}
	msg, err := s.Reveal(ctx, img)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, msg)
	return nil
}

func runCapacity(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("capacity", e)
	in := fs.String("in", "", "The filepath or http(s) URL of the image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}
	img, format, err := imageio.NewLoader(e.cfg.CacheDir).Load(ctx, *in)
	if err != nil {
		return err
	}

	b := img.Bounds()
	table := tablewriter.NewWriter(e.stdout)
	table.SetHeader([]string{"Image", "Format", "Size", "Bits", "Chars", "Chars (ECC)"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{
		*in,
		string(format),
		fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		strconv.Itoa(b.Dx() * b.Dy()),
		strconv.Itoa(lsbsteg.Capacity(b)),
		strconv.Itoa(lsbsteg.Capacity(b, lsbsteg.WithGolay())),
	})
	table.Render()
	return nil
}

func runQuality(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("quality", e)
	a := fs.String("a", "", "The reference (cover) image")
	b := fs.String("b", "", "The image to compare (stego)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *a == "" || *b == "" {
		fs.Usage()
		return errUsage
	}
	l := imageio.NewLoader(e.cfg.CacheDir)
	imgs := make([]image.Image, 2)
	for i, src := range []string{*a, *b} {
		img, _, err := l.Load(ctx, src)
		if err != nil {
			return err
		}
		imgs[i] = img
	}
	q, err := quality.Compare(imgs[0], imgs[1])
	if err != nil {
		return err
	}
	writeQuality(e, q)
	return nil
}

func stegOptions(e env, useECC, strict bool) []lsbsteg.Option {
	opts := []lsbsteg.Option{
		lsbsteg.WithLogger(e.log),
		lsbsteg.WithWorkers(e.cfg.Workers),
	}
	if useECC {
		opts = append(opts, lsbsteg.WithGolay())
	}
	if strict {
		opts = append(opts, lsbsteg.WithStrictCapacity())
	}
	return opts
}

func writeQuality(e env, q quality.Report) {
	psnr := lo.Ternary(math.IsInf(q.PSNR, 1), "inf", strconv.FormatFloat(q.PSNR, 'f', 2, 64))
	table := tablewriter.NewWriter(e.stdout)
	table.SetHeader([]string{"Size", "Changed pixels", "MSE", "PSNR (dB)", "SSIM"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{
		fmt.Sprintf("%dx%d", q.Width, q.Height),
		strconv.Itoa(q.ChangedPixels),
		strconv.FormatFloat(q.MSE, 'f', 6, 64),
		psnr,
		strconv.FormatFloat(q.SSIM, 'f', 6, 64),
	})
	table.Render()
}
