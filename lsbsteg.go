// Package lsbsteg hides text in the least significant bit of the red channel
// of an image and reveals it again.
//
// A message is encoded one byte per character, followed by a 16-bit end
// marker, and written one bit per pixel in row-major order. Images must be
// stored losslessly afterwards or the message is destroyed.
package lsbsteg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"unicode/utf8"

	"github.com/yyyoichi/lsbsteg/internal/ecc"
	"github.com/yyyoichi/lsbsteg/pixel"
	"github.com/yyyoichi/lsbsteg/textmark"
)

var (
	ErrTooSmallImage    = errors.New("image is too small for the message")
	ErrEncodingRange    = textmark.ErrEncodingRange
	ErrTruncatedGroup   = textmark.ErrTruncatedGroup
	ErrCapacityExceeded = pixel.ErrCapacityExceeded
)

// Hide hides text in a copy of src with the specified options.
// This is a convenience function that creates a Steg instance and calls its Hide method.
func Hide(ctx context.Context, src image.Image, text string, opts ...Option) (*image.NRGBA, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Hide(ctx, src, text)
}

// Reveal reads the text hidden in src with the specified options.
// This is a convenience function that creates a Steg instance and calls its Reveal method.
func Reveal(ctx context.Context, src image.Image, opts ...Option) (string, error) {
	s, err := New(opts...)
	if err != nil {
		return "", err
	}
	return s.Reveal(ctx, src)
}

// Capacity returns the longest message, in characters, that fits in an image
// of the given bounds. It returns 0 when an option is invalid; call New and
// (*Steg).Capacity to get the error.
func Capacity(rect image.Rectangle, opts ...Option) int {
	s, err := New(opts...)
	if err != nil {
		return 0
	}
	return s.Capacity(rect)
}

type Steg struct {
	mark    Mark
	codec   ecc.Codec
	workers int
	strict  bool
	logger  *slog.Logger
}

// New initializes a steganography processing structure.
// For default values, refer to the init function.
func New(opts ...Option) (*Steg, error) {
	s := new(Steg)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Hide converts src to an opaque RGB image and hides text in it.
//
// Process:
//  1. Encodes text to 8 bits per character plus the end marker.
//  2. Optionally wraps the bits in an error correcting code.
//  3. Writes one bit per pixel into the red LSB, row-major.
//
// A message longer than the image is silently cut short unless
// WithStrictCapacity is set, in which case ErrTooSmallImage is returned.
func (s *Steg) Hide(ctx context.Context, src image.Image, text string) (*image.NRGBA, error) {
	g := pixel.FromImage(src)
	if _, err := s.HideGrid(ctx, g, text); err != nil {
		return nil, err
	}
	return pixel.ToImage(g), nil
}

// HideGrid hides text in g in place.
func (s *Steg) HideGrid(ctx context.Context, g Grid, text string) (Report, error) {
	var r Report
	if err := ctx.Err(); err != nil {
		return r, err
	}
	bits, err := s.mark.Encode(text)
	if err != nil {
		return r, err
	}

	r.Chars = utf8.RuneCountInString(text)
	r.Bits = s.codec.EncodedLen(len(bits))
	r.Capacity = pixel.Capacity(g)
	if s.strict && r.Bits > r.Capacity {
		return r, fmt.Errorf("%w: need %d pixels, have %d", ErrTooSmallImage, r.Bits, r.Capacity)
	}
	bits = s.codec.Encode(bits)

	r.Written, err = pixel.Embed(g, bits)
	if errors.Is(err, ErrCapacityExceeded) {
		s.logger.Warn("message truncated", "bits", r.Bits, "written", r.Written, "capacity", r.Capacity)
	}
	s.logger.Debug("hidden", "chars", r.Chars, "bits", r.Bits, "written", r.Written)
	return r, nil
}

// Reveal reads the text hidden in src.
//
// Process:
//  1. Reads the red LSB of every pixel, row-major.
//  2. Optionally decodes the error correcting code.
//  3. Cuts the bits at the first end marker and decodes 8 bits per character.
//
// Without an end marker every bit read is decoded, which usually yields
// garbage or ErrTruncatedGroup.
func (s *Steg) Reveal(ctx context.Context, src image.Image) (string, error) {
	return s.RevealGrid(ctx, pixel.FromImage(src))
}

// RevealGrid reads the text hidden in g.
func (s *Steg) RevealGrid(ctx context.Context, g Grid) (string, error) {
	bits, err := pixel.ExtractAllParallel(ctx, g, s.workers)
	if err != nil {
		return "", err
	}
	bits = s.codec.Decode(bits)
	if at, ok := textmark.Locate(bits); ok {
		s.logger.Debug("end marker found", "offset", at, "bits", len(bits))
	} else {
		s.logger.Debug("end marker not found", "bits", len(bits))
	}
	return s.mark.Decode(bits)
}

// Capacity returns the longest message, in characters, that fits in rect.
func (s *Steg) Capacity(rect image.Rectangle) int {
	return textmark.MaxChars(s.codec.DataBits(rect.Dx() * rect.Dy()))
}

func (s *Steg) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.mark == nil {
		s.mark = textmark.New()
	}
	if s.codec == nil {
		s.codec = ecc.None()
	}
	if s.workers == 0 {
		s.workers = defaultWorkers()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}
