package lsbsteg

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/yyyoichi/lsbsteg/internal/ecc"
)

var ErrInvalidOption = errors.New("invalid option")

type Option func(*Steg) error

// WithGolay wraps the bits in a Golay(23,12) code before they are hidden, so
// that up to 3 flipped bits per 23 pixels are corrected on Reveal.
// It halves the capacity, and both sides must use it.
func WithGolay() Option {
	return func(s *Steg) error {
		s.codec = ecc.Golay()
		return nil
	}
}

// WithWorkers sets how many goroutines read rows on Reveal.
// The default is runtime.NumCPU(). 1 reads sequentially.
func WithWorkers(n int) Option {
	return func(s *Steg) error {
		if n < 1 {
			return errors.Join(ErrInvalidOption, errors.New("workers must be at least 1"))
		}
		s.workers = n
		return nil
	}
}

// WithStrictCapacity makes Hide fail with ErrTooSmallImage, leaving the image
// untouched, when the message does not fit. By default the message is cut
// short instead.
func WithStrictCapacity() Option {
	return func(s *Steg) error {
		s.strict = true
		return nil
	}
}

// WithMark replaces the text codec.
func WithMark(m Mark) Option {
	return func(s *Steg) error {
		if m == nil {
			return errors.Join(ErrInvalidOption, errors.New("mark is nil"))
		}
		s.mark = m
		return nil
	}
}

// WithLogger sets the logger used for debug output and truncation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Steg) error {
		s.logger = l
		return nil
	}
}

func defaultWorkers() int {
	return runtime.NumCPU()
}
