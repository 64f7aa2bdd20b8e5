// Package pixel hides a bit sequence in the least significant bit of the red
// channel of a pixel grid and reads it back.
//
// Both directions walk the grid in row-major order: every x for y = 0, then
// every x for y = 1, and so on. One pixel holds one bit.
package pixel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrCapacityExceeded is advisory. Embed still writes every bit that fits.
var ErrCapacityExceeded = errors.New("bit sequence exceeds grid capacity")

// Embed writes bits into the red LSB of g, one bit per pixel in row-major
// order, and returns how many bits were written. Green, blue and every pixel
// past the last bit are left untouched.
//
// If bits does not fit, the tail is dropped and the returned error wraps
// ErrCapacityExceeded. The grid is modified exactly as if the error was not
// reported.
func Embed(g Grid, bits []bool) (written int, err error) {
	w, h := g.Size()
	for y := range h {
		for x := range w {
			// stopping the whole walk and stopping only the current row
			// leave the same pixels untouched once bits run out
			if written == len(bits) {
				return written, nil
			}
			c := g.At(x, y)
			c.R = c.R&^1 | lsb(bits[written])
			g.Set(x, y, c)
			written++
		}
	}
	if written < len(bits) {
		return written, fmt.Errorf("%w: wrote %d of %d bits", ErrCapacityExceeded, written, len(bits))
	}
	return written, nil
}

// ExtractAll reads the red LSB of every pixel in row-major order.
// The result always has Capacity(g) bits.
func ExtractAll(g Grid) []bool {
	w, h := g.Size()
	bits := make([]bool, w*h)
	for y := range h {
		extractRow(g, y, bits[y*w:(y+1)*w])
	}
	return bits
}

// ExtractAllParallel is ExtractAll with rows spread over workers goroutines.
// Each row is written to its own slot so the order is the same as ExtractAll.
func ExtractAllParallel(ctx context.Context, g Grid, workers int) ([]bool, error) {
	w, h := g.Size()
	if workers <= 1 || h < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ExtractAll(g), nil
	}
	workers = min(workers, h)

	var (
		bits = make([]bool, w*h)
		rows = make(chan int)
		wg   sync.WaitGroup
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for y := range rows {
				extractRow(g, y, bits[y*w:(y+1)*w])
			}
		}()
	}

	var err error
feed:
	for y := range h {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- y:
		}
	}
	close(rows)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return bits, nil
}

func extractRow(g Grid, y int, row []bool) {
	for x := range row {
		row[x] = g.At(x, y).R&1 == 1
	}
}

func lsb(bit bool) uint8 {
	if bit {
		return 1
	}
	return 0
}
