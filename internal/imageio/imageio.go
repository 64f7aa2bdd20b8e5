// Package imageio loads cover images from disk or the web and writes stego
// images in a lossless format.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yyyoichi/httpcache-go"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrLossyFormat       = errors.New("lossy formats destroy hidden bits")
)

// Format names an image container.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	WebP Format = "webp"
)

// Lossless reports whether the format keeps every sample bit-exact.
// WebP may be either, so it is treated as lossy.
func (f Format) Lossless() bool {
	return f == PNG || f == BMP
}

var byMIME = map[string]Format{
	"image/png":  PNG,
	"image/jpeg": JPEG,
	"image/bmp":  BMP,
	"image/webp": WebP,
}

// Detect sniffs the format of an encoded image.
func Detect(data []byte) (Format, error) {
	mt := mimetype.Detect(data)
	if f, ok := byMIME[mt.String()]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
}

// Decode decodes data after sniffing its format.
func Decode(data []byte) (image.Image, Format, error) {
	f, err := Detect(data)
	if err != nil {
		return nil, "", err
	}
	r := bytes.NewReader(data)
	var img image.Image
	switch f {
	case PNG:
		img, err = png.Decode(r)
	case JPEG:
		img, err = jpeg.Decode(r)
	case BMP:
		img, err = bmp.Decode(r)
	case WebP:
		img, err = webp.Decode(r)
	}
	if err != nil {
		return nil, f, fmt.Errorf("failed to decode %s: %w", f, err)
	}
	return img, f, nil
}

// Loader reads images from local paths or http(s) URLs. Downloads are cached
// on disk.
type Loader struct {
	client httpcache.Client
}

func NewLoader(cacheDir string) *Loader {
	return &Loader{
		client: httpcache.Client{
			Client:  http.DefaultClient,
			Cache:   httpcache.NewStorageCache(cacheDir),
			Handler: httpcache.NewDefaultHandler(),
		},
	}
}

// Load reads and decodes the image at src.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, Format, error) {
	var (
		data []byte
		err  error
	)
	if IsURL(src) {
		data, err = l.fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, "", err
	}
	return Decode(data)
}

func (l *Loader) fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// FormatOf picks the output format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".jpg", ".jpeg":
		return JPEG, fmt.Errorf("%w: %s", ErrLossyFormat, ext)
	case ".webp":
		return WebP, fmt.Errorf("%w: %s", ErrLossyFormat, ext)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes img as f. Only lossless formats are accepted.
func Encode(w io.Writer, img image.Image, f Format, level png.CompressionLevel) error {
	switch f {
	case PNG:
		encoder := png.Encoder{CompressionLevel: level}
		return encoder.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case JPEG, WebP:
		return fmt.Errorf("%w: %s", ErrLossyFormat, f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// Save writes img to path in the format its extension names.
func Save(path string, img image.Image, level png.CompressionLevel) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(out, img, f, level); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
