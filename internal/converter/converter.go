package converter

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"

	"github.com/salm7n/png2bmp32/internal/pngmeta"
	"github.com/salm7n/png2bmp32/internal/storage"
	"github.com/salm7n/png2bmp32/pkg/bitmap"
)

var ErrNotPNG = errors.New("input is not a png file")

func New(st *storage.Storage, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		st:  st,
		log: logger,
		// options
		dpi:       96,
		outDir:    "",
		overwrite: false,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Converter struct {
	st  *storage.Storage
	log *zap.Logger
	// options
	dpi       float64
	outDir    string
	overwrite bool
}

// OutputPath is input with its extension replaced by .bmp, moved into the
// output dir when one is set.
func (c *Converter) OutputPath(input string) string {
	dir, base := filepath.Split(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".bmp"
	if c.outDir != "" {
		dir = c.outDir
	}
	return filepath.Join(dir, name)
}

// Convert turns the png at input into a 32-bit bmp and returns where it
// was written. Nothing is written when any step fails.
func (c *Converter) Convert(input string) (string, error) {
	log := c.log.With(zap.String("input", input))

	data, err := c.st.ReadFile(input)
	if err != nil {
		return "", err
	}

	bs, err := c.Encode(data)
	if err != nil {
		return "", fmt.Errorf("convert %s failed: %w", input, err)
	}

	output := c.OutputPath(input)
	if err := c.st.WriteFile(output, bs, c.overwrite); err != nil {
		return "", err
	}

	log.With(
		zap.String("output", output),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
	).Info("converted")

	return output, nil
}

// Encode decodes png data and encodes it as a bmp.
func (c *Converter) Encode(data []byte) ([]byte, error) {
	if !pngmeta.IsPNG(data) {
		return nil, ErrNotPNG
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	dpiX, dpiY, ok := pngmeta.Resolution(data)
	if !ok {
		dpiX, dpiY = c.dpi, c.dpi
	}

	c.log.With(
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
		zap.Float64("dpiX", dpiX),
		zap.Float64("dpiY", dpiY),
		zap.Bool("phys", ok),
	).Debug("decoded")

	return bitmap.EncodeImage(img, dpiX, dpiY)
}
