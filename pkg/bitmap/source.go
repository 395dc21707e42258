package bitmap

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

type PixelFormat int

const (
	// FormatOther is any layout without a directly copyable 32-bit BGRA plane.
	FormatOther PixelFormat = iota
	// FormatBGRA32 is 4 bytes per pixel in blue, green, red, alpha order.
	FormatBGRA32
)

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA32:
		return "bgra32"
	case FormatOther:
		return "other"
	}
	return "unknown"
}

// Source is a decoded raster handed over by a decoder. The encoder only
// borrows it for the duration of one call.
type Source struct {
	Width  int
	Height int
	DpiX   float64
	DpiY   float64
	Format PixelFormat

	// Plane gives access to the packed rows of a FormatBGRA32 source.
	Plane PlaneLocker
	// Pixels is used for every other format.
	Pixels PixelReader
}

// Plane is a borrowed view of packed pixel rows. Pix starts at the first
// stored row and rows are |Stride| bytes apart. A positive Stride means the
// first stored row is the bottom row of the image, a negative Stride means
// it is the top row.
type Plane struct {
	Pix    []byte
	Stride int
}

// PlaneLocker hands out a Plane. Every successful LockPlane is paired with
// an UnlockPlane once the rows have been read.
type PlaneLocker interface {
	LockPlane() (*Plane, error)
	UnlockPlane(p *Plane) error
}

// PixelReader returns the straight (non-premultiplied) color at x, y,
// with 0, 0 the top left pixel.
type PixelReader interface {
	At(x, y int) (color.NRGBA, error)
}

// FromImage describes img as a Source. A *BGRA is read plane by plane,
// anything else pixel by pixel.
func FromImage(img image.Image, dpiX, dpiY float64) *Source {
	size := img.Bounds().Size()
	src := &Source{
		Width:  size.X,
		Height: size.Y,
		DpiX:   dpiX,
		DpiY:   dpiY,
	}

	if m, ok := img.(*BGRA); ok {
		src.Format = FormatBGRA32
		src.Plane = m
	} else {
		src.Format = FormatOther
		src.Pixels = &imageReader{img: img}
	}

	return src
}

type imageReader struct {
	img image.Image
}

func (r *imageReader) At(x, y int) (color.NRGBA, error) {
	b := r.img.Bounds()
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if !p.In(b) {
		return color.NRGBA{}, errors.Wrapf(ErrOutOfRange, "pixel (%d,%d) outside %v", x, y, b)
	}
	return color.NRGBAModel.Convert(r.img.At(p.X, p.Y)).(color.NRGBA), nil
}
