package bitmap

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
)

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{
		pixels: make([]byte, BytesPerPixel*r.Dx()*r.Dy()),
		stride: BytesPerPixel * r.Dx(),
		bounds: r,
	}
}

// BGRA is an in-memory image whose pixels are stored top-down as blue,
// green, red and straight alpha bytes, the layout of a 32-bit DIB section.
// It implements the draw.Image and PlaneLocker interfaces.
type BGRA struct {
	mu     sync.Mutex
	locked bool
	pixels []byte
	stride int
	bounds image.Rectangle
}

// Bounds implements the image.Image interface.
func (d *BGRA) Bounds() image.Rectangle {
	return d.bounds
}

// ColorModel implements the image.Image interface.
func (d *BGRA) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image interface.
func (d *BGRA) At(x, y int) color.Color {
	if !image.Pt(x, y).In(d.bounds) {
		return color.NRGBA{}
	}
	i := d.offset(x, y)
	return color.NRGBA{R: d.pixels[i+2], G: d.pixels[i+1], B: d.pixels[i], A: d.pixels[i+3]}
}

// Set implements the draw.Image interface.
func (d *BGRA) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(d.bounds) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := d.offset(x, y)
	d.pixels[i+0] = n.B
	d.pixels[i+1] = n.G
	d.pixels[i+2] = n.R
	d.pixels[i+3] = n.A
}

func (d *BGRA) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + (x-d.bounds.Min.X)*BytesPerPixel
}

// LockPlane exposes the pixel rows. The rows are stored top-down so the
// returned stride is negative. Only one lock may be held at a time.
func (d *BGRA) LockPlane() (*Plane, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.locked {
		return nil, errors.New("bitmap: plane already locked")
	}
	d.locked = true

	return &Plane{Pix: d.pixels, Stride: -d.stride}, nil
}

func (d *BGRA) UnlockPlane(p *Plane) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.locked || p == nil {
		return errors.New("bitmap: plane not locked")
	}
	d.locked = false

	return nil
}
