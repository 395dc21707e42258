package bitmap

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ConvertPixels appends the pixel array of src to out: Height rows of
// Width*4 bytes in blue, green, red, alpha order, bottom row first.
// On error out may hold a partial row set and must be discarded.
func ConvertPixels(src *Source, out *bytes.Buffer) error {
	if err := checkSize(src.Width, src.Height); err != nil {
		return err
	}

	return lo.Ternary(src.Format == FormatBGRA32, convertPlane, convertPixels)(src, out)
}

// convertPlane copies whole rows out of a locked BGRA plane.
func convertPlane(src *Source, out *bytes.Buffer) (err error) {
	if src.Plane == nil {
		return errors.Wrap(ErrUnsupportedFormat, "bgra32 source without a plane")
	}

	p, err := src.Plane.LockPlane()
	if err != nil {
		return errors.Wrap(err, "lock plane")
	}
	defer func() {
		if uerr := src.Plane.UnlockPlane(p); uerr != nil && err == nil {
			err = errors.Wrap(uerr, "unlock plane")
		}
	}()

	w, h := src.Width, src.Height
	line := w * BytesPerPixel
	step := lo.Ternary(p.Stride < 0, -p.Stride, p.Stride)

	if step < line {
		return errors.Wrapf(ErrUnsupportedFormat, "stride %d for %d pixels per row", p.Stride, w)
	}
	if need := (h-1)*step + line; len(p.Pix) < need {
		return errors.Wrapf(ErrUnsupportedFormat, "plane holds %d bytes, %d needed", len(p.Pix), need)
	}

	// output row i is the i-th row counted from the bottom
	for i := 0; i < h; i++ {
		row := lo.Ternary(p.Stride > 0, i, h-1-i)
		start := row * step
		out.Write(p.Pix[start : start+line])
	}

	return nil
}

// convertPixels reads every pixel through the source's reader.
func convertPixels(src *Source, out *bytes.Buffer) error {
	if src.Pixels == nil {
		return errors.Wrapf(ErrUnsupportedFormat, "%s source without a pixel reader", src.Format)
	}

	px := make([]byte, BytesPerPixel)
	for y := src.Height - 1; y >= 0; y-- {
		for x := 0; x < src.Width; x++ {
			c, err := src.Pixels.At(x, y)
			if err != nil {
				return errors.Wrapf(err, "read pixel (%d,%d)", x, y)
			}
			px[0], px[1], px[2], px[3] = c.B, c.G, c.R, c.A
			out.Write(px)
		}
	}

	return nil
}
