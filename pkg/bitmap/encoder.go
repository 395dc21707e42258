package bitmap

import (
	"bytes"
	"image"
)

// Encode produces a complete uncompressed 32-bit BMP file for src.
// Nothing is returned on error.
func Encode(src *Source) ([]byte, error) {
	fh, ih, err := BuildHeaders(src)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, fh.FileSize))

	fb, _ := fh.MarshalBinary()
	ib, _ := ih.MarshalBinary()
	out.Write(fb)
	out.Write(ib)

	if err := ConvertPixels(src, out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// EncodeImage encodes img with the given resolution in pixels per inch.
func EncodeImage(img image.Image, dpiX, dpiY float64) ([]byte, error) {
	return Encode(FromImage(img, dpiX, dpiY))
}
