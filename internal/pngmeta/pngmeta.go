// Package pngmeta reads the few PNG container facts the decoder drops:
// the signature and the physical pixel size.
package pngmeta

import (
	"bytes"
	"encoding/binary"

	"github.com/salm7n/png2bmp32/pkg/bitmap"
)

var signature = []byte("\x89PNG\r\n\x1a\n")

const unitMeter = 1

func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, signature)
}

// Resolution returns the pixels per inch stored in the pHYs chunk. ok is
// false when there is no chunk, its unit is not the metre, or the chunk
// list is malformed before it.
func Resolution(data []byte) (dpiX, dpiY float64, ok bool) {
	if !IsPNG(data) {
		return 0, 0, false
	}

	rest := data[len(signature):]
	for len(rest) >= 12 {
		n := binary.BigEndian.Uint32(rest[0:4])
		typ := string(rest[4:8])
		if uint64(n)+12 > uint64(len(rest)) {
			return 0, 0, false
		}
		body := rest[8 : 8+n]

		switch typ {
		case "pHYs":
			if n != 9 || body[8] != unitMeter {
				return 0, 0, false
			}
			x := binary.BigEndian.Uint32(body[0:4])
			y := binary.BigEndian.Uint32(body[4:8])
			return float64(x) / bitmap.InchesPerMeter, float64(y) / bitmap.InchesPerMeter, true
		case "IDAT", "IEND":
			// pHYs must appear before the image data
			return 0, 0, false
		}

		rest = rest[12+n:]
	}

	return 0, 0, false
}
