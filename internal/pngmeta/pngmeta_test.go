package pngmeta

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func chunk(typ string, body []byte) []byte {
	out := make([]byte, 8, 12+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(body)))
	copy(out[4:8], typ)
	out = append(out, body...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(out[4:]))
}

// withPHYs inserts a pHYs chunk right after IHDR.
func withPHYs(data []byte, x, y uint32, unit byte) []byte {
	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body[0:4], x)
	binary.BigEndian.PutUint32(body[4:8], y)
	body[8] = unit

	ihdrEnd := len(signature) + 12 + 13
	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk("pHYs", body)...)
	return append(out, data[ihdrEnd:]...)
}

func TestIsPNG(t *testing.T) {
	assert.True(t, IsPNG(encodePNG(t)))
	assert.False(t, IsPNG([]byte("BM")))
	assert.False(t, IsPNG(nil))
}

func TestResolution(t *testing.T) {
	data := encodePNG(t)

	_, _, ok := Resolution(data)
	assert.False(t, ok, "plain png has no pHYs")

	dpiX, dpiY, ok := Resolution(withPHYs(data, 3780, 11811, unitMeter))
	require.True(t, ok)
	assert.InDelta(t, 96.0, dpiX, 0.02)
	assert.InDelta(t, 300.0, dpiY, 0.02)
	assert.Equal(t, 3780.0, math.Round(dpiX*39.3700787))

	_, _, ok = Resolution(withPHYs(data, 1, 1, 0))
	assert.False(t, ok, "aspect ratio only")

	_, _, ok = Resolution(data[:len(signature)+10])
	assert.False(t, ok, "truncated")

	_, _, ok = Resolution([]byte("not a png at all"))
	assert.False(t, ok)
}
