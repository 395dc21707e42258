package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBGRASetAt(t *testing.T) {
	m := NewBGRA(image.Rect(10, 20, 12, 22))
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 4}

	m.Set(11, 21, c)
	m.Set(50, 50, c) // ignored

	assert.Equal(t, c, m.At(11, 21))
	assert.Equal(t, color.NRGBA{}, m.At(10, 20))
	assert.Equal(t, color.NRGBA{}, m.At(50, 50))
	assert.Equal(t, []byte{3, 2, 1, 4}, m.pixels[12:16])
}

func TestBGRALockPlane(t *testing.T) {
	m := NewBGRA(image.Rect(0, 0, 3, 2))

	p, err := m.LockPlane()
	require.NoError(t, err)
	assert.Equal(t, -12, p.Stride)
	assert.Len(t, p.Pix, 24)

	_, err = m.LockPlane()
	assert.Error(t, err)

	require.NoError(t, m.UnlockPlane(p))
	assert.Error(t, m.UnlockPlane(p))

	p, err = m.LockPlane()
	require.NoError(t, err)
	require.NoError(t, m.UnlockPlane(p))
}

func TestBGRAEncodeReleasesPlane(t *testing.T) {
	m := NewBGRA(image.Rect(0, 0, 2, 2))

	_, err := EncodeImage(m, 96, 96)
	require.NoError(t, err)

	p, err := m.LockPlane()
	require.NoError(t, err, "plane still locked after encoding")
	require.NoError(t, m.UnlockPlane(p))
}
