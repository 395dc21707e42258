package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salm7n/png2bmp32/pkg/bitmap"
)

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, zap.NewNop())
	require.NoError(t, fs.MkdirAll("/out", 0755))

	require.NoError(t, s.WriteFile("/out/a.bmp", []byte("one"), false))

	bs, err := s.ReadFile("/out/a.bmp")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), bs)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, zap.NewNop())
	require.NoError(t, afero.WriteFile(fs, "/a.bmp", []byte("old"), 0644))

	err := s.WriteFile("/a.bmp", []byte("new"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrExist))
	assert.True(t, errors.Is(err, bitmap.ErrIOFailure))

	require.NoError(t, s.WriteFile("/a.bmp", []byte("new"), true))
	bs, err := afero.ReadFile(fs, "/a.bmp")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), bs)
}

func TestWriteFileReadOnly(t *testing.T) {
	s := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), zap.NewNop())

	err := s.WriteFile("/a.bmp", []byte("x"), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bitmap.ErrIOFailure))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
}

func TestReadFileMissing(t *testing.T) {
	s := New(afero.NewMemMapFs(), zap.NewNop())

	_, err := s.ReadFile("/missing.png")
	assert.True(t, errors.Is(err, bitmap.ErrIOFailure))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	exists, err := s.DirExists("/missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
