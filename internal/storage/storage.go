package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/salm7n/png2bmp32/pkg/bitmap"
)

// IOError reports a failed file operation. It matches bitmap.ErrIOFailure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == bitmap.ErrIOFailure
}

var ErrExists = os.ErrExist

func New(fs afero.Fs, logger *zap.Logger) *Storage {
	return &Storage{fs: fs, log: logger}
}

// NewOs returns a Storage on the local file system.
func NewOs(logger *zap.Logger) *Storage {
	return New(afero.NewOsFs(), logger)
}

type Storage struct {
	fs  afero.Fs
	log *zap.Logger
}

func (s *Storage) ReadFile(path string) ([]byte, error) {
	bs, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return bs, nil
}

func (s *Storage) DirExists(path string) (bool, error) {
	exists, err := afero.DirExists(s.fs, path)
	if err != nil {
		return false, &IOError{Op: "stat", Path: path, Err: err}
	}
	return exists, nil
}

// WriteFile stores bs at path. The bytes go to a temporary sibling first
// and are renamed into place, so path never holds a partial file.
func (s *Storage) WriteFile(path string, bs []byte, overwrite bool) error {
	if !overwrite {
		if exists, err := afero.Exists(s.fs, path); err != nil {
			return &IOError{Op: "stat", Path: path, Err: err}
		} else if exists {
			return &IOError{Op: "write", Path: path, Err: ErrExists}
		}
	}

	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, xid.New().String()))

	if err := afero.WriteFile(s.fs, tmp, bs, 0644); err != nil {
		_ = s.fs.Remove(tmp)
		return &IOError{Op: "write", Path: tmp, Err: err}
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	s.log.With(zap.String("path", path), zap.String("tmp", tmp)).Debug("file written")
	return nil
}
