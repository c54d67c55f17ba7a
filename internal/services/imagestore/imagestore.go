// File: internal/services/imagestore/imagestore.go

// Package imagestore keeps uploaded clinical images on local disk
// under generated names, and resolves stored references for the vision
// adapter.
package imagestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")
var ErrInvalidReference = errors.New("invalid image reference")

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("image store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the image under a generated name and returns the stored
// reference.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return name, nil
}

// Path resolves a stored reference to an absolute path. References
// must be bare file names; anything traversing out of the store is
// rejected.
func (s *Store) Path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return "", ErrInvalidReference
	}
	return filepath.Join(s.dir, ref), nil
}
