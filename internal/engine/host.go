package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
)

// FileHost keeps the action of an object in a document on disk.
// A missing file means the object has no animation.
type FileHost struct {
	Path string
}

func (h *FileHost) CurrentAction() (*curve.Action, error) {
	action, err := document.ReadFile(h.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Path, err)
	}
	return action, nil
}

func (h *FileHost) WriteAction(action *curve.Action) error {
	if err := os.MkdirAll(filepath.Dir(h.Path), 0755); err != nil {
		return err
	}
	return document.WriteFile(action, h.Path)
}
