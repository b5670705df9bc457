// Package file implements the document repository as a single JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"weightlog/internal/atomicfile"
	"weightlog/internal/codec"
	"weightlog/internal/domain"
)

const (
	dirName  = ".weightlogger"
	fileName = "data.json"
)

// DefaultPath returns the backing file location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Repo stores the whole document in one JSON file. It holds no state
// between calls.
type Repo struct {
	path string
}

var _ domain.DocumentRepository = (*Repo)(nil)

// New returns a Repo backed by the file at path.
func New(path string) *Repo {
	return &Repo{path: path}
}

// Path returns the backing file path.
func (r *Repo) Path() string {
	return r.path
}

// Load reads and parses the backing file. A missing file yields an empty
// document.
func (r *Repo) Load(ctx context.Context) (*domain.Document, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return doc, nil
}

// Save replaces the backing file with doc. The data is written to a
// temporary file in the same directory and renamed over the target.
func (r *Repo) Save(ctx context.Context, doc *domain.Document) error {
	data, err := codec.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // data directory is user-owned
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := atomicfile.Write(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}
