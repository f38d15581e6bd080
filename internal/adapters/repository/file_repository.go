package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// FileRepository stores the snapshot blob in a single file per operating
// mode under the data directory. No caching: every call reads or writes the
// file, and a mutex keeps concurrent handler goroutines from interleaving
// writes.
type FileRepository struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a file-backed snapshot repository for the given
// mode. The data directory is created if it does not exist.
func NewFileRepository(fs afero.Fs, dataDir, mode string) (*FileRepository, error) {
	if err := fs.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileRepository{
		fs:   fs,
		path: filepath.Join(dataDir, fmt.Sprintf("planner-%s.json", mode)),
	}, nil
}

// Load reads the snapshot file. A missing file maps to ErrSnapshotNotFound.
func (r *FileRepository) Load(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return data, nil
}

// Save replaces the snapshot file contents.
func (r *FileRepository) Save(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := afero.WriteFile(r.fs, r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// Delete removes the snapshot file. A missing file is not an error.
func (r *FileRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fs.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot file: %w", err)
	}
	return nil
}
