package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound signals that no snapshot has been stored yet. Callers
// must treat absence differently from a present-but-corrupt snapshot:
// absence seeds a fresh state, corruption is reported by the codec.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository is the durable store boundary: a single opaque blob per
// operating mode. Implementations do not interpret the payload.
type SnapshotRepository interface {
	// Load returns the stored snapshot blob, or ErrSnapshotNotFound when
	// nothing has been saved under this repository's key.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored snapshot blob.
	Save(ctx context.Context, data []byte) error
	// Delete removes the stored snapshot blob. Deleting an absent snapshot
	// is not an error.
	Delete(ctx context.Context) error
}
