package repository

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

func TestFileRepositoryNotFound(t *testing.T) {
	repo, err := NewFileRepository(afero.NewMemMapFs(), "data", "standard")
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestFileRepositorySaveLoad(t *testing.T) {
	repo, err := NewFileRepository(afero.NewMemMapFs(), "data", "standard")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, []byte(`{"version":1}`)))

	data, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)

	// Save replaces, not appends.
	require.NoError(t, repo.Save(ctx, []byte(`{"version":2}`)))
	data, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":2}`), data)
}

func TestFileRepositoryModesDoNotCollide(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	standard, err := NewFileRepository(fs, "data", "standard")
	require.NoError(t, err)
	demo, err := NewFileRepository(fs, "data", "demo")
	require.NoError(t, err)

	require.NoError(t, standard.Save(ctx, []byte("real")))
	require.NoError(t, demo.Save(ctx, []byte("demo")))

	data, err := standard.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("real"), data)

	data, err = demo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("demo"), data)
}

func TestFileRepositoryDelete(t *testing.T) {
	repo, err := NewFileRepository(afero.NewMemMapFs(), "data", "standard")
	require.NoError(t, err)

	ctx := context.Background()

	// Deleting an absent snapshot is fine.
	assert.NoError(t, repo.Delete(ctx))

	require.NoError(t, repo.Save(ctx, []byte("x")))
	require.NoError(t, repo.Delete(ctx))

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}
