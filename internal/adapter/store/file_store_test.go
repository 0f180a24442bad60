package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"snowday/internal/domain/entity"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "data")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 1, 31, 21, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err = s.Latest(ctx)
	assert.ErrorIs(t, err, entity.ErrResourceNotFound)

	require.NoError(t, s.Save(ctx, "First"))
	require.NoError(t, s.Save(ctx, "Second"))

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", latest)

	history, err := afero.ReadFile(fs, filepath.Join("data", HistoryFile))
	require.NoError(t, err)
	assert.Equal(t,
		"[2024-01-31T21:00:00Z] First\n[2024-01-31T21:00:00Z] Second\n",
		string(history))

	exists, err := afero.Exists(fs, filepath.Join("data", PredictionFile+".tmp"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadPolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "policy.txt", []byte("Closed below -20F wind chill."), 0o644))

	policy, err := ReadPolicy(fs, "policy.txt")
	require.NoError(t, err)
	assert.Equal(t, "Closed below -20F wind chill.", policy)

	policy, err = ReadPolicy(fs, "")
	require.NoError(t, err)
	assert.Empty(t, policy)

	_, err = ReadPolicy(fs, "missing.txt")
	assert.Error(t, err)
}
