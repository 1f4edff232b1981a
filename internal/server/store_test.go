package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingTables(t *testing.T) {
	t.Parallel()

	// A database file that was never populated: the failure is an
	// infrastructure error, not a NotFound outcome.
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))

	_, err := store.CountyData(context.Background(), "02138", "Adult obesity")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
