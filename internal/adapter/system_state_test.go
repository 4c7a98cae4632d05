package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemState_ReadsCachedListings(t *testing.T) {
	workdir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(workdir, FilesetListingFile), []byte("bos:bos.rte:7.1.5.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workdir, FixListingFile), []byte("EFIX ID: 1\n"), 0o644))

	state := NewFileSystemState(workdir)

	filesets, err := state.ListFilesets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bos:bos.rte:7.1.5.0\n", filesets)

	fixes, err := state.ListFixes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EFIX ID: 1\n", fixes)
}

func TestFileSystemState_MissingListing(t *testing.T) {
	state := NewFileSystemState(t.TempDir())

	_, err := state.ListFilesets(context.Background())
	require.Error(t, err)
}

func TestFileSystemState_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := NewFileSystemState(t.TempDir())

	_, err := state.ListFixes(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
