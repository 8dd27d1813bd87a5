package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/procheck/internal/checker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)

	sites := []checker.RevealSite{
		{ID: "a", File: "main.xp", Line: 3, Column: 5, Source: "inproc String", Result: "xproc String"},
		{ID: "b", File: "main.xp", Line: 7, Column: 1, Source: "inproc String", Result: "xproc String"},
	}
	require.NoError(t, store.Record("main.xp", sites))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, 3, records[0].Line)
	assert.Equal(t, "inproc String", records[0].Source)
	assert.False(t, records[0].CheckedAt.IsZero())
}

func TestRecordReplacesPerFile(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record("main.xp", []checker.RevealSite{
		{ID: "old", File: "main.xp", Line: 1, Column: 1, Source: "inproc String", Result: "xproc String"},
	}))
	require.NoError(t, store.Record("other.xp", []checker.RevealSite{
		{ID: "keep", File: "other.xp", Line: 2, Column: 2, Source: "inproc String", Result: "xproc String"},
	}))
	// Re-checking main.xp with one different site replaces only its rows.
	require.NoError(t, store.Record("main.xp", []checker.RevealSite{
		{ID: "new", File: "main.xp", Line: 5, Column: 1, Source: "inproc String", Result: "xproc String"},
	}))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "keep", records[1].ID)
}

func TestRecordEmptyClearsFile(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record("main.xp", []checker.RevealSite{
		{ID: "x", File: "main.xp", Line: 1, Column: 1, Source: "inproc String", Result: "xproc String"},
	}))
	require.NoError(t, store.Record("main.xp", nil))

	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}
