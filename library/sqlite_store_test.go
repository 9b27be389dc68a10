package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreLoadsEmptyFromFreshDatabase(t *testing.T) {
	store := tempSQLiteStore(t)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Books)
	assert.Empty(t, snap.Members)
	assert.Empty(t, snap.Transactions)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := tempSQLiteStore(t)

	want := sampleSnapshot()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Books, got.Books)
	assert.Equal(t, want.Members, got.Members)
	assert.Equal(t, want.Transactions, got.Transactions)
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store := tempSQLiteStore(t)

	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Save(Snapshot{
		Members: []Member{{ID: "M9", Name: "Zed"}},
	}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Books)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "M9", got.Members[0].ID)
	assert.Empty(t, got.Transactions)
}

// Ledger order survives the round-trip even when ids give no ordering hint.
func TestSQLiteStorePreservesLedgerOrder(t *testing.T) {
	store := tempSQLiteStore(t)

	snap := sampleSnapshot()
	snap.Transactions[0].ID = "zzz"
	snap.Transactions[1].ID = "aaa"
	require.NoError(t, store.Save(snap))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "zzz", got.Transactions[0].ID)
	assert.Equal(t, "aaa", got.Transactions[1].ID)
}

func TestSQLiteStoreReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load()
	require.NoError(t, err)
	assert.Len(t, got.Books, 2)
	assert.Len(t, got.Members, 2)
	assert.Len(t, got.Transactions, 2)
}
