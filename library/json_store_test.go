package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	loc := time.Local
	return Snapshot{
		Books: []Book{
			{ID: "B1", Title: "The Art of War", Author: "Sun Tzu", TotalCopies: 3, AvailableCopies: 2},
			{ID: "B2", Title: "Animal Farm", Author: "George Orwell", TotalCopies: 1, AvailableCopies: 1},
		},
		Members: []Member{
			{ID: "M1", Name: "Alice"},
			{ID: "M2", Name: "Bob"},
		},
		Transactions: []Transaction{
			{ID: "TX1", Kind: Borrow, MemberID: "M1", BookID: "B1",
				Time: time.Date(2024, 3, 1, 9, 0, 0, 0, loc)},
			{ID: "TX2", Kind: Return, MemberID: "M1", BookID: "B1",
				Time: time.Date(2024, 3, 2, 17, 30, 0, 0, loc)},
		},
	}
}

func TestJSONStoreLoadsEmptyWhenFilesAbsent(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Books)
	assert.Empty(t, snap.Members)
	assert.Empty(t, snap.Transactions)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)

	want := sampleSnapshot()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Books, got.Books)
	assert.Equal(t, want.Members, got.Members)
	assert.Equal(t, want.Transactions, got.Transactions)
}

func TestJSONStoreSaveOverwrites(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Save(Snapshot{
		Books: []Book{{ID: "B9", Title: "T", Author: "A", TotalCopies: 5, AvailableCopies: 5}},
	}))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got.Books, 1)
	assert.Equal(t, "B9", got.Books[0].ID)
	assert.Empty(t, got.Members)
	assert.Empty(t, got.Transactions)
}

// The on-disk date format stays "YYYY-MM-DD HH:MM:SS" so files written by
// older tooling keep loading.
func TestJSONStoreTimestampFormatOnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSnapshot()))

	b, err := os.ReadFile(filepath.Join(dir, "transactions.json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"2024-03-01 09:00:00"`)
	assert.Contains(t, string(b), `"type": "borrow"`)
}

func TestJSONStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestJSONStoreToleratesPartialStores(t *testing.T) {
	dir := t.TempDir()
	// Only members.json exists, as if the other stores were never written.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "members.json"),
		[]byte(`[{"member_id":"M1","name":"Alice"}]`), 0o644))

	store, err := NewJSONStore(dir)
	require.NoError(t, err)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Books)
	require.Len(t, snap.Members, 1)
	assert.Equal(t, "Alice", snap.Members[0].Name)
}
