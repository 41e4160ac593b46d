package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoadMissingRecordIsEmpty(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "state"))

	record, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Empty(t, record)
}

func TestManager_SaveAndLoadRecord(t *testing.T) {
	ctx := context.Background()
	m := NewManager(t.TempDir())

	want := NotificationRecord{
		"https://github.com/acme/api/pull/1": 100,
		"https://github.com/acme/api/pull/2": 250,
	}
	require.NoError(t, m.Save(ctx, want))

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files left behind.
	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "notified.json", entries[0].Name())
}

func TestManager_CorruptRecordIsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notified.json"), []byte("{"), 0644))

	_, err := NewManager(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse notification record")
}

func TestManager_ConcurrentSavesAreAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewManager(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Save(ctx, NotificationRecord{"https://github.com/acme/api/pull/1": int64(i)})
		}(i)
	}
	wg.Wait()

	record, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, record, 1)
}

func TestManager_TokenRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.LoadToken()
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, m.SaveToken("  ghp_secret \n"))

	token, err := m.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", token)

	info, err := os.Stat(filepath.Join(m.Dir(), "auth.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, m.RemoveToken())
	require.NoError(t, m.RemoveToken(), "removing twice is fine")

	_, err = m.LoadToken()
	assert.Error(t, err)
}

func TestManager_SaveEmptyTokenRejected(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Error(t, m.SaveToken("   "))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	assert.Equal(t, filepath.Join("/tmp/xdg-state", "reviewwatch"), DefaultDir())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &Manager{}, store)

	store, err = Open(BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.(*SQLiteStore).Close())

	_, err = Open("redis", dir)
	assert.Error(t, err)
}

func TestNotificationRecord_CloneAndMerge(t *testing.T) {
	var nilRecord NotificationRecord
	clone := nilRecord.Clone()
	assert.NotNil(t, clone)

	r := NotificationRecord{"a": 1, "b": 2}
	c := r.Clone()
	c["a"] = 99
	assert.Equal(t, int64(1), r["a"])

	r.Merge(NotificationRecord{"b": 3, "c": 4})
	assert.Equal(t, NotificationRecord{"a": 1, "b": 3, "c": 4}, r)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	initial := NotificationRecord{"a": 1}
	s := NewMemoryStore(initial)
	initial["a"] = 2

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got["a"], "store is isolated from the caller's map")

	got["b"] = 5
	assert.Equal(t, NotificationRecord{"a": 1}, s.Snapshot())

	require.NoError(t, s.Save(ctx, got))
	assert.Equal(t, 1, s.Saves)
	assert.Equal(t, NotificationRecord{"a": 1, "b": 5}, s.Snapshot())
}
