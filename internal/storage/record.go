package storage

import (
	"context"
	"fmt"
	"maps"
)

// NotificationRecord maps a pull request URL to the update time, in epoch
// milliseconds, that was current when the viewer was last notified about it.
// A URL that is absent has never been notified. Entries are never removed:
// a closed pull request leaves an inert entry behind.
type NotificationRecord map[string]int64

// Clone returns an independent copy. A nil record clones to an empty one.
func (r NotificationRecord) Clone() NotificationRecord {
	out := make(NotificationRecord, len(r))
	maps.Copy(out, r)
	return out
}

// Merge writes every entry of updates into r, leaving other entries alone.
func (r NotificationRecord) Merge(updates NotificationRecord) {
	maps.Copy(r, updates)
}

// RecordStore persists the NotificationRecord. Load and Save are each atomic;
// a Load followed by a Save is not. Save must store every entry of record;
// callers always pass a full, merged record, so a store may either replace or
// upsert.
type RecordStore interface {
	Load(ctx context.Context) (NotificationRecord, error)
	Save(ctx context.Context, record NotificationRecord) error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the record store for backend rooted at dir.
func Open(backend, dir string) (RecordStore, error) {
	switch backend {
	case "", BackendJSON:
		return NewManager(dir), nil
	case BackendSQLite:
		return NewSQLiteStore(SQLitePath(dir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", backend, BackendJSON, BackendSQLite)
	}
}

// CredentialStore keeps the GitHub token saved by `reviewwatch auth login`.
type CredentialStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	RemoveToken() error
}

var _ CredentialStore = (*Manager)(nil)
