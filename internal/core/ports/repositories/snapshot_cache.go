package repositories

import (
	"context"

	"github.com/sitebook/backend/internal/store"
)

// SnapshotCache is the local persistent cache: whole-collection snapshots
// under fixed string keys. It is read at startup and written after
// reconciliation and on shutdown; it is never the system of record during a
// session.
type SnapshotCache interface {
	// LoadSnapshot returns the cached snapshot, or (nil, nil) when no
	// snapshot has been written yet.
	LoadSnapshot(ctx context.Context) (*store.Snapshot, error)

	SaveSnapshot(ctx context.Context, snap store.Snapshot) error

	// ClearSensitive deletes worker, financial and site-record collections
	// from the cache while preserving non-sensitive keys such as notices.
	ClearSensitive(ctx context.Context) error
}
