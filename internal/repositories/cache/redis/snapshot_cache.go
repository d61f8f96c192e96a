// Package redis implements the local persistent cache: whole-collection JSON
// snapshots under fixed string keys, read at startup and written after
// reconciliation. It is never the system of record during a session.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	"github.com/sitebook/backend/internal/store"
)

const (
	keyProfiles     = "sitebook:snapshot:profiles"
	keyProjects     = "sitebook:snapshot:projects"
	keyAttendance   = "sitebook:snapshot:attendance"
	keyTransactions = "sitebook:snapshot:transactions"
	keyMaterials    = "sitebook:snapshot:materials"
	keyReports      = "sitebook:snapshot:reports"
	keyNotices      = "sitebook:snapshot:notices"
)

// sensitiveKeys are cleared when session verification fails or on logout.
// Notices are broadcast data and survive.
var sensitiveKeys = []string{
	keyProfiles, keyProjects, keyAttendance, keyTransactions, keyMaterials, keyReports,
}

// SnapshotCache stores entity-collection snapshots in Redis.
type SnapshotCache struct {
	client *redis.Client
}

// NewSnapshotCache creates a snapshot cache over an existing client. The
// caller retains ownership of the client.
func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

var _ portsrepo.SnapshotCache = (*SnapshotCache)(nil)

// LoadSnapshot reads every collection key. A missing key yields an empty
// collection; a snapshot counts as absent only when no key exists at all.
func (c *SnapshotCache) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	snap := &store.Snapshot{}
	found := 0

	loaders := []struct {
		key  string
		dest any
	}{
		{keyProfiles, &snap.Profiles},
		{keyProjects, &snap.Projects},
		{keyAttendance, &snap.Attendance},
		{keyTransactions, &snap.Transactions},
		{keyMaterials, &snap.Materials},
		{keyReports, &snap.Reports},
		{keyNotices, &snap.Notices},
	}
	for _, l := range loaders {
		data, err := c.client.Get(ctx, l.key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cache key %s: %w", l.key, err)
		}
		if err := json.Unmarshal(data, l.dest); err != nil {
			return nil, fmt.Errorf("failed to decode cache key %s: %w", l.key, err)
		}
		found++
	}
	if found == 0 {
		return nil, nil
	}
	return snap, nil
}

// SaveSnapshot writes every collection under its fixed key.
func (c *SnapshotCache) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	writers := []struct {
		key string
		src any
	}{
		{keyProfiles, snap.Profiles},
		{keyProjects, snap.Projects},
		{keyAttendance, snap.Attendance},
		{keyTransactions, snap.Transactions},
		{keyMaterials, snap.Materials},
		{keyReports, snap.Reports},
		{keyNotices, snap.Notices},
	}
	pipe := c.client.TxPipeline()
	for _, w := range writers {
		data, err := json.Marshal(w.src)
		if err != nil {
			return fmt.Errorf("failed to encode cache key %s: %w", w.key, err)
		}
		pipe.Set(ctx, w.key, data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ClearSensitive deletes worker, financial and site-record collections while
// preserving non-sensitive keys.
func (c *SnapshotCache) ClearSensitive(ctx context.Context) error {
	if err := c.client.Del(ctx, sensitiveKeys...).Err(); err != nil {
		return fmt.Errorf("failed to clear sensitive cache keys: %w", err)
	}
	return nil
}
