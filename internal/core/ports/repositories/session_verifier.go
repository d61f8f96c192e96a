package repositories

import "context"

// SessionVerifier checks whether the backing session/connection is usable.
// The sync service calls it once at startup before pulling canonical state;
// a failure degrades the engine to cache-only operation with sensitive
// collections cleared.
type SessionVerifier interface {
	VerifySession(ctx context.Context) error
}
