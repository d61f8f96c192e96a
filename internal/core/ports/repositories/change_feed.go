package repositories

import (
	"context"

	"github.com/sitebook/backend/internal/core/domain"
)

// ChangeEvent is one out-of-band row change pushed by the remote store.
// Payload is the JSON-encoded row; the sync service parses and validates it
// at the store boundary before merging.
type ChangeEvent struct {
	Kind    domain.MutationKind
	Payload []byte
}

// ChangeFeed is the remote store's change-notification subscription. The
// returned channel is closed when the subscription ends or ctx is cancelled.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
	Close() error
}
