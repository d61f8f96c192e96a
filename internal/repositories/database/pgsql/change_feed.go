package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
)

// notifyChannel is the Postgres NOTIFY channel row triggers publish on.
const notifyChannel = "sitebook_changes"

// changeEnvelope is the JSON shape published by the row triggers: the target
// collection plus the full row.
type changeEnvelope struct {
	Kind string          `json:"kind"`
	Row  json.RawMessage `json:"row"`
}

// PgxChangeFeed subscribes to remote row changes over LISTEN/NOTIFY on a
// dedicated connection.
type PgxChangeFeed struct {
	pool   *pgxpool.Pool
	cancel context.CancelFunc
}

// NewPgxChangeFeed creates a change feed over the shared pool.
func NewPgxChangeFeed(pool *pgxpool.Pool) *PgxChangeFeed {
	return &PgxChangeFeed{pool: pool}
}

var _ portsrepo.ChangeFeed = (*PgxChangeFeed)(nil)

// Subscribe starts listening and returns the event channel. The channel is
// closed when the subscription ends, the connection drops, or ctx is
// cancelled.
func (f *PgxChangeFeed) Subscribe(ctx context.Context) (<-chan portsrepo.ChangeEvent, error) {
	ctx, f.cancel = context.WithCancel(ctx)

	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		f.cancel()
		return nil, fmt.Errorf("failed to acquire change feed connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		f.cancel()
		return nil, fmt.Errorf("failed to LISTEN on %s: %w", notifyChannel, err)
	}

	events := make(chan portsrepo.ChangeEvent)
	go func() {
		defer close(events)
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("Change feed connection lost", slog.String("error", err.Error()))
				}
				return
			}

			var envelope changeEnvelope
			if err := json.Unmarshal([]byte(notification.Payload), &envelope); err != nil {
				slog.Warn("Dropping malformed change notification", slog.String("error", err.Error()))
				continue
			}
			select {
			case events <- portsrepo.ChangeEvent{Kind: domain.MutationKind(envelope.Kind), Payload: envelope.Row}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Close ends the subscription.
func (f *PgxChangeFeed) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}
