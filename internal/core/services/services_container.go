package services

import (
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/store"
)

// NewServiceContainer wires the engine: balance calculator and stats
// aggregator over the entity store, sync manager over the remote
// repositories, ledger gateway feeding the sync queue.
func NewServiceContainer(entities *store.EntityStore, repos portsrepo.RepositoryProvider, cache portsrepo.SnapshotCache, syncOptions ...SyncServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Balance = NewBalanceService(entities)
	container.Stats = NewStatsService(entities, container.Balance)
	container.Sync = NewSyncService(entities, repos, cache, container.Balance, syncOptions...)
	container.Ledger = NewLedgerService(entities, container.Balance, container.Sync)

	return container
}
