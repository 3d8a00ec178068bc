package repositories

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// StoreReader defines read operations for store data
type StoreReader interface {
	// FindStoreByID retrieves a specific store by its ID.
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)

	// ListStoresByDivision retrieves all stores owned by a division.
	ListStoresByDivision(ctx context.Context, divisionID string) ([]domain.Store, error)
}

// StoreWriter defines write operations for store data
type StoreWriter interface {
	// SaveStore persists a new store.
	SaveStore(ctx context.Context, store domain.Store) error

	// UpdateStore persists changes to an existing store.
	UpdateStore(ctx context.Context, store domain.Store) error

	// ApplyBalanceDelta adjusts a store's running balance within an existing
	// transaction. Only the ledger engine calls this.
	ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, storeID string, delta decimal.Decimal, updatedBy string) error
}

// StoreRepositoryFacade combines all store-related repository interfaces
type StoreRepositoryFacade interface {
	StoreReader
	StoreWriter
}
