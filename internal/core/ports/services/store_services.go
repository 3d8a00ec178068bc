package services

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
)

// StoreReaderSvc defines read operations for store data
type StoreReaderSvc interface {
	// FindStoreByID retrieves a specific store by its ID.
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)

	// FindStoreInDivision retrieves a store and enforces that it belongs to
	// the division; a mismatch yields ErrValidation.
	FindStoreInDivision(ctx context.Context, divisionID, storeID string) (*domain.Store, error)

	// ListStores retrieves all stores of a division.
	ListStores(ctx context.Context, divisionID string) ([]domain.Store, error)
}

// StoreWriterSvc defines write operations for store data
type StoreWriterSvc interface {
	// CreateStore persists a new store under a division.
	CreateStore(ctx context.Context, workspaceID, divisionID string, req dto.CreateStoreRequest, creatorUserID string) (*domain.Store, error)

	// UpdateStore updates name/location.
	UpdateStore(ctx context.Context, divisionID, storeID string, req dto.UpdateStoreRequest, updaterUserID string) (*domain.Store, error)

	// DeactivateStore marks a store inactive.
	DeactivateStore(ctx context.Context, divisionID, storeID, updaterUserID string) error
}

// StoreSvcFacade combines all store-related service interfaces
type StoreSvcFacade interface {
	StoreReaderSvc
	StoreWriterSvc
}
