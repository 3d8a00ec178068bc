package services

import (
	"context"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type storeService struct {
	storeRepo portsrepo.StoreRepositoryFacade
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo portsrepo.StoreRepositoryFacade) portssvc.StoreSvcFacade {
	return &storeService{storeRepo: storeRepo}
}

var _ portssvc.StoreSvcFacade = (*storeService)(nil)

func (s *storeService) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	return s.storeRepo.FindStoreByID(ctx, storeID)
}

// FindStoreInDivision loads a store and enforces that the path it was
// reached through matches its owner.
func (s *storeService) FindStoreInDivision(ctx context.Context, divisionID, storeID string) (*domain.Store, error) {
	store, err := s.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !store.BelongsTo(divisionID) {
		return nil, apperrors.NewValidationFailedError("store does not belong to the requested division")
	}
	return store, nil
}

func (s *storeService) ListStores(ctx context.Context, divisionID string) ([]domain.Store, error) {
	return s.storeRepo.ListStoresByDivision(ctx, divisionID)
}

// CreateStore persists a new store with a zero opening balance. Balances
// only ever move through ledger postings.
func (s *storeService) CreateStore(ctx context.Context, workspaceID, divisionID string, req dto.CreateStoreRequest, creatorUserID string) (*domain.Store, error) {
	now := time.Now()
	store := domain.Store{
		StoreID:     uuid.NewString(),
		DivisionID:  divisionID,
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Location:    req.Location,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.storeRepo.SaveStore(ctx, store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, divisionID, storeID string, req dto.UpdateStoreRequest, updaterUserID string) (*domain.Store, error) {
	store, err := s.FindStoreInDivision(ctx, divisionID, storeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Location != nil {
		store.Location = *req.Location
	}
	store.LastUpdatedAt = time.Now()
	store.LastUpdatedBy = updaterUserID

	if err := s.storeRepo.UpdateStore(ctx, *store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) DeactivateStore(ctx context.Context, divisionID, storeID, updaterUserID string) error {
	store, err := s.FindStoreInDivision(ctx, divisionID, storeID)
	if err != nil {
		return err
	}

	store.IsActive = false
	store.LastUpdatedAt = time.Now()
	store.LastUpdatedBy = updaterUserID

	return s.storeRepo.UpdateStore(ctx, *store)
}
