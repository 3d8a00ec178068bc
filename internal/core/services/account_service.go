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
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. Code uniqueness per scope is
// enforced by the database; a duplicate surfaces as a conflict.
func (s *accountService) CreateAccount(ctx context.Context, workspaceID, divisionID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		DivisionID:  divisionID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// findAccountInScope loads an account and enforces the tenant boundary. An
// account reached through a foreign scope path is reported as absent, not
// forbidden, so raw IDs leak nothing.
func (s *accountService) findAccountInScope(ctx context.Context, workspaceID, divisionID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.BelongsTo(workspaceID, divisionID) {
		return nil, apperrors.NewNotFoundError("account not found", nil)
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, workspaceID, divisionID, accountID string) (*domain.Account, error) {
	return s.findAccountInScope(ctx, workspaceID, divisionID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, workspaceID, divisionID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, workspaceID, divisionID)
}

func (s *accountService) UpdateAccount(ctx context.Context, workspaceID, divisionID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.findAccountInScope(ctx, workspaceID, divisionID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. Historical transactions keep
// referencing it; only new postings are blocked.
func (s *accountService) DeactivateAccount(ctx context.Context, workspaceID, divisionID, accountID, updaterUserID string) error {
	if _, err := s.findAccountInScope(ctx, workspaceID, divisionID, accountID); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, updaterUserID, time.Now())
}
