package services

import (
	"context"
	"errors"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/google/uuid"
)

type txCategoryService struct {
	categoryRepo portsrepo.TxCategoryRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewTxCategoryService creates a new transaction category service.
func NewTxCategoryService(categoryRepo portsrepo.TxCategoryRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TxCategorySvcFacade {
	return &txCategoryService{
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.TxCategorySvcFacade = (*txCategoryService)(nil)

// resolveAccountCode checks that an account code resolves to an active
// account in scope. Categories must never be wired to codes that cannot
// post.
func (s *txCategoryService) resolveAccountCode(ctx context.Context, workspaceID, divisionID, code string) error {
	_, err := s.accountRepo.FindAccountByCode(ctx, workspaceID, divisionID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("account code " + code + " does not resolve in this division")
		}
		return err
	}
	return nil
}

func (s *txCategoryService) CreateCategory(ctx context.Context, workspaceID, divisionID string, req dto.CreateTxCategoryRequest, creatorUserID string) (*domain.TxCategory, error) {
	if err := s.resolveAccountCode(ctx, workspaceID, divisionID, req.DebitAccountCode); err != nil {
		return nil, err
	}
	if err := s.resolveAccountCode(ctx, workspaceID, divisionID, req.CreditAccountCode); err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.TxCategory{
		TxCategoryID:        uuid.NewString(),
		WorkspaceID:         workspaceID,
		DivisionID:          divisionID,
		Code:                req.Code,
		Name:                req.Name,
		DebitAccountCode:    req.DebitAccountCode,
		CreditAccountCode:   req.CreditAccountCode,
		DescriptionTemplate: req.DescriptionTemplate,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *txCategoryService) GetCategoryByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.TxCategory, error) {
	return s.categoryRepo.FindCategoryByCode(ctx, workspaceID, divisionID, code)
}

func (s *txCategoryService) ListCategories(ctx context.Context, workspaceID, divisionID string) ([]domain.TxCategory, error) {
	return s.categoryRepo.ListCategories(ctx, workspaceID, divisionID)
}

func (s *txCategoryService) UpdateCategory(ctx context.Context, workspaceID, divisionID, code string, req dto.UpdateTxCategoryRequest, updaterUserID string) (*domain.TxCategory, error) {
	category, err := s.categoryRepo.FindCategoryByCode(ctx, workspaceID, divisionID, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.DebitAccountCode != nil {
		if err := s.resolveAccountCode(ctx, workspaceID, divisionID, *req.DebitAccountCode); err != nil {
			return nil, err
		}
		category.DebitAccountCode = *req.DebitAccountCode
	}
	if req.CreditAccountCode != nil {
		if err := s.resolveAccountCode(ctx, workspaceID, divisionID, *req.CreditAccountCode); err != nil {
			return nil, err
		}
		category.CreditAccountCode = *req.CreditAccountCode
	}
	if req.DescriptionTemplate != nil {
		category.DescriptionTemplate = *req.DescriptionTemplate
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = updaterUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}
