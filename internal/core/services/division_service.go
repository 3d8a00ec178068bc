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
	"github.com/jackc/pgx/v5"
)

type divisionService struct {
	divisionRepo portsrepo.DivisionRepositoryWithTx
	userRepo     portsrepo.UserReader
}

// NewDivisionService creates a new division service.
func NewDivisionService(divisionRepo portsrepo.DivisionRepositoryWithTx, userRepo portsrepo.UserReader) portssvc.DivisionSvcFacade {
	return &divisionService{
		divisionRepo: divisionRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.DivisionSvcFacade = (*divisionService)(nil)

func (s *divisionService) FindDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error) {
	return s.divisionRepo.FindDivisionByID(ctx, divisionID)
}

// FindDivisionInWorkspace loads a division and enforces the tenant boundary:
// a real division reached through the wrong workspace path is a malformed
// request, not a lookup miss.
func (s *divisionService) FindDivisionInWorkspace(ctx context.Context, workspaceID, divisionID string) (*domain.Division, error) {
	division, err := s.divisionRepo.FindDivisionByID(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	if !division.BelongsTo(workspaceID) {
		return nil, apperrors.NewValidationFailedError("division does not belong to the requested workspace")
	}
	return division, nil
}

func (s *divisionService) ListDivisions(ctx context.Context, workspaceID string) ([]domain.Division, error) {
	return s.divisionRepo.ListDivisionsByWorkspace(ctx, workspaceID)
}

func (s *divisionService) CreateDivision(ctx context.Context, workspaceID string, req dto.CreateDivisionRequest, creatorUserID string) (*domain.Division, error) {
	now := time.Now()
	division := domain.Division{
		DivisionID:  uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.divisionRepo.SaveDivision(ctx, division); err != nil {
		return nil, err
	}
	return &division, nil
}

func (s *divisionService) UpdateDivision(ctx context.Context, workspaceID, divisionID string, req dto.UpdateDivisionRequest, updaterUserID string) (*domain.Division, error) {
	division, err := s.FindDivisionInWorkspace(ctx, workspaceID, divisionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		division.Name = *req.Name
	}
	if req.Description != nil {
		division.Description = *req.Description
	}
	division.LastUpdatedAt = time.Now()
	division.LastUpdatedBy = updaterUserID

	if err := s.divisionRepo.UpdateDivision(ctx, *division); err != nil {
		return nil, err
	}
	return division, nil
}

// ResolveDivisionMembership returns the user's active division membership.
// Removed rows are invisible here.
func (s *divisionService) ResolveDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error) {
	return s.divisionRepo.FindDivisionMembership(ctx, userID, divisionID)
}

func (s *divisionService) ListDivisionMembers(ctx context.Context, divisionID string) ([]domain.DivisionMembership, error) {
	return s.divisionRepo.ListDivisionMemberships(ctx, divisionID)
}

// AddDivisionMember adds a user to a division inside a scoped transaction.
func (s *divisionService) AddDivisionMember(ctx context.Context, workspaceID, divisionID, targetUserID string, roles []string, addedBy string) (*domain.DivisionMembership, error) {
	if _, err := s.FindDivisionInWorkspace(ctx, workspaceID, divisionID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found", err)
		}
		return nil, err
	}

	normalized := domain.NormalizeRoleNames(roles)
	if len(normalized) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one role is required")
	}

	membership := domain.DivisionMembership{
		DivisionMembershipID: uuid.NewString(),
		UserID:               targetUserID,
		DivisionID:           divisionID,
		WorkspaceID:          workspaceID,
		Roles:                normalized,
		Status:               domain.DivisionMembershipStatusActive,
		AddedBy:              &addedBy,
		JoinedAt:             time.Now(),
	}

	err := s.divisionRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.divisionRepo.SaveDivisionMembership(ctx, tx, membership)
	})
	if err != nil {
		return nil, err
	}
	return s.divisionRepo.FindDivisionMembership(ctx, targetUserID, divisionID)
}

func (s *divisionService) UpdateDivisionMemberRoles(ctx context.Context, workspaceID, divisionID, targetUserID string, roles []string, updatedBy string) (*domain.DivisionMembership, error) {
	if _, err := s.FindDivisionInWorkspace(ctx, workspaceID, divisionID); err != nil {
		return nil, err
	}
	membership, err := s.divisionRepo.FindDivisionMembership(ctx, targetUserID, divisionID)
	if err != nil {
		return nil, err
	}

	normalized := domain.NormalizeRoleNames(roles)
	if len(normalized) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one role is required")
	}
	membership.Roles = normalized

	err = s.divisionRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.divisionRepo.SaveDivisionMembership(ctx, tx, *membership)
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// RemoveDivisionMember flips the membership status to removed. The row stays
// for audit; resolution simply stops seeing it.
func (s *divisionService) RemoveDivisionMember(ctx context.Context, workspaceID, divisionID, targetUserID, removedBy string) error {
	if _, err := s.FindDivisionInWorkspace(ctx, workspaceID, divisionID); err != nil {
		return err
	}
	membership, err := s.divisionRepo.FindDivisionMembership(ctx, targetUserID, divisionID)
	if err != nil {
		return err
	}

	membership.Status = domain.DivisionMembershipStatusRemoved
	membership.RemovedBy = &removedBy

	return s.divisionRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.divisionRepo.SaveDivisionMembership(ctx, tx, *membership)
	})
}
