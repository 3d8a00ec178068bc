package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// --- Account DTOs ---

// CreateAccountRequest defines data for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,uppercase"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string             `json:"description"`
}

// UpdateAccountRequest defines updatable account fields. The code and type
// are fixed after creation.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AccountResponse defines data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	WorkspaceID   string             `json:"workspaceID"`
	DivisionID    string             `json:"divisionID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Description   string             `json:"description"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		WorkspaceID:   a.WorkspaceID,
		DivisionID:    a.DivisionID,
		Code:          a.Code,
		Name:          a.Name,
		AccountType:   a.AccountType,
		Description:   a.Description,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to DTOs.
func ToListAccountsResponse(as []domain.Account) []AccountResponse {
	list := make([]AccountResponse, len(as))
	for i, a := range as {
		list[i] = ToAccountResponse(&a)
	}
	return list
}
