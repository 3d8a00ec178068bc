package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// --- TxCategory DTOs ---

// CreateTxCategoryRequest defines data for creating a transaction category.
type CreateTxCategoryRequest struct {
	Code                string `json:"code" binding:"required"`
	Name                string `json:"name" binding:"required"`
	DebitAccountCode    string `json:"debitAccountCode" binding:"required,uppercase"`
	CreditAccountCode   string `json:"creditAccountCode" binding:"required,uppercase"`
	DescriptionTemplate string `json:"descriptionTemplate"`
}

// UpdateTxCategoryRequest defines updatable category fields.
type UpdateTxCategoryRequest struct {
	Name                *string `json:"name,omitempty"`
	DebitAccountCode    *string `json:"debitAccountCode,omitempty"`
	CreditAccountCode   *string `json:"creditAccountCode,omitempty"`
	DescriptionTemplate *string `json:"descriptionTemplate,omitempty"`
}

// TxCategoryResponse defines data returned for a category.
type TxCategoryResponse struct {
	TxCategoryID        string    `json:"txCategoryID"`
	WorkspaceID         string    `json:"workspaceID"`
	DivisionID          string    `json:"divisionID"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	DebitAccountCode    string    `json:"debitAccountCode"`
	CreditAccountCode   string    `json:"creditAccountCode"`
	DescriptionTemplate string    `json:"descriptionTemplate"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}

// ToTxCategoryResponse converts domain.TxCategory to DTO.
func ToTxCategoryResponse(c *domain.TxCategory) TxCategoryResponse {
	return TxCategoryResponse{
		TxCategoryID:        c.TxCategoryID,
		WorkspaceID:         c.WorkspaceID,
		DivisionID:          c.DivisionID,
		Code:                c.Code,
		Name:                c.Name,
		DebitAccountCode:    c.DebitAccountCode,
		CreditAccountCode:   c.CreditAccountCode,
		DescriptionTemplate: c.DescriptionTemplate,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		LastUpdatedAt:       c.LastUpdatedAt,
	}
}

// ToListTxCategoriesResponse converts a slice of domain.TxCategory to DTOs.
func ToListTxCategoriesResponse(cs []domain.TxCategory) []TxCategoryResponse {
	list := make([]TxCategoryResponse, len(cs))
	for i, c := range cs {
		list[i] = ToTxCategoryResponse(&c)
	}
	return list
}
