package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Store DTOs ---

// CreateStoreRequest defines data for creating a store.
type CreateStoreRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// UpdateStoreRequest defines updatable store fields.
type UpdateStoreRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// StoreResponse defines data returned for a store.
type StoreResponse struct {
	StoreID       string          `json:"storeID"`
	DivisionID    string          `json:"divisionID"`
	WorkspaceID   string          `json:"workspaceID"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToStoreResponse converts domain.Store to DTO.
func ToStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		StoreID:       s.StoreID,
		DivisionID:    s.DivisionID,
		WorkspaceID:   s.WorkspaceID,
		Name:          s.Name,
		Location:      s.Location,
		Balance:       s.Balance,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// ToListStoresResponse converts a slice of domain.Store to DTOs.
func ToListStoresResponse(ss []domain.Store) []StoreResponse {
	list := make([]StoreResponse, len(ss))
	for i, s := range ss {
		list[i] = ToStoreResponse(&s)
	}
	return list
}
