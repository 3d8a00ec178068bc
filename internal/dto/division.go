package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// --- Division DTOs ---

// CreateDivisionRequest defines data for creating a division.
type CreateDivisionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateDivisionRequest defines updatable division fields.
type UpdateDivisionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DivisionResponse defines data returned for a division.
type DivisionResponse struct {
	DivisionID    string    `json:"divisionID"`
	WorkspaceID   string    `json:"workspaceID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToDivisionResponse converts domain.Division to DTO.
func ToDivisionResponse(d *domain.Division) DivisionResponse {
	return DivisionResponse{
		DivisionID:    d.DivisionID,
		WorkspaceID:   d.WorkspaceID,
		Name:          d.Name,
		Description:   d.Description,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToListDivisionsResponse converts a slice of domain.Division to DTOs.
func ToListDivisionsResponse(ds []domain.Division) []DivisionResponse {
	list := make([]DivisionResponse, len(ds))
	for i, d := range ds {
		list[i] = ToDivisionResponse(&d)
	}
	return list
}

// --- Division membership DTOs ---

// AddDivisionMemberRequest defines data for adding a user to a division.
type AddDivisionMemberRequest struct {
	UserID string   `json:"userID" binding:"required"`
	Roles  []string `json:"roles" binding:"required,min=1"`
}

// DivisionMembershipResponse defines data returned about a division membership.
type DivisionMembershipResponse struct {
	DivisionMembershipID string                          `json:"divisionMembershipID"`
	UserID               string                          `json:"userID"`
	DivisionID           string                          `json:"divisionID"`
	WorkspaceID          string                          `json:"workspaceID"`
	Roles                []string                        `json:"roles"`
	Status               domain.DivisionMembershipStatus `json:"status"`
	AddedBy              *string                         `json:"addedBy,omitempty"`
	JoinedAt             time.Time                       `json:"joinedAt"`
}

// ToDivisionMembershipResponse converts domain.DivisionMembership to DTO.
func ToDivisionMembershipResponse(m *domain.DivisionMembership) DivisionMembershipResponse {
	return DivisionMembershipResponse{
		DivisionMembershipID: m.DivisionMembershipID,
		UserID:               m.UserID,
		DivisionID:           m.DivisionID,
		WorkspaceID:          m.WorkspaceID,
		Roles:                m.Roles,
		Status:               m.Status,
		AddedBy:              m.AddedBy,
		JoinedAt:             m.JoinedAt,
	}
}
