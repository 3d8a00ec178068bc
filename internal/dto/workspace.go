package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	AllowedRoles []string `json:"allowedRoles"`
}

// UpdateWorkspaceRequest defines updatable workspace fields.
type UpdateWorkspaceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	AllowedRoles []string `json:"allowedRoles,omitempty"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID   string    `json:"workspaceID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	AllowedRoles  []string  `json:"allowedRoles"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:   w.WorkspaceID,
		Name:          w.Name,
		Description:   w.Description,
		AllowedRoles:  w.AllowedRoles,
		IsActive:      w.IsActive,
		CreatedAt:     w.CreatedAt,
		CreatedBy:     w.CreatedBy,
		LastUpdatedAt: w.LastUpdatedAt,
		LastUpdatedBy: w.LastUpdatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to a workspace.
type AddMemberRequest struct {
	UserID string   `json:"userID" binding:"required"`
	Roles  []string `json:"roles" binding:"required,min=1"`
}

// UpdateMemberRolesRequest replaces a member's role set.
type UpdateMemberRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

// MembershipResponse defines data returned about a user's membership.
type MembershipResponse struct {
	MembershipID string                  `json:"membershipID"`
	UserID       string                  `json:"userID"`
	WorkspaceID  string                  `json:"workspaceID"`
	Roles        []string                `json:"roles"`
	Status       domain.MembershipStatus `json:"status"`
	InvitedBy    *string                 `json:"invitedBy,omitempty"`
	JoinedAt     time.Time               `json:"joinedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		MembershipID: m.MembershipID,
		UserID:       m.UserID,
		WorkspaceID:  m.WorkspaceID,
		Roles:        m.Roles,
		Status:       m.Status,
		InvitedBy:    m.InvitedBy,
		JoinedAt:     m.JoinedAt,
	}
}

// ToListMembershipsResponse converts a slice of domain.Membership to DTOs.
func ToListMembershipsResponse(ms []domain.Membership) []MembershipResponse {
	list := make([]MembershipResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMembershipResponse(&m)
	}
	return list
}

// --- Invite DTOs ---

// CreateInviteRequest defines data for issuing a workspace invite.
type CreateInviteRequest struct {
	Email string   `json:"email" binding:"required,email"`
	Roles []string `json:"roles" binding:"required,min=1"`
}

// InviteResponse defines data returned for an invite. The token itself is
// only returned to the issuer at creation time.
type InviteResponse struct {
	InviteID    string              `json:"inviteID"`
	WorkspaceID string              `json:"workspaceID"`
	Email       string              `json:"email"`
	Roles       []string            `json:"roles"`
	Status      domain.InviteStatus `json:"status"`
	InvitedBy   string              `json:"invitedBy"`
	ExpiresAt   time.Time           `json:"expiresAt"`
	Token       string              `json:"token,omitempty"`
}

// ToInviteResponse converts domain.Invite to DTO. includeToken controls
// whether the secret is exposed (creation response only).
func ToInviteResponse(i *domain.Invite, includeToken bool) InviteResponse {
	resp := InviteResponse{
		InviteID:    i.InviteID,
		WorkspaceID: i.WorkspaceID,
		Email:       i.Email,
		Roles:       i.Roles,
		Status:      i.Status,
		InvitedBy:   i.InvitedBy,
		ExpiresAt:   i.ExpiresAt,
	}
	if includeToken {
		resp.Token = i.Token
	}
	return resp
}
