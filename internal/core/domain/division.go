package domain

import "time"

// Division is a sub-tenant under a workspace. It owns stores and inventory.
type Division struct {
	DivisionID  string `json:"divisionID" db:"division_id"`
	WorkspaceID string `json:"workspaceID" db:"workspace_id"` // Owning workspace, checked against the path on every scoped operation
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// BelongsTo reports whether the division is owned by the given workspace.
// The tenant-isolation guard in the division scope middleware rides on this.
func (d *Division) BelongsTo(workspaceID string) bool {
	return d.WorkspaceID == workspaceID
}

// Division-level role names.
const (
	DivisionRoleAdmin = "admin"
	DivisionRoleUser  = "user"
)

// DivisionMembershipStatus is the lifecycle state of a division membership.
type DivisionMembershipStatus string

const (
	DivisionMembershipStatusActive  DivisionMembershipStatus = "active"
	DivisionMembershipStatusRemoved DivisionMembershipStatus = "removed"
)

// DivisionMembership represents a user's role assignment within a division.
// Removed members keep their row with status "removed"; resolution treats
// them as absent.
type DivisionMembership struct {
	DivisionMembershipID string                   `json:"divisionMembershipID" db:"division_membership_id"`
	UserID               string                   `json:"userID" db:"user_id"`
	DivisionID           string                   `json:"divisionID" db:"division_id"`
	WorkspaceID          string                   `json:"workspaceID" db:"workspace_id"`
	Roles                []string                 `json:"roles" db:"roles"`
	Status               DivisionMembershipStatus `json:"status" db:"status"`
	AddedBy              *string                  `json:"addedBy,omitempty" db:"added_by"`
	RemovedBy            *string                  `json:"removedBy,omitempty" db:"removed_by"`
	JoinedAt             time.Time                `json:"joinedAt" db:"joined_at"`
}

// HasRole reports whether the membership carries the given role name.
func (m *DivisionMembership) HasRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the membership carries any of the given roles.
func (m *DivisionMembership) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the membership carries the division admin role.
func (m *DivisionMembership) IsAdmin() bool {
	return m.HasRole(DivisionRoleAdmin)
}
