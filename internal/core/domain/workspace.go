package domain

import (
	"sort"
	"strings"
	"time"
)

// Workspace is the top-level tenant boundary. Divisions, stores, accounts and
// transactions all hang off a workspace.
type Workspace struct {
	WorkspaceID  string   `json:"workspaceID" db:"workspace_id"` // Primary Key (e.g., UUID)
	Name         string   `json:"name" db:"name"`
	Description  string   `json:"description" db:"description"`
	AllowedRoles []string `json:"allowedRoles" db:"allowed_roles"` // Workspace-role names members may hold
	IsActive     bool     `json:"isActive" db:"is_active"`
	AuditFields
}

// Workspace-level role names. AllowedRoles may extend this list per workspace.
const (
	WorkspaceRoleAdmin   = "admin"
	WorkspaceRoleManager = "manager"
	WorkspaceRoleUser    = "user"
)

// MembershipStatus is the lifecycle state of a workspace membership.
type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusInvited MembershipStatus = "invited"
)

// Membership represents a user's role assignment within a workspace.
// One row per (user, workspace); roles are a deduplicated name set.
type Membership struct {
	MembershipID string           `json:"membershipID" db:"membership_id"`
	UserID       string           `json:"userID" db:"user_id"`
	WorkspaceID  string           `json:"workspaceID" db:"workspace_id"`
	Roles        []string         `json:"roles" db:"roles"`
	Status       MembershipStatus `json:"status" db:"status"`
	InvitedBy    *string          `json:"invitedBy,omitempty" db:"invited_by"`
	JoinedAt     time.Time        `json:"joinedAt" db:"joined_at"`
}

// HasRole reports whether the membership carries the given role name.
func (m *Membership) HasRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the membership carries any of the given roles.
func (m *Membership) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the membership carries the workspace admin role.
func (m *Membership) IsAdmin() bool {
	return m.HasRole(WorkspaceRoleAdmin)
}

// NormalizeRoleNames trims, deduplicates and sorts a role-name set so the
// persisted form is stable regardless of input order.
func NormalizeRoleNames(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
