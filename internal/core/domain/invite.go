package domain

import "time"

// InviteStatus is the lifecycle state of a pending-membership invite.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusSent     InviteStatus = "sent"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite is a token-bearing pending-membership record. Accepting it creates
// an active workspace membership with the invite's role set.
type Invite struct {
	InviteID    string       `json:"inviteID" db:"invite_id"`
	WorkspaceID string       `json:"workspaceID" db:"workspace_id"`
	Email       string       `json:"email" db:"email"`
	Token       string       `json:"-" db:"token"` // Opaque secret, delivered out of band
	Roles       []string     `json:"roles" db:"roles"`
	Status      InviteStatus `json:"status" db:"status"`
	InvitedBy   string       `json:"invitedBy" db:"invited_by"`
	ExpiresAt   time.Time    `json:"expiresAt" db:"expires_at"`
	AuditFields
}

// IsExpired reports whether the invite can no longer be accepted.
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsOpen reports whether the invite is still awaiting a response.
func (i *Invite) IsOpen() bool {
	return i.Status == InviteStatusPending || i.Status == InviteStatusSent
}
