package domain

import "time"

// GlobalRole is the application-wide role tier of a user.
// Scope roles (workspace/division) are separate; this one travels in the
// access token and drives the super bypass.
type GlobalRole string

const (
	GlobalRoleUser  GlobalRole = "USER"
	GlobalRoleStaff GlobalRole = "STAFF"
	GlobalRoleSuper GlobalRole = "SUPER"
)

// globalRoleTier orders global roles for AtLeast comparisons.
var globalRoleTier = map[GlobalRole]int{
	GlobalRoleUser:  1,
	GlobalRoleStaff: 2,
	GlobalRoleSuper: 3,
}

// AtLeast reports whether the role meets or exceeds the given tier.
func (r GlobalRole) AtLeast(other GlobalRole) bool {
	return globalRoleTier[r] >= globalRoleTier[other]
}

// CanBypassScopes is the single capability check consulted by every scope
// guard. Only the super role skips membership resolution.
func (r GlobalRole) CanBypassScopes() bool {
	return r == GlobalRoleSuper
}

// IsValid reports whether the role is one of the known tiers.
func (r GlobalRole) IsValid() bool {
	_, ok := globalRoleTier[r]
	return ok
}

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an account identity.
type User struct {
	UserID         string       `json:"userID" db:"user_id"`
	Name           string       `json:"name" db:"name"`
	Username       string       `json:"username" db:"username"`
	Email          string       `json:"email" db:"email"`
	PasswordHash   string       `json:"-" db:"password_hash"`
	Role           GlobalRole   `json:"role" db:"role"`
	AuthProvider   AuthProvider `json:"authProvider" db:"auth_provider"`
	ProviderUserID *string      `json:"-" db:"provider_user_id"`
	EmailVerified  bool         `json:"emailVerified" db:"email_verified"`

	// Refresh token rotation state. Never serialized.
	RefreshTokenHash       string     `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}
