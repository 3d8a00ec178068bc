package domain

import "github.com/shopspring/decimal"

// Store is an operational unit nested under a division. It owns inventory
// and a running cash balance that only ledger postings move.
type Store struct {
	StoreID     string          `json:"storeID" db:"store_id"`
	DivisionID  string          `json:"divisionID" db:"division_id"`
	WorkspaceID string          `json:"workspaceID" db:"workspace_id"`
	Name        string          `json:"name" db:"name"`
	Location    string          `json:"location" db:"location"`
	Balance     decimal.Decimal `json:"balance" db:"balance"`
	IsActive    bool            `json:"isActive" db:"is_active"`
	AuditFields
}

// BelongsTo reports whether the store is owned by the given division.
func (s *Store) BelongsTo(divisionID string) bool {
	return s.DivisionID == divisionID
}
