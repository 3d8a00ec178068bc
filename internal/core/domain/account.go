package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a chart-of-accounts entry scoped to a (workspace, division)
// pair. The ledger engine only ever reads accounts; postings reference them
// by resolved ID.
type Account struct {
	AccountID   string      `json:"accountID" db:"account_id"`
	WorkspaceID string      `json:"workspaceID" db:"workspace_id"`
	DivisionID  string      `json:"divisionID" db:"division_id"`
	Code        string      `json:"code" db:"code"` // Unique within the scope, e.g. "CASH", "VEHICLE_EXPENSE"
	Name        string      `json:"name" db:"name"`
	AccountType AccountType `json:"accountType" db:"account_type"`
	Description string      `json:"description" db:"description"`
	IsActive    bool        `json:"isActive" db:"is_active"`
	AuditFields
}

// BelongsTo reports whether the account lives in the given scope.
func (a *Account) BelongsTo(workspaceID, divisionID string) bool {
	return a.WorkspaceID == workspaceID && a.DivisionID == divisionID
}
