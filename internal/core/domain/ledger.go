package domain

import "github.com/shopspring/decimal"

// TxCategory maps a symbolic transaction category code (e.g. "fuel_payment")
// to a fixed debit/credit account pair plus a description template with
// {{field}} placeholders.
type TxCategory struct {
	TxCategoryID        string `json:"txCategoryID" db:"tx_category_id"`
	WorkspaceID         string `json:"workspaceID" db:"workspace_id"`
	DivisionID          string `json:"divisionID" db:"division_id"`
	Code                string `json:"code" db:"code"`
	Name                string `json:"name" db:"name"`
	DebitAccountCode    string `json:"debitAccountCode" db:"debit_account_code"`
	CreditAccountCode   string `json:"creditAccountCode" db:"credit_account_code"`
	DescriptionTemplate string `json:"descriptionTemplate" db:"description_template"`
	IsActive            bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// PaymentMethod is how a movement was settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCredit       PaymentMethod = "credit"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentUPI          PaymentMethod = "upi"
)

// CounterpartyType identifies which aggregate a movement was posted against.
type CounterpartyType string

const (
	CounterpartyStaff    CounterpartyType = "staff"
	CounterpartyVehicle  CounterpartyType = "vehicle"
	CounterpartyStore    CounterpartyType = "store"
	CounterpartyCustomer CounterpartyType = "customer"
)

// Transaction is an immutable ledger entry. It is created only through the
// ledger service and never mutated afterwards; there are no update or delete
// paths anywhere in the codebase.
type Transaction struct {
	TransactionID    string           `json:"transactionID" db:"transaction_id"`
	WorkspaceID      string           `json:"workspaceID" db:"workspace_id"`
	DivisionID       string           `json:"divisionID" db:"division_id"`
	DebitAccount     Ref[Account]     `json:"debitAccount" db:"-"`
	CreditAccount    Ref[Account]     `json:"creditAccount" db:"-"`
	Amount           decimal.Decimal  `json:"amount" db:"amount"`
	CategoryCode     string           `json:"categoryCode" db:"category_code"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod" db:"payment_method"`
	CounterpartyType CounterpartyType `json:"counterpartyType" db:"counterparty_type"`
	CounterpartyID   string           `json:"counterpartyID" db:"counterparty_id"`
	Ref              string           `json:"ref" db:"ref"`         // Optional free-text reference
	Details          map[string]any   `json:"details" db:"details"` // Rendered description plus caller metadata
	AuditFields                       // CreatedBy is the acting user
}

// BelongsTo reports whether the transaction lives in the given scope.
func (t *Transaction) BelongsTo(workspaceID, divisionID string) bool {
	return t.WorkspaceID == workspaceID && t.DivisionID == divisionID
}
