package dto

import (
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Transaction DTOs ---

// RecordMovementRequest defines data for recording a ledger movement.
type RecordMovementRequest struct {
	CategoryCode     string                  `json:"categoryCode" binding:"required"`
	Amount           decimal.Decimal         `json:"amount" binding:"required,dgt0"`
	PaymentMethod    domain.PaymentMethod    `json:"paymentMethod" binding:"required,oneof=cash credit bank_transfer upi"`
	CounterpartyType domain.CounterpartyType `json:"counterpartyType" binding:"required,oneof=staff vehicle store customer"`
	CounterpartyID   string                  `json:"counterpartyID" binding:"required"`
	Ref              string                  `json:"ref"`
	Details          map[string]any          `json:"details"`
}

// TransactionResponse defines data returned for a ledger entry. Account refs
// render as string ids, or nested account objects when populated.
type TransactionResponse struct {
	TransactionID    string                      `json:"transactionID"`
	WorkspaceID      string                      `json:"workspaceID"`
	DivisionID       string                      `json:"divisionID"`
	DebitAccount     domain.Ref[AccountResponse] `json:"debitAccount"`
	CreditAccount    domain.Ref[AccountResponse] `json:"creditAccount"`
	Amount           decimal.Decimal             `json:"amount"`
	CategoryCode     string                      `json:"categoryCode"`
	PaymentMethod    domain.PaymentMethod        `json:"paymentMethod"`
	CounterpartyType domain.CounterpartyType     `json:"counterpartyType"`
	CounterpartyID   string                      `json:"counterpartyID"`
	Ref              string                      `json:"ref,omitempty"`
	Details          map[string]any              `json:"details"`
	CreatedAt        time.Time                   `json:"createdAt"`
	CreatedBy        string                      `json:"createdBy"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		WorkspaceID:      t.WorkspaceID,
		DivisionID:       t.DivisionID,
		DebitAccount:     toAccountRef(t.DebitAccount),
		CreditAccount:    toAccountRef(t.CreditAccount),
		Amount:           t.Amount,
		CategoryCode:     t.CategoryCode,
		PaymentMethod:    t.PaymentMethod,
		CounterpartyType: t.CounterpartyType,
		CounterpartyID:   t.CounterpartyID,
		Ref:              t.Ref,
		Details:          t.Details,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
	}
}

// toAccountRef sanitizes an account reference, preserving the explicit
// populated flag.
func toAccountRef(r domain.Ref[domain.Account]) domain.Ref[AccountResponse] {
	if r.IsPopulated() {
		resp := ToAccountResponse(r.Populated)
		return domain.PopulatedRef(r.ID, &resp)
	}
	return domain.NewRef[AccountResponse](r.ID)
}

// ToListTransactionsResponse converts a slice of domain.Transaction to DTOs.
func ToListTransactionsResponse(ts []domain.Transaction) []TransactionResponse {
	list := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTransactionResponse(&t)
	}
	return list
}
