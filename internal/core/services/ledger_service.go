package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryWithTx
	categoryRepo    portsrepo.TxCategoryReader
	accountRepo     portsrepo.AccountReader
	storeRepo       portsrepo.StoreRepositoryFacade
}

// NewLedgerService creates the ledger engine. Every money or stock movement
// in the system funnels through RecordMovement.
func NewLedgerService(
	transactionRepo portsrepo.TransactionRepositoryWithTx,
	categoryRepo portsrepo.TxCategoryReader,
	accountRepo portsrepo.AccountReader,
	storeRepo portsrepo.StoreRepositoryFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
		storeRepo:       storeRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordMovement resolves a symbolic category into its debit/credit account
// pair, renders the category's description template against the request
// payload and persists one immutable transaction row. Resolution runs
// entirely before the database transaction opens: a bad category or account
// code aborts with zero writes.
func (s *ledgerService) RecordMovement(ctx context.Context, workspaceID, divisionID, actorUserID string, req dto.RecordMovementRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be positive")
	}

	category, err := s.categoryRepo.FindCategoryByCode(ctx, workspaceID, divisionID, req.CategoryCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("invalid transaction category: "+req.CategoryCode, err)
		}
		return nil, err
	}

	debitAccount, err := s.accountRepo.FindAccountByCode(ctx, workspaceID, divisionID, category.DebitAccountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("debit or credit account not found", err)
		}
		return nil, err
	}
	creditAccount, err := s.accountRepo.FindAccountByCode(ctx, workspaceID, divisionID, category.CreditAccountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("debit or credit account not found", err)
		}
		return nil, err
	}

	description := s.renderDescription(category, req)

	details := make(map[string]any, len(req.Details)+1)
	for k, v := range req.Details {
		details[k] = v
	}
	details["description"] = description

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		WorkspaceID:      workspaceID,
		DivisionID:       divisionID,
		DebitAccount:     domain.NewRef[domain.Account](debitAccount.AccountID),
		CreditAccount:    domain.NewRef[domain.Account](creditAccount.AccountID),
		Amount:           req.Amount,
		CategoryCode:     category.Code,
		PaymentMethod:    req.PaymentMethod,
		CounterpartyType: req.CounterpartyType,
		CounterpartyID:   req.CounterpartyID,
		Ref:              req.Ref,
		Details:          details,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	err = s.transactionRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.transactionRepo.SaveTransaction(ctx, tx, txn); err != nil {
			return err
		}
		// A movement posted against a store moves that store's running
		// balance in the same transaction. The sign follows the store's
		// side of the posting: debiting cash into the store raises it.
		if req.CounterpartyType == domain.CounterpartyStore {
			delta := req.Amount
			if debitAccount.AccountType != domain.Asset {
				delta = delta.Neg()
			}
			if err := s.storeRepo.ApplyBalanceDelta(ctx, tx, req.CounterpartyID, delta, actorUserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Movement recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("category_code", txn.CategoryCode),
		slog.String("amount", txn.Amount.String()),
	)
	return &txn, nil
}

// renderDescription fills the category's template from the request payload.
// Unknown template keys render empty; leftover whitespace is collapsed.
func (s *ledgerService) renderDescription(category *domain.TxCategory, req dto.RecordMovementRequest) string {
	fields := utils.TemplateFields(req.Details)
	fields["amount"] = req.Amount.String()
	fields["paymentMethod"] = string(req.PaymentMethod)
	fields["counterpartyType"] = string(req.CounterpartyType)
	fields["counterpartyID"] = req.CounterpartyID
	if req.Ref != "" {
		fields["ref"] = req.Ref
	}
	return utils.CollapseSpaces(utils.RenderTemplate(category.DescriptionTemplate, fields))
}

// GetTransaction retrieves a transaction and enforces the tenant boundary. A
// transaction reached through a foreign scope path is reported as absent.
func (s *ledgerService) GetTransaction(ctx context.Context, workspaceID, divisionID, transactionID string, populate bool) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, populate)
	if err != nil {
		return nil, err
	}
	if !txn.BelongsTo(workspaceID, divisionID) {
		return nil, apperrors.NewNotFoundError("transaction not found", nil)
	}
	return txn, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, workspaceID, divisionID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.transactionRepo.ListTransactions(ctx, workspaceID, divisionID, limit, offset)
}
