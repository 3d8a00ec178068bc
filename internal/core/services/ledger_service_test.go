package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryWithTx interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, populate bool) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, populate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, workspaceID, divisionID string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, workspaceID, divisionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// RunInTx invokes fn directly; the nil pgx.Tx is fine because the mocks below
// never touch it.
func (m *MockTransactionRepository) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

// MockTxCategoryRepository is a mock type for the TxCategoryReader interface
type MockTxCategoryRepository struct {
	mock.Mock
}

func (m *MockTxCategoryRepository) FindCategoryByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.TxCategory, error) {
	args := m.Called(ctx, workspaceID, divisionID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TxCategory), args.Error(1)
}

func (m *MockTxCategoryRepository) ListCategories(ctx context.Context, workspaceID, divisionID string) ([]domain.TxCategory, error) {
	args := m.Called(ctx, workspaceID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TxCategory), args.Error(1)
}

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, divisionID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, workspaceID, divisionID string) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockStoreRepository is a mock type for the StoreRepositoryFacade interface
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepository) ListStoresByDivision(ctx context.Context, divisionID string) ([]domain.Store, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *MockStoreRepository) SaveStore(ctx context.Context, store domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) UpdateStore(ctx context.Context, store domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, storeID string, delta decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, tx, storeID, delta, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockTxCategoryRepository
	mockAccountRepo  *MockAccountReader
	mockStoreRepo    *MockStoreRepository
	service          portssvc.LedgerSvcFacade

	workspaceID string
	divisionID  string
	actorID     string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockTxCategoryRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockStoreRepo = new(MockStoreRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockCategoryRepo, suite.mockAccountRepo, suite.mockStoreRepo)

	suite.workspaceID = uuid.NewString()
	suite.divisionID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) fuelCategory() *domain.TxCategory {
	return &domain.TxCategory{
		TxCategoryID:        uuid.NewString(),
		WorkspaceID:         suite.workspaceID,
		DivisionID:          suite.divisionID,
		Code:                "fuel_payment",
		Name:                "Fuel payment",
		DebitAccountCode:    "VEHICLE_EXPENSE",
		CreditAccountCode:   "CASH",
		DescriptionTemplate: "Fuel for {{vehicleNo}} costing {{amount}} paid via {{paymentMethod}}",
		IsActive:            true,
	}
}

func (suite *LedgerServiceTestSuite) account(code string, accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		WorkspaceID: suite.workspaceID,
		DivisionID:  suite.divisionID,
		Code:        code,
		Name:        code,
		AccountType: accountType,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestRecordMovement_Success() {
	ctx := context.Background()
	category := suite.fuelCategory()
	debit := suite.account("VEHICLE_EXPENSE", domain.Expense)
	credit := suite.account("CASH", domain.Asset)

	suite.mockCategoryRepo.On("FindCategoryByCode", ctx, suite.workspaceID, suite.divisionID, "fuel_payment").Return(category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "VEHICLE_EXPENSE").Return(debit, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "CASH").Return(credit, nil).Once()
	suite.mockTxnRepo.On("RunInTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.DebitAccount.ID == debit.AccountID &&
			txn.CreditAccount.ID == credit.AccountID &&
			txn.CategoryCode == "fuel_payment" &&
			txn.Details["description"] == "Fuel for KA-01-1234 costing 250 paid via cash"
	})).Return(nil).Once()

	req := dto.RecordMovementRequest{
		CategoryCode:     "fuel_payment",
		Amount:           decimal.NewFromInt(250),
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyVehicle,
		CounterpartyID:   uuid.NewString(),
		Details:          map[string]any{"vehicleNo": "KA-01-1234"},
	}

	txn, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.actorID, txn.CreatedBy)
	suite.Equal("Fuel for KA-01-1234 costing 250 paid via cash", txn.Details["description"])
	suite.WithinDuration(time.Now(), txn.CreatedAt, time.Second)

	// The caller's details map must not be mutated
	suite.NotContains(req.Details, "description")

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockStoreRepo.AssertNotCalled(suite.T(), "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordMovement_StoreCounterparty_AssetDebitRaisesBalance() {
	ctx := context.Background()
	storeID := uuid.NewString()
	category := &domain.TxCategory{
		Code:              "cylinder_sale",
		DebitAccountCode:  "CASH",
		CreditAccountCode: "SALES_INCOME",
	}
	debit := suite.account("CASH", domain.Asset)
	credit := suite.account("SALES_INCOME", domain.Income)
	amount := decimal.NewFromInt(1200)

	suite.mockCategoryRepo.On("FindCategoryByCode", ctx, suite.workspaceID, suite.divisionID, "cylinder_sale").Return(category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "CASH").Return(debit, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "SALES_INCOME").Return(credit, nil).Once()
	suite.mockTxnRepo.On("RunInTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockStoreRepo.On("ApplyBalanceDelta", ctx, mock.Anything, storeID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	}), suite.actorID).Return(nil).Once()

	req := dto.RecordMovementRequest{
		CategoryCode:     "cylinder_sale",
		Amount:           amount,
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyStore,
		CounterpartyID:   storeID,
	}

	_, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.mockStoreRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordMovement_StoreCounterparty_ExpenseDebitLowersBalance() {
	ctx := context.Background()
	storeID := uuid.NewString()
	category := &domain.TxCategory{
		Code:              "store_expense",
		DebitAccountCode:  "STORE_EXPENSE",
		CreditAccountCode: "CASH",
	}
	debit := suite.account("STORE_EXPENSE", domain.Expense)
	credit := suite.account("CASH", domain.Asset)
	amount := decimal.NewFromInt(300)

	suite.mockCategoryRepo.On("FindCategoryByCode", ctx, suite.workspaceID, suite.divisionID, "store_expense").Return(category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "STORE_EXPENSE").Return(debit, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "CASH").Return(credit, nil).Once()
	suite.mockTxnRepo.On("RunInTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockStoreRepo.On("ApplyBalanceDelta", ctx, mock.Anything, storeID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount.Neg())
	}), suite.actorID).Return(nil).Once()

	req := dto.RecordMovementRequest{
		CategoryCode:     "store_expense",
		Amount:           amount,
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyStore,
		CounterpartyID:   storeID,
	}

	_, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.mockStoreRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordMovement_UnknownCategory_NoWrites() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByCode", ctx, suite.workspaceID, suite.divisionID, "bogus").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.RecordMovementRequest{
		CategoryCode:     "bogus",
		Amount:           decimal.NewFromInt(100),
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyStaff,
		CounterpartyID:   uuid.NewString(),
	}

	txn, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "RunInTx", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordMovement_MissingAccount_NoWrites() {
	ctx := context.Background()
	category := suite.fuelCategory()
	suite.mockCategoryRepo.On("FindCategoryByCode", ctx, suite.workspaceID, suite.divisionID, "fuel_payment").Return(category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.workspaceID, suite.divisionID, "VEHICLE_EXPENSE").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.RecordMovementRequest{
		CategoryCode:     "fuel_payment",
		Amount:           decimal.NewFromInt(100),
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyVehicle,
		CounterpartyID:   uuid.NewString(),
	}

	_, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "RunInTx", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordMovement_NonPositiveAmount() {
	ctx := context.Background()

	req := dto.RecordMovementRequest{
		CategoryCode:     "fuel_payment",
		Amount:           decimal.Zero,
		PaymentMethod:    domain.PaymentCash,
		CounterpartyType: domain.CounterpartyVehicle,
		CounterpartyID:   uuid.NewString(),
	}

	_, err := suite.service.RecordMovement(ctx, suite.workspaceID, suite.divisionID, suite.actorID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.workspaceID, suite.divisionID, 20, 0).Return([]domain.Transaction{}, nil).Twice()

	_, err := suite.service.ListTransactions(ctx, suite.workspaceID, suite.divisionID, 0, 0)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactions(ctx, suite.workspaceID, suite.divisionID, 500, -3)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_InScope() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		WorkspaceID:   suite.workspaceID,
		DivisionID:    suite.divisionID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID, false).Return(txn, nil).Once()

	found, err := suite.service.GetTransaction(ctx, suite.workspaceID, suite.divisionID, txn.TransactionID, false)

	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, found.TransactionID)
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_OtherScopeHidden() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		WorkspaceID:   uuid.NewString(),
		DivisionID:    uuid.NewString(),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID, false).Return(txn, nil).Once()

	_, err := suite.service.GetTransaction(ctx, suite.workspaceID, suite.divisionID, txn.TransactionID, false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
