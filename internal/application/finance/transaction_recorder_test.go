package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/finance"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repository
// =============================================================================

// MockFinancialTransactionRepository is a mock implementation of
// finance.FinancialTransactionRepository
type MockFinancialTransactionRepository struct {
	mock.Mock
}

func (m *MockFinancialTransactionRepository) Create(ctx context.Context, tx *finance.FinancialTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFinancialTransactionRepository) Update(ctx context.Context, tx *finance.FinancialTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFinancialTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialTransactionRepository) FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	args := m.Called(ctx, start, end, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialTransactionRepository) FindByType(ctx context.Context, txType finance.TransactionType, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	args := m.Called(ctx, txType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialTransactionRepository) FindByTypeAndStatus(ctx context.Context, txType finance.TransactionType, status finance.TransactionStatus) ([]finance.FinancialTransaction, error) {
	args := m.Called(ctx, txType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialTransactionRepository) FindUnreconciled(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialTransaction), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newRecorderWithCapture(repo *MockFinancialTransactionRepository, created *[]*finance.FinancialTransaction) *FinancialTransactionRecorder {
	repo.On("Create", mock.Anything, mock.AnythingOfType("*finance.FinancialTransaction")).
		Run(func(args mock.Arguments) {
			*created = append(*created, args.Get(1).(*finance.FinancialTransaction))
		}).
		Return(nil)
	return NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())
}

func newSaleMovement(t *testing.T) *inventory.InventoryMovement {
	t.Helper()
	movement, err := inventory.NewInventoryMovement(
		"MOV-20260825-000001", inventory.MovementTypeSale, uuid.New(), "SKU-1", "Widget",
		decimal.NewFromInt(-4), decimal.NewFromInt(25), uuid.New(),
	)
	require.NoError(t, err)
	movement.WithOrderID(uuid.New())
	return movement
}

// =============================================================================
// Test Cases
// =============================================================================

func TestFinancialTransactionRecorder_RecordSale(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	movement := newSaleMovement(t)
	entry := &accounting.JournalEntry{BaseEntity: shared.NewBaseEntity()}

	txs, err := recorder.RecordSale(ctx, movement, entry, uuid.New())

	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Len(t, created, 2)

	revenue, receivable := created[0], created[1]
	assert.Equal(t, finance.TransactionTypeSaleRevenue, revenue.Type)
	assert.Equal(t, finance.TransactionStatusCompleted, revenue.Status)
	assert.Equal(t, "100.00", revenue.Amount.StringFixed(2))

	assert.Equal(t, finance.TransactionTypeAccountsReceivable, receivable.Type)
	assert.Equal(t, finance.TransactionStatusPending, receivable.Status)
	assert.Equal(t, "100.00", receivable.Amount.StringFixed(2))

	for _, tx := range created {
		require.NotNil(t, tx.MovementID)
		assert.Equal(t, movement.ID, *tx.MovementID)
		require.NotNil(t, tx.OrderID)
		assert.Equal(t, *movement.OrderID, *tx.OrderID)
		require.NotNil(t, tx.JournalEntryID)
		assert.Equal(t, entry.ID, *tx.JournalEntryID)
		assert.Equal(t, movement.MovementDate, tx.TransactionDate)
	}
}

func TestFinancialTransactionRecorder_RecordPurchase(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	movement, err := inventory.NewInventoryMovement(
		"MOV-20260825-000002", inventory.MovementTypePurchase, uuid.New(), "SKU-2", "Gadget",
		decimal.NewFromInt(8), decimal.NewFromFloat(12.50), uuid.New(),
	)
	require.NoError(t, err)

	txs, err := recorder.RecordPurchase(ctx, movement, nil, uuid.New())

	require.NoError(t, err)
	require.Len(t, txs, 2)

	expense, payable := created[0], created[1]
	assert.Equal(t, finance.TransactionTypePurchaseExpense, expense.Type)
	assert.Equal(t, "-100.00", expense.Amount.StringFixed(2))
	assert.Equal(t, finance.TransactionStatusCompleted, expense.Status)

	assert.Equal(t, finance.TransactionTypeAccountsPayable, payable.Type)
	assert.Equal(t, "100.00", payable.Amount.StringFixed(2))
	assert.Equal(t, finance.TransactionStatusPending, payable.Status)

	// No journal entry was passed, so no link is set
	assert.Nil(t, expense.JournalEntryID)
}

func TestFinancialTransactionRecorder_RecordCustomerPayment_WithFee(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	paymentID := uuid.New()
	orderID := uuid.New()
	payment, err := recorder.RecordCustomerPayment(ctx, CustomerPaymentRequest{
		PaymentID:    paymentID,
		OrderID:      &orderID,
		Amount:       decimal.NewFromInt(100),
		Provider:     finance.PaymentProviderStripe,
		Counterparty: "Jamie Doe",
	}, uuid.New())

	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, finance.TransactionTypeCustomerPayment, payment.Type)
	assert.Equal(t, "100.00", payment.Amount.StringFixed(2))
	assert.Equal(t, "3.20", payment.FeeAmount.StringFixed(2))
	assert.Equal(t, "96.80", payment.NetAmount.StringFixed(2))
	assert.Equal(t, "Jamie Doe", payment.Counterparty)
	require.NotNil(t, payment.PaymentID)
	assert.Equal(t, paymentID, *payment.PaymentID)

	feeTx := created[1]
	assert.Equal(t, finance.TransactionTypePaymentFee, feeTx.Type)
	assert.Equal(t, "-3.20", feeTx.Amount.StringFixed(2))
	require.NotNil(t, feeTx.OrderID)
	assert.Equal(t, orderID, *feeTx.OrderID)
}

func TestFinancialTransactionRecorder_RecordCustomerPayment_NoFeeNoFeeTx(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	payment, err := recorder.RecordCustomerPayment(ctx, CustomerPaymentRequest{
		PaymentID: uuid.New(),
		Amount:    decimal.NewFromInt(100),
		Provider:  finance.PaymentProviderBankTransfer,
	}, uuid.New())

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "100.00", payment.NetAmount.StringFixed(2))
	assert.True(t, payment.FeeAmount.IsZero())
}

func TestFinancialTransactionRecorder_RecordCustomerPayment_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	recorder := NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())

	_, err := recorder.RecordCustomerPayment(ctx, CustomerPaymentRequest{
		PaymentID: uuid.New(),
		Amount:    decimal.Zero,
		Provider:  finance.PaymentProviderStripe,
	}, uuid.New())

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFinancialTransactionRecorder_RecordSupplierPayment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	tx, err := recorder.RecordSupplierPayment(ctx, uuid.New(), decimal.NewFromInt(250), "Acme Supplies", uuid.New())

	require.NoError(t, err)
	assert.Equal(t, finance.TransactionTypeSupplierPayment, tx.Type)
	assert.Equal(t, "-250.00", tx.Amount.StringFixed(2))
	assert.Equal(t, "Acme Supplies", tx.Counterparty)
}

func TestFinancialTransactionRecorder_RecordCustomerRefund(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	orderID := uuid.New()
	tx, err := recorder.RecordCustomerRefund(ctx, orderID, decimal.NewFromInt(40), "damaged in transit", uuid.New())

	require.NoError(t, err)
	assert.Equal(t, finance.TransactionTypeCustomerRefund, tx.Type)
	assert.Equal(t, "-40.00", tx.Amount.StringFixed(2))
	assert.Equal(t, "damaged in transit", tx.Description)
	require.NotNil(t, tx.OrderID)
	assert.Equal(t, orderID, *tx.OrderID)
}

func TestFinancialTransactionRecorder_RecordOperatingExpense_Classified(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	var created []*finance.FinancialTransaction
	recorder := newRecorderWithCapture(repo, &created)

	tx, err := recorder.RecordOperatingExpense(ctx, "shipping", decimal.NewFromInt(15), "courier invoice", uuid.New())

	require.NoError(t, err)
	assert.Equal(t, finance.TransactionTypeShippingCost, tx.Type)
	assert.Equal(t, "-15.00", tx.Amount.StringFixed(2))

	tx, err = recorder.RecordOperatingExpense(ctx, "office rent", decimal.NewFromInt(800), "august rent", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, finance.TransactionTypeOperatingExpense, tx.Type)
}

func TestFinancialTransactionRecorder_Reconcile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	recorder := NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())

	existing, err := finance.NewFinancialTransaction(
		"FIN-20260825-000001", finance.TransactionTypeCustomerPayment,
		decimal.NewFromInt(100), finance.TransactionStatusCompleted, "payment", uuid.New(),
	)
	require.NoError(t, err)

	reconciler := uuid.New()
	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	tx, err := recorder.Reconcile(ctx, existing.ID, reconciler, "bank statement row 7")

	require.NoError(t, err)
	assert.True(t, tx.Reconciled)
	assert.Equal(t, reconciler, *tx.ReconciledBy)
	repo.AssertExpectations(t)
}

func TestFinancialTransactionRecorder_Reconcile_AlreadyReconciled(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	recorder := NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())

	existing, err := finance.NewFinancialTransaction(
		"FIN-20260825-000001", finance.TransactionTypeCustomerPayment,
		decimal.NewFromInt(100), finance.TransactionStatusCompleted, "payment", uuid.New(),
	)
	require.NoError(t, err)
	original := uuid.New()
	existing.Reconcile(original, "first pass")

	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)

	tx, err := recorder.Reconcile(ctx, existing.ID, uuid.New(), "second pass")

	require.NoError(t, err)
	assert.Equal(t, original, *tx.ReconciledBy)
	assert.Equal(t, "first pass", tx.ReconciliationNotes)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFinancialTransactionRecorder_Reconcile_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	recorder := NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())

	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := recorder.Reconcile(ctx, id, uuid.New(), "")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFinancialTransactionRecorder_RecordSale_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinancialTransactionRepository)
	recorder := NewFinancialTransactionRecorder(repo, sequence.NewInMemoryGenerator(), zap.NewNop())

	movement := newSaleMovement(t)

	// First insert succeeds, second fails; the first is still reported
	repo.On("Create", mock.Anything, mock.AnythingOfType("*finance.FinancialTransaction")).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*finance.FinancialTransaction")).Return(errors.New("connection reset")).Once()

	txs, err := recorder.RecordSale(ctx, movement, nil, uuid.New())

	require.Error(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, finance.TransactionTypeSaleRevenue, txs[0].Type)
}
