package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T) *FinancialTransaction {
	t.Helper()
	tx, err := NewFinancialTransaction(
		"FIN-20260825-000001",
		TransactionTypeCustomerPayment,
		decimal.NewFromFloat(100.00),
		TransactionStatusCompleted,
		"test payment",
		uuid.New(),
	)
	require.NoError(t, err)
	return tx
}

func TestNewFinancialTransaction(t *testing.T) {
	tx := newTestTransaction(t)
	assert.Equal(t, valueobject.DefaultCurrency, tx.Currency)
	assert.Equal(t, "100.00", tx.NetAmount.StringFixed(2))
	assert.True(t, tx.FeeAmount.IsZero())
	assert.True(t, tx.TaxAmount.IsZero())
	assert.False(t, tx.Reconciled)
}

func TestNewFinancialTransaction_Validation(t *testing.T) {
	actor := uuid.New()
	amount := decimal.NewFromInt(10)

	_, err := NewFinancialTransaction("", TransactionTypeSaleRevenue, amount, TransactionStatusCompleted, "", actor)
	assert.Error(t, err)

	_, err = NewFinancialTransaction("FIN-1", TransactionType("BARTER"), amount, TransactionStatusCompleted, "", actor)
	assert.Error(t, err)

	_, err = NewFinancialTransaction("FIN-1", TransactionTypeSaleRevenue, amount, TransactionStatus("MAYBE"), "", actor)
	assert.Error(t, err)
}

func TestFinancialTransaction_WithFee(t *testing.T) {
	tx := newTestTransaction(t)
	tx.WithFee(decimal.NewFromFloat(3.20))

	assert.Equal(t, "3.20", tx.FeeAmount.StringFixed(2))
	assert.Equal(t, "96.80", tx.NetAmount.StringFixed(2))
	assert.Equal(t, "100.00", tx.Amount.StringFixed(2))
}

func TestFinancialTransaction_Reconcile(t *testing.T) {
	tx := newTestTransaction(t)
	reconciler := uuid.New()

	ok := tx.Reconcile(reconciler, "matched bank statement")
	require.True(t, ok)
	assert.True(t, tx.Reconciled)
	require.NotNil(t, tx.ReconciledAt)
	require.NotNil(t, tx.ReconciledBy)
	assert.Equal(t, reconciler, *tx.ReconciledBy)
	assert.Equal(t, "matched bank statement", tx.ReconciliationNotes)
}

func TestFinancialTransaction_Reconcile_Idempotent(t *testing.T) {
	tx := newTestTransaction(t)
	first := uuid.New()
	require.True(t, tx.Reconcile(first, "first"))
	firstAt := tx.ReconciledAt

	// A second reconciliation is refused and leaves the original untouched
	second := uuid.New()
	assert.False(t, tx.Reconcile(second, "second"))
	assert.Equal(t, first, *tx.ReconciledBy)
	assert.Equal(t, "first", tx.ReconciliationNotes)
	assert.Equal(t, firstAt, tx.ReconciledAt)
}
