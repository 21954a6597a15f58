package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appfinance "github.com/stockledger/backend/internal/application/finance"
	"github.com/stockledger/backend/internal/domain/finance"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/sequence"
	"github.com/stockledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementation for the financial transaction repository

type mockFinancialTransactionRepository struct {
	txs       map[uuid.UUID]*finance.FinancialTransaction
	returnErr error
}

func newMockFinancialTransactionRepository() *mockFinancialTransactionRepository {
	return &mockFinancialTransactionRepository{
		txs: make(map[uuid.UUID]*finance.FinancialTransaction),
	}
}

func (m *mockFinancialTransactionRepository) Create(ctx context.Context, tx *finance.FinancialTransaction) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *mockFinancialTransactionRepository) Update(ctx context.Context, tx *finance.FinancialTransaction) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *mockFinancialTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if tx, ok := m.txs[id]; ok {
		return tx, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockFinancialTransactionRepository) FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []finance.FinancialTransaction
	for _, tx := range m.txs {
		if !tx.TransactionDate.Before(start) && tx.TransactionDate.Before(end) {
			result = append(result, *tx)
		}
	}
	return result, nil
}

func (m *mockFinancialTransactionRepository) FindByType(ctx context.Context, txType finance.TransactionType, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []finance.FinancialTransaction
	for _, tx := range m.txs {
		if tx.Type == txType {
			result = append(result, *tx)
		}
	}
	return result, nil
}

func (m *mockFinancialTransactionRepository) FindByTypeAndStatus(ctx context.Context, txType finance.TransactionType, status finance.TransactionStatus) ([]finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []finance.FinancialTransaction
	for _, tx := range m.txs {
		if tx.Type == txType && tx.Status == status {
			result = append(result, *tx)
		}
	}
	return result, nil
}

func (m *mockFinancialTransactionRepository) FindUnreconciled(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []finance.FinancialTransaction
	for _, tx := range m.txs {
		if !tx.Reconciled {
			result = append(result, *tx)
		}
	}
	return result, nil
}

func (m *mockFinancialTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []finance.FinancialTransaction
	for _, tx := range m.txs {
		result = append(result, *tx)
	}
	return result, nil
}

// Test helper functions

func setupFinanceTestHandler() (*FinanceHandler, *mockFinancialTransactionRepository) {
	gin.SetMode(gin.TestMode)

	txRepo := newMockFinancialTransactionRepository()
	recorder := appfinance.NewFinancialTransactionRecorder(txRepo, sequence.NewInMemoryGenerator(), zap.NewNop())
	handler := NewFinanceHandler(recorder)

	return handler, txRepo
}

func createTestTransaction(t *testing.T) *finance.FinancialTransaction {
	t.Helper()
	tx, err := finance.NewFinancialTransaction(
		"FIN-20260825-000001",
		finance.TransactionTypeCustomerPayment,
		decimal.NewFromInt(100),
		finance.TransactionStatusCompleted,
		"Customer payment via STRIPE",
		uuid.New(),
	)
	require.NoError(t, err)
	return tx
}

// Tests

func TestFinanceHandler_Reconcile_EmptyBody(t *testing.T) {
	handler, txRepo := setupFinanceTestHandler()

	tx := createTestTransaction(t)
	txRepo.txs[tx.ID] = tx

	// Notes are optional, so a POST with no body at all must succeed
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/finance/transactions/"+tx.ID.String()+"/reconcile", nil)
	c.Params = gin.Params{{Key: "id", Value: tx.ID.String()}}

	handler.Reconcile(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.True(t, tx.Reconciled)
	assert.Empty(t, tx.ReconciliationNotes)
}

func TestFinanceHandler_Reconcile_WithNotes(t *testing.T) {
	handler, txRepo := setupFinanceTestHandler()

	tx := createTestTransaction(t)
	txRepo.txs[tx.ID] = tx

	body, _ := json.Marshal(ReconcileRequest{Notes: "Matched against bank statement #42"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/finance/transactions/"+tx.ID.String()+"/reconcile", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: tx.ID.String()}}

	handler.Reconcile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, tx.Reconciled)
	assert.Equal(t, "Matched against bank statement #42", tx.ReconciliationNotes)
}

func TestFinanceHandler_Reconcile_MalformedBody(t *testing.T) {
	handler, txRepo := setupFinanceTestHandler()

	tx := createTestTransaction(t)
	txRepo.txs[tx.ID] = tx

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/finance/transactions/"+tx.ID.String()+"/reconcile", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: tx.ID.String()}}

	handler.Reconcile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, tx.Reconciled)
}

func TestFinanceHandler_Reconcile_InvalidID(t *testing.T) {
	handler, _ := setupFinanceTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/finance/transactions/invalid-uuid/reconcile", nil)
	c.Params = gin.Params{{Key: "id", Value: "invalid-uuid"}}

	handler.Reconcile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceHandler_Reconcile_NotFound(t *testing.T) {
	handler, _ := setupFinanceTestHandler()

	missingID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/finance/transactions/"+missingID.String()+"/reconcile", nil)
	c.Params = gin.Params{{Key: "id", Value: missingID.String()}}

	handler.Reconcile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
