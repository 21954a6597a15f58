package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// FinancialTransactionRepository defines the interface for financial
// transaction persistence
type FinancialTransactionRepository interface {
	// Create persists a new transaction (append-only)
	Create(ctx context.Context, tx *FinancialTransaction) error

	// Update persists reconciliation changes to an existing transaction
	Update(ctx context.Context, tx *FinancialTransaction) error

	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialTransaction, error)

	// FindByPeriod finds transactions with a date within [start, end)
	FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]FinancialTransaction, error)

	// FindByType finds transactions of one type
	FindByType(ctx context.Context, txType TransactionType, filter shared.Filter) ([]FinancialTransaction, error)

	// FindByTypeAndStatus finds transactions of one type in one status
	FindByTypeAndStatus(ctx context.Context, txType TransactionType, status TransactionStatus) ([]FinancialTransaction, error)

	// FindUnreconciled finds transactions not yet reconciled
	FindUnreconciled(ctx context.Context, filter shared.Filter) ([]FinancialTransaction, error)

	// FindAll finds all transactions
	FindAll(ctx context.Context, filter shared.Filter) ([]FinancialTransaction, error)
}
