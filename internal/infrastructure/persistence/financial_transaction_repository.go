package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/finance"
	"github.com/stockledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFinancialTransactionRepository implements FinancialTransactionRepository using GORM
type GormFinancialTransactionRepository struct {
	db *gorm.DB
}

// NewGormFinancialTransactionRepository creates a new GormFinancialTransactionRepository
func NewGormFinancialTransactionRepository(db *gorm.DB) *GormFinancialTransactionRepository {
	return &GormFinancialTransactionRepository{db: db}
}

// Create persists a new transaction
func (r *GormFinancialTransactionRepository) Create(ctx context.Context, tx *finance.FinancialTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists reconciliation changes to an existing transaction
func (r *GormFinancialTransactionRepository) Update(ctx context.Context, tx *finance.FinancialTransaction) error {
	result := r.db.WithContext(ctx).Save(tx)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a transaction by its ID
func (r *GormFinancialTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	var tx finance.FinancialTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByPeriod finds transactions dated within [start, end)
func (r *GormFinancialTransactionRepository) FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txs []finance.FinancialTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}).
			Where("transaction_date >= ? AND transaction_date < ?", start, end),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByType finds transactions of one type
func (r *GormFinancialTransactionRepository) FindByType(ctx context.Context, txType finance.TransactionType, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txs []finance.FinancialTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}).
			Where("type = ?", txType),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByTypeAndStatus finds transactions of one type in one status
func (r *GormFinancialTransactionRepository) FindByTypeAndStatus(ctx context.Context, txType finance.TransactionType, status finance.TransactionStatus) ([]finance.FinancialTransaction, error) {
	var txs []finance.FinancialTransaction
	if err := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", txType, status).
		Order("transaction_date ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindUnreconciled finds transactions not yet reconciled
func (r *GormFinancialTransactionRepository) FindUnreconciled(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txs []finance.FinancialTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}).
			Where("reconciled = ?", false),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAll finds all transactions matching the filter
func (r *GormFinancialTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txs []finance.FinancialTransaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// applyFilter applies filter options to the query
func (r *GormFinancialTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "counterparty":
			query = query.Where("counterparty = ?", value)
		case "reconciled":
			query = query.Where("reconciled = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormFinancialTransactionRepository implements FinancialTransactionRepository
var _ finance.FinancialTransactionRepository = (*GormFinancialTransactionRepository)(nil)
