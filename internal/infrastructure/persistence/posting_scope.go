package persistence

import (
	"context"

	appaccounting "github.com/stockledger/backend/internal/application/accounting"
	"github.com/stockledger/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormPostingScope implements PostingScope using GORM transactions.
// All journal writes inside one Execute call commit or roll back together.
type GormPostingScope struct {
	db *gorm.DB
}

// NewGormPostingScope creates a new GormPostingScope
func NewGormPostingScope(db *gorm.DB) *GormPostingScope {
	return &GormPostingScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormPostingScope) Execute(ctx context.Context, fn func(repos appaccounting.PostingRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormPostingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormPostingRepositories provides access to the accounting repositories within
// a transaction.
type gormPostingRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the ledger account repository scoped to the current transaction
func (r *gormPostingRepositories) AccountRepo() accounting.LedgerAccountRepository {
	return NewGormLedgerAccountRepository(r.tx)
}

// JournalRepo returns the journal repository scoped to the current transaction
func (r *gormPostingRepositories) JournalRepo() accounting.JournalRepository {
	return NewGormJournalRepository(r.tx)
}

// Ensure GormPostingScope implements PostingScope
var _ appaccounting.PostingScope = (*GormPostingScope)(nil)

// Ensure gormPostingRepositories implements PostingRepositories
var _ appaccounting.PostingRepositories = (*gormPostingRepositories)(nil)
