package accounting

import (
	"context"

	"github.com/stockledger/backend/internal/domain/accounting"
)

// PostingScope provides transactional access to the accounting repositories.
// The posting engine runs its writes (journal entry, postings, both balance
// updates) inside one scope execution so they commit or roll back as a unit.
type PostingScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos PostingRepositories) error) error
}

// PostingRepositories provides access to the accounting repositories within a
// transaction. Both repositories share the same underlying database transaction.
type PostingRepositories interface {
	// AccountRepo returns the ledger account repository scoped to the current transaction
	AccountRepo() accounting.LedgerAccountRepository
	// JournalRepo returns the journal repository scoped to the current transaction
	JournalRepo() accounting.JournalRepository
}

// NoOpPostingScope is a posting scope that doesn't actually use transactions.
// Useful for testing or when transaction support is not required.
type NoOpPostingScope struct {
	accountRepo accounting.LedgerAccountRepository
	journalRepo accounting.JournalRepository
}

// NewNoOpPostingScope creates a NoOpPostingScope with the given repositories
func NewNoOpPostingScope(
	accountRepo accounting.LedgerAccountRepository,
	journalRepo accounting.JournalRepository,
) *NoOpPostingScope {
	return &NoOpPostingScope{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpPostingScope) Execute(_ context.Context, fn func(repos PostingRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the ledger account repository
func (s *NoOpPostingScope) AccountRepo() accounting.LedgerAccountRepository {
	return s.accountRepo
}

// JournalRepo returns the journal repository
func (s *NoOpPostingScope) JournalRepo() accounting.JournalRepository {
	return s.journalRepo
}

// Ensure NoOpPostingScope implements both interfaces
var _ PostingScope = (*NoOpPostingScope)(nil)
var _ PostingRepositories = (*NoOpPostingScope)(nil)
