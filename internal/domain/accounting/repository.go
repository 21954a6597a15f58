package accounting

import (
	"context"

	"github.com/google/uuid"
)

// LedgerAccountRepository defines the interface for chart-of-accounts persistence
type LedgerAccountRepository interface {
	// FindByCode finds an account by its unique code
	FindByCode(ctx context.Context, code string) (*LedgerAccount, error)

	// Create persists a new account. Returns shared.ErrAlreadyExists when the
	// unique constraint on code is violated, so callers can re-read the winner.
	Create(ctx context.Context, account *LedgerAccount) error

	// Update persists balance changes to an existing account
	Update(ctx context.Context, account *LedgerAccount) error
}

// JournalRepository defines the interface for journal entry persistence
type JournalRepository interface {
	// CreateEntry persists a new journal entry together with its postings
	CreateEntry(ctx context.Context, entry *JournalEntry) error

	// FindEntryByID finds a journal entry (with postings) by ID
	FindEntryByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)

	// FindPostingsByAccount finds all postings against an account, oldest first
	FindPostingsByAccount(ctx context.Context, accountID uuid.UUID) ([]JournalPosting, error)
}
