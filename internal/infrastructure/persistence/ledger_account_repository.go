package persistence

import (
	"context"
	"errors"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLedgerAccountRepository implements LedgerAccountRepository using GORM
type GormLedgerAccountRepository struct {
	db *gorm.DB
}

// NewGormLedgerAccountRepository creates a new GormLedgerAccountRepository
func NewGormLedgerAccountRepository(db *gorm.DB) *GormLedgerAccountRepository {
	return &GormLedgerAccountRepository{db: db}
}

// FindByCode finds an account by its unique code
func (r *GormLedgerAccountRepository) FindByCode(ctx context.Context, code string) (*accounting.LedgerAccount, error) {
	var account accounting.LedgerAccount
	if err := r.db.WithContext(ctx).First(&account, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Create persists a new account. A unique-constraint violation on the code
// column surfaces as shared.ErrAlreadyExists so callers can re-read the winner.
func (r *GormLedgerAccountRepository) Create(ctx context.Context, account *accounting.LedgerAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists balance changes to an existing account
func (r *GormLedgerAccountRepository) Update(ctx context.Context, account *accounting.LedgerAccount) error {
	result := r.db.WithContext(ctx).Model(account).
		Select("balance", "name", "description", "active", "updated_at").
		Updates(account)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLedgerAccountRepository implements LedgerAccountRepository
var _ accounting.LedgerAccountRepository = (*GormLedgerAccountRepository)(nil)
