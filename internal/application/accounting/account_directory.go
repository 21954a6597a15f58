package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AccountDirectory resolves well-known chart-of-accounts entries by code,
// materializing them lazily on first use. Creation is idempotent: when two
// callers race to create the same code, the unique constraint lets one record
// survive and the losing writer re-reads the winner.
type AccountDirectory struct {
	logger *zap.Logger
}

// NewAccountDirectory creates a new account directory
func NewAccountDirectory(logger *zap.Logger) *AccountDirectory {
	return &AccountDirectory{logger: logger}
}

// GetOrCreate looks up the account for ref, creating it if absent. The
// repository is passed per call so lookups participate in the caller's
// transaction scope.
func (d *AccountDirectory) GetOrCreate(
	ctx context.Context,
	repo accounting.LedgerAccountRepository,
	ref accounting.AccountRef,
) (*accounting.LedgerAccount, error) {
	account, err := repo.FindByCode(ctx, ref.Code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", ref.Code, err)
	}

	account, err = accounting.NewLedgerAccount(ref.Code, ref.Name, ref.Type)
	if err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the creation race; the winner's record is authoritative.
			d.logger.Debug("account already created concurrently",
				zap.String("account_code", ref.Code),
			)
			return repo.FindByCode(ctx, ref.Code)
		}
		return nil, fmt.Errorf("failed to create account %s: %w", ref.Code, err)
	}

	d.logger.Info("ledger account created",
		zap.String("account_code", account.Code),
		zap.String("account_name", account.Name),
		zap.String("account_type", account.Type.String()),
	)
	return account, nil
}
