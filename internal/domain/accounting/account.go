package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// AccountType classifies a ledger account within the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// IsValid returns true if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal returns true for account types whose balance increases on the
// debit side (assets and expenses)
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// LedgerAccount represents one entry in the chart of accounts.
// Accounts are created lazily on first use and never deleted.
type LedgerAccount struct {
	shared.BaseEntity
	Code        string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Type        AccountType     `gorm:"type:varchar(20);not null" json:"type"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	Analytic    bool            `gorm:"not null;default:true" json:"analytic"`
}

// TableName returns the table name for GORM
func (LedgerAccount) TableName() string {
	return "ledger_accounts"
}

// NewLedgerAccount creates a new ledger account with a zero balance
func NewLedgerAccount(code, name string, accountType AccountType) (*LedgerAccount, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	return &LedgerAccount{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        name,
		Type:        accountType,
		Description: fmt.Sprintf("Auto-created %s account %s", accountType, code),
		Balance:     decimal.Zero,
		Active:      true,
		Analytic:    true,
	}, nil
}

// ApplyPosting updates the running balance by the signed effect of one posting.
// A debit increases debit-normal accounts and decreases the rest; a credit does
// the opposite. The running balance is a cache over posting history; the posting
// rows remain the source of truth.
func (a *LedgerAccount) ApplyPosting(side PostingSide, amount decimal.Decimal) {
	delta := amount
	if (side == PostingSideDebit) != a.Type.IsDebitNormal() {
		delta = amount.Neg()
	}
	a.Balance = a.Balance.Add(delta)
}
