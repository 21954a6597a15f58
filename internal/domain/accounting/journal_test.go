package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, code string, accountType AccountType) *LedgerAccount {
	t.Helper()
	account, err := NewLedgerAccount(code, "Account "+code, accountType)
	require.NoError(t, err)
	return account
}

func newTestEntry(t *testing.T, total decimal.Decimal) *JournalEntry {
	t.Helper()
	entry, err := NewJournalEntry("JE-20260825-000001", time.Now(), "PURCHASE", "PO-1", "test entry", total, uuid.New())
	require.NoError(t, err)
	return entry
}

func TestNewJournalEntry_Validation(t *testing.T) {
	actor := uuid.New()

	_, err := NewJournalEntry("", time.Now(), "PURCHASE", "", "", decimal.NewFromInt(10), actor)
	assert.Error(t, err)

	_, err = NewJournalEntry("JE-1", time.Now(), "", "", "", decimal.NewFromInt(10), actor)
	assert.Error(t, err)

	_, err = NewJournalEntry("JE-1", time.Now(), "PURCHASE", "", "", decimal.NewFromInt(-10), actor)
	assert.Error(t, err)

	entry, err := NewJournalEntry("JE-1", time.Now(), "PURCHASE", "PO-1", "desc", decimal.NewFromInt(10), actor)
	require.NoError(t, err)
	assert.True(t, entry.Posted)
	assert.NotNil(t, entry.PostedAt)
}

func TestJournalEntry_Validate_Balanced(t *testing.T) {
	amount := decimal.NewFromFloat(250.00)
	entry := newTestEntry(t, amount)

	debit := newTestAccount(t, "1400", AccountTypeAsset)
	credit := newTestAccount(t, "2100", AccountTypeLiability)

	entry.AddPosting(debit, PostingSideDebit, amount, "inventory in")
	entry.AddPosting(credit, PostingSideCredit, amount, "payable")

	require.NoError(t, entry.Validate())
	assert.True(t, entry.DebitTotal().Equal(entry.CreditTotal()))
	assert.True(t, entry.DebitTotal().Equal(amount))
}

func TestJournalEntry_Validate_TooFewPostings(t *testing.T) {
	entry := newTestEntry(t, decimal.NewFromInt(100))
	entry.AddPosting(newTestAccount(t, "1400", AccountTypeAsset), PostingSideDebit, decimal.NewFromInt(100), "")

	err := entry.Validate()
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOO_FEW_POSTINGS", domainErr.Code)
}

func TestJournalEntry_Validate_Unbalanced(t *testing.T) {
	entry := newTestEntry(t, decimal.NewFromInt(100))
	entry.AddPosting(newTestAccount(t, "1400", AccountTypeAsset), PostingSideDebit, decimal.NewFromInt(100), "")
	entry.AddPosting(newTestAccount(t, "2100", AccountTypeLiability), PostingSideCredit, decimal.NewFromInt(90), "")

	assert.ErrorIs(t, entry.Validate(), shared.ErrUnbalancedEntry)
}

func TestJournalEntry_Validate_TotalMismatch(t *testing.T) {
	// Debits equal credits but neither matches the entry total
	entry := newTestEntry(t, decimal.NewFromInt(100))
	entry.AddPosting(newTestAccount(t, "1400", AccountTypeAsset), PostingSideDebit, decimal.NewFromInt(90), "")
	entry.AddPosting(newTestAccount(t, "2100", AccountTypeLiability), PostingSideCredit, decimal.NewFromInt(90), "")

	assert.ErrorIs(t, entry.Validate(), shared.ErrUnbalancedEntry)
}

func TestJournalEntry_AddPosting_CarriesAccountDetails(t *testing.T) {
	entry := newTestEntry(t, decimal.NewFromInt(10))
	account := newTestAccount(t, "5000", AccountTypeExpense)

	entry.AddPosting(account, PostingSideDebit, decimal.NewFromInt(10), "cogs")

	require.Len(t, entry.Postings, 1)
	posting := entry.Postings[0]
	assert.Equal(t, account.ID, posting.AccountID)
	assert.Equal(t, "5000", posting.AccountCode)
	assert.Equal(t, PostingSideDebit, posting.Side)
	assert.Equal(t, "cogs", posting.Description)
}
