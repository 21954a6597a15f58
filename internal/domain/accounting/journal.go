package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// PostingSide indicates which side of a journal entry a posting falls on
type PostingSide string

const (
	PostingSideDebit  PostingSide = "DEBIT"
	PostingSideCredit PostingSide = "CREDIT"
)

// String returns the string representation of PostingSide
func (s PostingSide) String() string {
	return string(s)
}

// IsValid returns true if the posting side is valid
func (s PostingSide) IsValid() bool {
	return s == PostingSideDebit || s == PostingSideCredit
}

// JournalPosting is one line (account, side, amount) within a journal entry.
// Postings are always created in balanced sets alongside their entry.
type JournalPosting struct {
	shared.BaseEntity
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index:idx_posting_entry" json:"journal_entry_id"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_posting_account" json:"account_id"`
	AccountCode    string          `gorm:"type:varchar(20);not null" json:"account_code"`
	Side           PostingSide     `gorm:"type:varchar(10);not null" json:"side"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Description    string          `gorm:"type:varchar(255)" json:"description"`
	CostCenter     string          `gorm:"type:varchar(50)" json:"cost_center"`
}

// TableName returns the table name for GORM
func (JournalPosting) TableName() string {
	return "journal_postings"
}

// JournalEntry is a balanced set of postings representing one accounting event.
// Entries are immutable once created.
type JournalEntry struct {
	shared.BaseEntity
	EntryNumber    string           `gorm:"type:varchar(50);not null;uniqueIndex" json:"entry_number"`
	EntryDate      time.Time        `gorm:"type:timestamptz;not null;index" json:"entry_date"`
	DocumentType   string           `gorm:"type:varchar(30);not null" json:"document_type"`
	DocumentNumber string           `gorm:"type:varchar(50)" json:"document_number"`
	Description    string           `gorm:"type:varchar(255)" json:"description"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	ProductID      *uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	OrderID        *uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	MovementID     *uuid.UUID       `gorm:"type:uuid;index" json:"movement_id"`
	Posted         bool             `gorm:"not null;default:false" json:"posted"`
	PostedAt       *time.Time       `json:"posted_at"`
	CreatedBy      uuid.UUID        `gorm:"type:uuid" json:"created_by"`
	Postings       []JournalPosting `gorm:"foreignKey:JournalEntryID" json:"postings"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a new journal entry without postings.
// Postings are added via AddPosting and checked with Validate before persisting.
func NewJournalEntry(
	entryNumber string,
	entryDate time.Time,
	documentType string,
	documentNumber string,
	description string,
	totalAmount decimal.Decimal,
	createdBy uuid.UUID,
) (*JournalEntry, error) {
	if entryNumber == "" {
		return nil, shared.NewDomainError("INVALID_ENTRY_NUMBER", "Entry number cannot be empty")
	}
	if documentType == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type cannot be empty")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}

	now := time.Now()
	return &JournalEntry{
		BaseEntity:     shared.NewBaseEntity(),
		EntryNumber:    entryNumber,
		EntryDate:      entryDate,
		DocumentType:   documentType,
		DocumentNumber: documentNumber,
		Description:    description,
		TotalAmount:    totalAmount,
		Posted:         true,
		PostedAt:       &now,
		CreatedBy:      createdBy,
	}, nil
}

// AddPosting appends one posting line to the entry
func (e *JournalEntry) AddPosting(account *LedgerAccount, side PostingSide, amount decimal.Decimal, description string) {
	e.Postings = append(e.Postings, JournalPosting{
		BaseEntity:     shared.NewBaseEntity(),
		JournalEntryID: e.ID,
		AccountID:      account.ID,
		AccountCode:    account.Code,
		Side:           side,
		Amount:         amount,
		Description:    description,
	})
}

// DebitTotal returns the sum of all debit postings
func (e *JournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Postings {
		if p.Side == PostingSideDebit {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// CreditTotal returns the sum of all credit postings
func (e *JournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Postings {
		if p.Side == PostingSideCredit {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Validate checks the double-entry invariant: debit total and credit total must
// both equal the entry's total amount, and at least two postings must exist.
func (e *JournalEntry) Validate() error {
	if len(e.Postings) < 2 {
		return shared.NewDomainError("TOO_FEW_POSTINGS", "Journal entry must have at least two postings")
	}
	debits := e.DebitTotal()
	credits := e.CreditTotal()
	if !debits.Equal(credits) || !debits.Equal(e.TotalAmount) {
		return shared.ErrUnbalancedEntry
	}
	return nil
}
