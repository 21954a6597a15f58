package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// TransactionType represents the cash-flow-level classification of a
// financial transaction
type TransactionType string

const (
	TransactionTypeSaleRevenue        TransactionType = "SALE_REVENUE"
	TransactionTypeAccountsReceivable TransactionType = "ACCOUNTS_RECEIVABLE"
	TransactionTypePurchaseExpense    TransactionType = "PURCHASE_EXPENSE"
	TransactionTypeAccountsPayable    TransactionType = "ACCOUNTS_PAYABLE"
	TransactionTypeCustomerPayment    TransactionType = "CUSTOMER_PAYMENT"
	TransactionTypeSupplierPayment    TransactionType = "SUPPLIER_PAYMENT"
	TransactionTypeCustomerRefund     TransactionType = "CUSTOMER_REFUND"
	TransactionTypePaymentFee         TransactionType = "PAYMENT_FEE"
	TransactionTypeOperatingExpense   TransactionType = "OPERATING_EXPENSE"
	TransactionTypeShippingCost       TransactionType = "SHIPPING_COST"
	TransactionTypeTaxTransaction     TransactionType = "TAX_TRANSACTION"
	TransactionTypeCommissionPayment  TransactionType = "COMMISSION_PAYMENT"
	TransactionTypeSalesDiscount      TransactionType = "SALES_DISCOUNT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSaleRevenue,
		TransactionTypeAccountsReceivable,
		TransactionTypePurchaseExpense,
		TransactionTypeAccountsPayable,
		TransactionTypeCustomerPayment,
		TransactionTypeSupplierPayment,
		TransactionTypeCustomerRefund,
		TransactionTypePaymentFee,
		TransactionTypeOperatingExpense,
		TransactionTypeShippingCost,
		TransactionTypeTaxTransaction,
		TransactionTypeCommissionPayment,
		TransactionTypeSalesDiscount:
		return true
	}
	return false
}

// TransactionStatus represents the settlement status of a financial transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// IsValid returns true if the status is valid
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPending || s == TransactionStatusCompleted
}

// FinancialTransaction is one cash-flow-level financial record. Sign
// convention: positive = inflow or asset/receivable increase, negative =
// outflow or expense/payable increase. Mutated only by reconciliation.
type FinancialTransaction struct {
	shared.BaseEntity
	TransactionNumber   string               `gorm:"type:varchar(50);not null;uniqueIndex" json:"transaction_number"`
	Type                TransactionType      `gorm:"type:varchar(30);not null;index" json:"type"`
	Amount              decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency            valueobject.Currency `gorm:"type:varchar(3);not null" json:"currency"`
	TransactionDate     time.Time            `gorm:"type:timestamptz;not null;index" json:"transaction_date"`
	Counterparty        string               `gorm:"type:varchar(255)" json:"counterparty"`
	OrderID             *uuid.UUID           `gorm:"type:uuid;index" json:"order_id"`
	PaymentID           *uuid.UUID           `gorm:"type:uuid;index" json:"payment_id"`
	MovementID          *uuid.UUID           `gorm:"type:uuid;index" json:"movement_id"`
	JournalEntryID      *uuid.UUID           `gorm:"type:uuid;index" json:"journal_entry_id"`
	Status              TransactionStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	Reconciled          bool                 `gorm:"not null;default:false;index" json:"reconciled"`
	ReconciledAt        *time.Time           `json:"reconciled_at"`
	ReconciledBy        *uuid.UUID           `gorm:"type:uuid" json:"reconciled_by"`
	ReconciliationNotes string               `gorm:"type:text" json:"reconciliation_notes"`
	TaxAmount           decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"tax_amount"`
	FeeAmount           decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"fee_amount"`
	NetAmount           decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"net_amount"`
	Description         string               `gorm:"type:varchar(255)" json:"description"`
	CreatedBy           uuid.UUID            `gorm:"type:uuid" json:"created_by"`
}

// TableName returns the table name for GORM
func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}

// NewFinancialTransaction creates a new financial transaction.
// NetAmount is derived as amount - feeAmount.
func NewFinancialTransaction(
	transactionNumber string,
	txType TransactionType,
	amount decimal.Decimal,
	status TransactionStatus,
	description string,
	createdBy uuid.UUID,
) (*FinancialTransaction, error) {
	if transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Transaction status is not valid")
	}

	return &FinancialTransaction{
		BaseEntity:        shared.NewBaseEntity(),
		TransactionNumber: transactionNumber,
		Type:              txType,
		Amount:            amount,
		Currency:          valueobject.DefaultCurrency,
		TransactionDate:   time.Now(),
		Status:            status,
		TaxAmount:         decimal.Zero,
		FeeAmount:         decimal.Zero,
		NetAmount:         amount,
		Description:       description,
		CreatedBy:         createdBy,
	}, nil
}

// WithCounterparty sets the counterparty name
func (t *FinancialTransaction) WithCounterparty(name string) *FinancialTransaction {
	t.Counterparty = name
	return t
}

// WithOrderID sets the order reference
func (t *FinancialTransaction) WithOrderID(orderID uuid.UUID) *FinancialTransaction {
	t.OrderID = &orderID
	return t
}

// WithPaymentID sets the payment reference
func (t *FinancialTransaction) WithPaymentID(paymentID uuid.UUID) *FinancialTransaction {
	t.PaymentID = &paymentID
	return t
}

// WithMovementID sets the inventory movement reference
func (t *FinancialTransaction) WithMovementID(movementID uuid.UUID) *FinancialTransaction {
	t.MovementID = &movementID
	return t
}

// WithJournalEntryID sets the journal entry reference
func (t *FinancialTransaction) WithJournalEntryID(entryID uuid.UUID) *FinancialTransaction {
	t.JournalEntryID = &entryID
	return t
}

// WithFee sets the processing fee and recomputes the net amount
func (t *FinancialTransaction) WithFee(fee decimal.Decimal) *FinancialTransaction {
	t.FeeAmount = fee
	if net, err := valueobject.NewMoneyUSD(t.Amount).Subtract(valueobject.NewMoneyUSD(fee)); err == nil {
		t.NetAmount = net.Amount()
	}
	return t
}

// WithTax sets the tax amount
func (t *FinancialTransaction) WithTax(tax decimal.Decimal) *FinancialTransaction {
	t.TaxAmount = tax
	return t
}

// WithTransactionDate overrides the transaction date
func (t *FinancialTransaction) WithTransactionDate(date time.Time) *FinancialTransaction {
	t.TransactionDate = date
	return t
}

// Reconcile marks the transaction as verified against an external record.
// Returns false if the transaction was already reconciled; the existing
// reconciliation is left untouched.
func (t *FinancialTransaction) Reconcile(reconciler uuid.UUID, notes string) bool {
	if t.Reconciled {
		return false
	}
	now := time.Now()
	t.Reconciled = true
	t.ReconciledAt = &now
	t.ReconciledBy = &reconciler
	t.ReconciliationNotes = notes
	return true
}
