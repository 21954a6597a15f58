package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/finance"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/sequence"
	"go.uber.org/zap"
)

// FinancialTransactionRecorder creates the cash-flow-level records that follow
// from business events: revenue and AR for sales, expense and AP for purchases,
// payments, fees, refunds and operating expenses. It also performs
// reconciliation state transitions.
type FinancialTransactionRecorder struct {
	transactions finance.FinancialTransactionRepository
	sequences    sequence.Generator
	logger       *zap.Logger
}

// NewFinancialTransactionRecorder creates a new recorder
func NewFinancialTransactionRecorder(
	transactions finance.FinancialTransactionRepository,
	sequences sequence.Generator,
	logger *zap.Logger,
) *FinancialTransactionRecorder {
	return &FinancialTransactionRecorder{
		transactions: transactions,
		sequences:    sequences,
		logger:       logger,
	}
}

// RecordSale creates the SaleRevenue (completed) and AccountsReceivable
// (pending) transactions for a sale or fulfillment movement
func (r *FinancialTransactionRecorder) RecordSale(
	ctx context.Context,
	movement *inventory.InventoryMovement,
	entry *accounting.JournalEntry,
	actor uuid.UUID,
) ([]*finance.FinancialTransaction, error) {
	revenue, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeSaleRevenue,
		movement.TotalCost,
		finance.TransactionStatusCompleted,
		fmt.Sprintf("Revenue for movement %s", movement.MovementNumber),
		actor,
	)
	if err != nil {
		return nil, err
	}
	receivable, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeAccountsReceivable,
		movement.TotalCost,
		finance.TransactionStatusPending,
		fmt.Sprintf("Receivable for movement %s", movement.MovementNumber),
		actor,
	)
	if err != nil {
		return nil, err
	}

	created := make([]*finance.FinancialTransaction, 0, 2)
	for _, tx := range []*finance.FinancialTransaction{revenue, receivable} {
		r.linkMovement(tx, movement, entry)
		if err := r.transactions.Create(ctx, tx); err != nil {
			return created, fmt.Errorf("failed to record %s: %w", tx.Type, err)
		}
		created = append(created, tx)
	}

	r.logger.Info("sale transactions recorded",
		zap.String("movement_number", movement.MovementNumber),
		zap.String("revenue_number", revenue.TransactionNumber),
		zap.String("receivable_number", receivable.TransactionNumber),
		zap.String("amount", movement.TotalCost.StringFixed(2)),
	)
	return created, nil
}

// RecordPurchase creates the PurchaseExpense (completed, negative) and
// AccountsPayable (pending, positive) transactions for a purchase movement
func (r *FinancialTransactionRecorder) RecordPurchase(
	ctx context.Context,
	movement *inventory.InventoryMovement,
	entry *accounting.JournalEntry,
	actor uuid.UUID,
) ([]*finance.FinancialTransaction, error) {
	expense, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypePurchaseExpense,
		movement.TotalCost.Neg(),
		finance.TransactionStatusCompleted,
		fmt.Sprintf("Purchase expense for movement %s", movement.MovementNumber),
		actor,
	)
	if err != nil {
		return nil, err
	}
	payable, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeAccountsPayable,
		movement.TotalCost,
		finance.TransactionStatusPending,
		fmt.Sprintf("Payable for movement %s", movement.MovementNumber),
		actor,
	)
	if err != nil {
		return nil, err
	}

	created := make([]*finance.FinancialTransaction, 0, 2)
	for _, tx := range []*finance.FinancialTransaction{expense, payable} {
		r.linkMovement(tx, movement, entry)
		if err := r.transactions.Create(ctx, tx); err != nil {
			return created, fmt.Errorf("failed to record %s: %w", tx.Type, err)
		}
		created = append(created, tx)
	}

	r.logger.Info("purchase transactions recorded",
		zap.String("movement_number", movement.MovementNumber),
		zap.String("expense_number", expense.TransactionNumber),
		zap.String("payable_number", payable.TransactionNumber),
		zap.String("amount", movement.TotalCost.StringFixed(2)),
	)
	return created, nil
}

// CustomerPaymentRequest carries the inputs for recording a customer payment
type CustomerPaymentRequest struct {
	PaymentID    uuid.UUID
	OrderID      *uuid.UUID
	Amount       decimal.Decimal
	Provider     finance.PaymentProvider
	Counterparty string
}

// RecordCustomerPayment creates a CustomerPayment transaction with the
// provider's processing fee deducted from the net amount, plus a separate
// PaymentFee transaction when the fee is non-zero. Returns the payment
// transaction.
func (r *FinancialTransactionRecorder) RecordCustomerPayment(
	ctx context.Context,
	req CustomerPaymentRequest,
	actor uuid.UUID,
) (*finance.FinancialTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	fee := finance.ProcessingFee(req.Provider, req.Amount)

	payment, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeCustomerPayment,
		req.Amount,
		finance.TransactionStatusCompleted,
		fmt.Sprintf("Customer payment via %s", req.Provider),
		actor,
	)
	if err != nil {
		return nil, err
	}
	payment.WithFee(fee).WithPaymentID(req.PaymentID).WithCounterparty(req.Counterparty)
	if req.OrderID != nil {
		payment.WithOrderID(*req.OrderID)
	}
	if err := r.transactions.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record customer payment: %w", err)
	}

	if fee.IsPositive() {
		feeTx, err := finance.NewFinancialTransaction(
			r.sequences.Next(sequence.PrefixTransaction),
			finance.TransactionTypePaymentFee,
			fee.Neg(),
			finance.TransactionStatusCompleted,
			fmt.Sprintf("Processing fee for payment %s", payment.TransactionNumber),
			actor,
		)
		if err != nil {
			return payment, err
		}
		feeTx.WithPaymentID(req.PaymentID).WithCounterparty(string(req.Provider))
		if req.OrderID != nil {
			feeTx.WithOrderID(*req.OrderID)
		}
		if err := r.transactions.Create(ctx, feeTx); err != nil {
			return payment, fmt.Errorf("failed to record payment fee: %w", err)
		}
	}

	r.logger.Info("customer payment recorded",
		zap.String("transaction_number", payment.TransactionNumber),
		zap.String("provider", string(req.Provider)),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("fee", fee.StringFixed(2)),
		zap.String("net", payment.NetAmount.StringFixed(2)),
	)
	return payment, nil
}

// RecordSupplierPayment creates a SupplierPayment transaction (outflow)
func (r *FinancialTransactionRecorder) RecordSupplierPayment(
	ctx context.Context,
	paymentID uuid.UUID,
	amount decimal.Decimal,
	counterparty string,
	actor uuid.UUID,
) (*finance.FinancialTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	tx, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeSupplierPayment,
		amount.Neg(),
		finance.TransactionStatusCompleted,
		fmt.Sprintf("Payment to supplier %s", counterparty),
		actor,
	)
	if err != nil {
		return nil, err
	}
	tx.WithPaymentID(paymentID).WithCounterparty(counterparty)
	if err := r.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record supplier payment: %w", err)
	}

	r.logger.Info("supplier payment recorded",
		zap.String("transaction_number", tx.TransactionNumber),
		zap.String("counterparty", counterparty),
		zap.String("amount", amount.StringFixed(2)),
	)
	return tx, nil
}

// RecordCustomerRefund creates a CustomerRefund transaction (outflow)
func (r *FinancialTransactionRecorder) RecordCustomerRefund(
	ctx context.Context,
	orderID uuid.UUID,
	amount decimal.Decimal,
	reason string,
	actor uuid.UUID,
) (*finance.FinancialTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}

	tx, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		finance.TransactionTypeCustomerRefund,
		amount.Neg(),
		finance.TransactionStatusCompleted,
		reason,
		actor,
	)
	if err != nil {
		return nil, err
	}
	tx.WithOrderID(orderID)
	if err := r.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record customer refund: %w", err)
	}

	r.logger.Info("customer refund recorded",
		zap.String("transaction_number", tx.TransactionNumber),
		zap.String("order_id", orderID.String()),
		zap.String("amount", amount.StringFixed(2)),
	)
	return tx, nil
}

// RecordOperatingExpense creates an expense transaction whose type is derived
// from the expense category (shipping, tax, discount, commission, or general)
func (r *FinancialTransactionRecorder) RecordOperatingExpense(
	ctx context.Context,
	category string,
	amount decimal.Decimal,
	description string,
	actor uuid.UUID,
) (*finance.FinancialTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	txType := finance.ClassifyExpenseCategory(category)
	tx, err := finance.NewFinancialTransaction(
		r.sequences.Next(sequence.PrefixTransaction),
		txType,
		amount.Neg(),
		finance.TransactionStatusCompleted,
		description,
		actor,
	)
	if err != nil {
		return nil, err
	}
	if err := r.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record operating expense: %w", err)
	}

	r.logger.Info("operating expense recorded",
		zap.String("transaction_number", tx.TransactionNumber),
		zap.String("category", category),
		zap.String("type", txType.String()),
		zap.String("amount", amount.StringFixed(2)),
	)
	return tx, nil
}

// Reconcile marks a transaction as verified against an external record.
// Unknown ids return shared.ErrNotFound; reconciling an already-reconciled
// transaction is an idempotent no-op returning the existing record.
func (r *FinancialTransactionRecorder) Reconcile(
	ctx context.Context,
	transactionID uuid.UUID,
	reconciler uuid.UUID,
	notes string,
) (*finance.FinancialTransaction, error) {
	tx, err := r.transactions.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	if !tx.Reconcile(reconciler, notes) {
		r.logger.Debug("transaction already reconciled",
			zap.String("transaction_number", tx.TransactionNumber),
		)
		return tx, nil
	}

	if err := r.transactions.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	r.logger.Info("transaction reconciled",
		zap.String("transaction_number", tx.TransactionNumber),
		zap.String("reconciled_by", reconciler.String()),
	)
	return tx, nil
}

// GetTransaction returns one transaction by id
func (r *FinancialTransactionRecorder) GetTransaction(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	return r.transactions.FindByID(ctx, id)
}

// ListTransactions returns transactions matching the filter
func (r *FinancialTransactionRecorder) ListTransactions(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	return r.transactions.FindAll(ctx, filter)
}

// ListTransactionsByPeriod returns transactions dated within [start, end)
func (r *FinancialTransactionRecorder) ListTransactionsByPeriod(
	ctx context.Context,
	start, end time.Time,
	filter shared.Filter,
) ([]finance.FinancialTransaction, error) {
	return r.transactions.FindByPeriod(ctx, start, end, filter)
}

// ListUnreconciled returns transactions not yet reconciled
func (r *FinancialTransactionRecorder) ListUnreconciled(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	return r.transactions.FindUnreconciled(ctx, filter)
}

func (r *FinancialTransactionRecorder) linkMovement(
	tx *finance.FinancialTransaction,
	movement *inventory.InventoryMovement,
	entry *accounting.JournalEntry,
) {
	tx.WithMovementID(movement.ID).WithTransactionDate(movement.MovementDate)
	if movement.OrderID != nil {
		tx.WithOrderID(*movement.OrderID)
	}
	if entry != nil {
		tx.WithJournalEntryID(entry.ID)
	}
}
