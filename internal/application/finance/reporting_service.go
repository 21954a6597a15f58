package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/finance"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CashFlowSummary aggregates financial transactions over a period into
// per-category buckets plus inflow/outflow/net totals. SalesRevenue and
// PurchaseExpenses are accrual buckets reported alongside the cash totals but
// excluded from them; cash moves when payments happen.
type CashFlowSummary struct {
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	CustomerPayments  decimal.Decimal `json:"customer_payments"`
	SalesRevenue      decimal.Decimal `json:"sales_revenue"`
	SupplierPayments  decimal.Decimal `json:"supplier_payments"`
	PurchaseExpenses  decimal.Decimal `json:"purchase_expenses"`
	Refunds           decimal.Decimal `json:"refunds"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	PaymentFees       decimal.Decimal `json:"payment_fees"`
	ShippingCosts     decimal.Decimal `json:"shipping_costs"`
	Taxes             decimal.Decimal `json:"taxes"`
	TotalInflows      decimal.Decimal `json:"total_inflows"`
	TotalOutflows     decimal.Decimal `json:"total_outflows"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
}

// AgingBucket is one days-outstanding range in an aging report
type AgingBucket struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// AgingSummary reports outstanding receivables or payables bucketed by days
// since the transaction date. Buckets are right-inclusive on the upper bound.
type AgingSummary struct {
	Current     AgingBucket     `json:"current"`       // 0-30 days
	Days31to60  AgingBucket     `json:"days_31_to_60"` // 31-60 days
	Days61to90  AgingBucket     `json:"days_61_to_90"` // 61-90 days
	Over90      AgingBucket     `json:"over_90"`       // more than 90 days
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCount  int             `json:"total_count"`
}

// FinancialReportingEngine derives cash-flow summaries and AR/AP aging from
// committed financial transactions. Pure read-side aggregation.
type FinancialReportingEngine struct {
	transactions finance.FinancialTransactionRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewFinancialReportingEngine creates a new reporting engine
func NewFinancialReportingEngine(
	transactions finance.FinancialTransactionRepository,
	logger *zap.Logger,
) *FinancialReportingEngine {
	return &FinancialReportingEngine{
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// CashFlowSummary aggregates transactions dated within [start, end)
func (e *FinancialReportingEngine) CashFlowSummary(ctx context.Context, start, end time.Time) (*CashFlowSummary, error) {
	txs, err := e.transactions.FindByPeriod(ctx, start, end, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for period: %w", err)
	}

	summary := &CashFlowSummary{PeriodStart: start, PeriodEnd: end}
	for i := range txs {
		tx := &txs[i]
		switch tx.Type {
		case finance.TransactionTypeCustomerPayment:
			summary.CustomerPayments = summary.CustomerPayments.Add(tx.Amount)
			summary.TotalInflows = summary.TotalInflows.Add(tx.Amount)
		case finance.TransactionTypeSaleRevenue:
			summary.SalesRevenue = summary.SalesRevenue.Add(tx.Amount)
		case finance.TransactionTypeSupplierPayment:
			summary.SupplierPayments = summary.SupplierPayments.Add(tx.Amount.Abs())
			summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
		case finance.TransactionTypePurchaseExpense:
			summary.PurchaseExpenses = summary.PurchaseExpenses.Add(tx.Amount.Abs())
		case finance.TransactionTypeCustomerRefund:
			summary.Refunds = summary.Refunds.Add(tx.Amount.Abs())
			summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
		case finance.TransactionTypeOperatingExpense,
			finance.TransactionTypeCommissionPayment,
			finance.TransactionTypeSalesDiscount:
			summary.OperatingExpenses = summary.OperatingExpenses.Add(tx.Amount.Abs())
			summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
		case finance.TransactionTypePaymentFee:
			summary.PaymentFees = summary.PaymentFees.Add(tx.Amount.Abs())
			summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
		case finance.TransactionTypeShippingCost:
			summary.ShippingCosts = summary.ShippingCosts.Add(tx.Amount.Abs())
			summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
		case finance.TransactionTypeTaxTransaction:
			// Tax refunds come in positive, tax payments negative.
			summary.Taxes = summary.Taxes.Add(tx.Amount)
			if tx.Amount.IsPositive() {
				summary.TotalInflows = summary.TotalInflows.Add(tx.Amount)
			} else {
				summary.TotalOutflows = summary.TotalOutflows.Add(tx.Amount.Abs())
			}
		}
	}
	summary.NetCashFlow = summary.TotalInflows.Sub(summary.TotalOutflows)

	e.logger.Debug("cash flow summary computed",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("transactions", len(txs)),
	)
	return summary, nil
}

// ReceivablesAging buckets pending accounts-receivable transactions by age
func (e *FinancialReportingEngine) ReceivablesAging(ctx context.Context) (*AgingSummary, error) {
	return e.aging(ctx, finance.TransactionTypeAccountsReceivable)
}

// PayablesAging buckets pending accounts-payable transactions by age
func (e *FinancialReportingEngine) PayablesAging(ctx context.Context) (*AgingSummary, error) {
	return e.aging(ctx, finance.TransactionTypeAccountsPayable)
}

func (e *FinancialReportingEngine) aging(ctx context.Context, txType finance.TransactionType) (*AgingSummary, error) {
	txs, err := e.transactions.FindByTypeAndStatus(ctx, txType, finance.TransactionStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending %s transactions: %w", txType, err)
	}

	summary := &AgingSummary{
		Current:    AgingBucket{Label: "0-30"},
		Days31to60: AgingBucket{Label: "31-60"},
		Days61to90: AgingBucket{Label: "61-90"},
		Over90:     AgingBucket{Label: "90+"},
	}
	now := e.now()
	for i := range txs {
		tx := &txs[i]
		days := int(now.Sub(tx.TransactionDate).Hours() / 24)
		amount := tx.Amount.Abs()

		var bucket *AgingBucket
		switch {
		case days <= 30:
			bucket = &summary.Current
		case days <= 60:
			bucket = &summary.Days31to60
		case days <= 90:
			bucket = &summary.Days61to90
		default:
			bucket = &summary.Over90
		}
		bucket.Amount = bucket.Amount.Add(amount)
		bucket.Count++
		summary.TotalAmount = summary.TotalAmount.Add(amount)
		summary.TotalCount++
	}
	return summary, nil
}
