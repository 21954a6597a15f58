package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appfinance "github.com/stockledger/backend/internal/application/finance"
	"github.com/stockledger/backend/internal/domain/finance"
)

// FinanceHandler handles financial transaction API endpoints
type FinanceHandler struct {
	BaseHandler
	recorder *appfinance.FinancialTransactionRecorder
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(recorder *appfinance.FinancialTransactionRecorder) *FinanceHandler {
	return &FinanceHandler{recorder: recorder}
}

// ===================== Request/Response DTOs =====================

// CustomerPaymentRequest is the payload for recording a customer payment
type CustomerPaymentRequest struct {
	PaymentID    string          `json:"payment_id" binding:"required,uuid"`
	OrderID      string          `json:"order_id" binding:"omitempty,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Provider     string          `json:"provider" binding:"required"`
	Counterparty string          `json:"counterparty"`
}

// SupplierPaymentRequest is the payload for recording a supplier payment
type SupplierPaymentRequest struct {
	PaymentID    string          `json:"payment_id" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Counterparty string          `json:"counterparty" binding:"required"`
}

// CustomerRefundRequest is the payload for recording a customer refund
type CustomerRefundRequest struct {
	OrderID string          `json:"order_id" binding:"required,uuid"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Reason  string          `json:"reason"`
}

// OperatingExpenseRequest is the payload for recording an operating expense
type OperatingExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// ReconcileRequest is the payload for reconciling a transaction
type ReconcileRequest struct {
	Notes string `json:"notes"`
}

// TransactionResponse represents a financial transaction in API responses
type TransactionResponse struct {
	ID                  string     `json:"id"`
	TransactionNumber   string     `json:"transaction_number"`
	Type                string     `json:"type"`
	Amount              string     `json:"amount"`
	Currency            string     `json:"currency"`
	TransactionDate     time.Time  `json:"transaction_date"`
	Counterparty        string     `json:"counterparty,omitempty"`
	OrderID             *string    `json:"order_id,omitempty"`
	PaymentID           *string    `json:"payment_id,omitempty"`
	MovementID          *string    `json:"movement_id,omitempty"`
	JournalEntryID      *string    `json:"journal_entry_id,omitempty"`
	Status              string     `json:"status"`
	Reconciled          bool       `json:"reconciled"`
	ReconciledAt        *time.Time `json:"reconciled_at,omitempty"`
	ReconciliationNotes string     `json:"reconciliation_notes,omitempty"`
	TaxAmount           string     `json:"tax_amount"`
	FeeAmount           string     `json:"fee_amount"`
	NetAmount           string     `json:"net_amount"`
	Description         string     `json:"description,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func toTransactionResponse(tx *finance.FinancialTransaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                  tx.ID.String(),
		TransactionNumber:   tx.TransactionNumber,
		Type:                tx.Type.String(),
		Amount:              tx.Amount.StringFixed(2),
		Currency:            string(tx.Currency),
		TransactionDate:     tx.TransactionDate,
		Counterparty:        tx.Counterparty,
		Status:              string(tx.Status),
		Reconciled:          tx.Reconciled,
		ReconciledAt:        tx.ReconciledAt,
		ReconciliationNotes: tx.ReconciliationNotes,
		TaxAmount:           tx.TaxAmount.StringFixed(2),
		FeeAmount:           tx.FeeAmount.StringFixed(2),
		NetAmount:           tx.NetAmount.StringFixed(2),
		Description:         tx.Description,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
	if tx.OrderID != nil {
		s := tx.OrderID.String()
		resp.OrderID = &s
	}
	if tx.PaymentID != nil {
		s := tx.PaymentID.String()
		resp.PaymentID = &s
	}
	if tx.MovementID != nil {
		s := tx.MovementID.String()
		resp.MovementID = &s
	}
	if tx.JournalEntryID != nil {
		s := tx.JournalEntryID.String()
		resp.JournalEntryID = &s
	}
	return resp
}

func toTransactionResponses(txs []finance.FinancialTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = toTransactionResponse(&txs[i])
	}
	return responses
}

// ===================== Handlers =====================

// RecordCustomerPayment records a customer payment with the provider fee deducted
func (h *FinanceHandler) RecordCustomerPayment(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req CustomerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	appReq := appfinance.CustomerPaymentRequest{
		PaymentID:    paymentID,
		Amount:       req.Amount,
		Provider:     finance.ParsePaymentProvider(req.Provider),
		Counterparty: req.Counterparty,
	}
	if req.OrderID != "" {
		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			h.BadRequest(c, "Invalid order ID format")
			return
		}
		appReq.OrderID = &orderID
	}

	payment, err := h.recorder.RecordCustomerPayment(c.Request.Context(), appReq, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(payment))
}

// RecordSupplierPayment records an outgoing payment to a supplier
func (h *FinanceHandler) RecordSupplierPayment(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req SupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	tx, err := h.recorder.RecordSupplierPayment(c.Request.Context(), paymentID, req.Amount, req.Counterparty, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(tx))
}

// RecordCustomerRefund records a refund back to a customer
func (h *FinanceHandler) RecordCustomerRefund(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req CustomerRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	tx, err := h.recorder.RecordCustomerRefund(c.Request.Context(), orderID, req.Amount, req.Reason, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(tx))
}

// RecordOperatingExpense records an expense classified by its category
func (h *FinanceHandler) RecordOperatingExpense(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req OperatingExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.recorder.RecordOperatingExpense(c.Request.Context(), req.Category, req.Amount, req.Description, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(tx))
}

// Reconcile marks a transaction as verified against an external record
func (h *FinanceHandler) Reconcile(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	// Notes are optional; a bodiless POST reconciles without them
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	tx, err := h.recorder.Reconcile(c.Request.Context(), transactionID, actor, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTransactionResponse(tx))
}

// GetTransaction retrieves one transaction by ID
func (h *FinanceHandler) GetTransaction(c *gin.Context) {
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	tx, err := h.recorder.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTransactionResponse(tx))
}

// ListTransactions lists transactions, optionally restricted to a period or
// to unreconciled records
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if txType := c.Query("type"); txType != "" {
		filter.Filters["type"] = txType
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	if c.Query("unreconciled") == "true" {
		txs, err := h.recorder.ListUnreconciled(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, toTransactionResponses(txs))
		return
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		start, end, err := parsePeriod(c)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		txs, err := h.recorder.ListTransactionsByPeriod(c.Request.Context(), start, end, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, toTransactionResponses(txs))
		return
	}

	txs, err := h.recorder.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toTransactionResponses(txs))
}

// RegisterRoutes registers finance routes on the given group
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	financeGroup := rg.Group("/finance")
	{
		financeGroup.POST("/payments/customer", h.RecordCustomerPayment)
		financeGroup.POST("/payments/supplier", h.RecordSupplierPayment)
		financeGroup.POST("/refunds", h.RecordCustomerRefund)
		financeGroup.POST("/expenses", h.RecordOperatingExpense)
		financeGroup.GET("/transactions", h.ListTransactions)
		financeGroup.GET("/transactions/:id", h.GetTransaction)
		financeGroup.POST("/transactions/:id/reconcile", h.Reconcile)
	}
}
