package handler

import (
	"github.com/gin-gonic/gin"
	appfinance "github.com/stockledger/backend/internal/application/finance"
)

// ReportHandler handles financial reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reporting *appfinance.FinancialReportingEngine
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reporting *appfinance.FinancialReportingEngine) *ReportHandler {
	return &ReportHandler{reporting: reporting}
}

// CashFlow reports cash inflows and outflows for a period
func (h *ReportHandler) CashFlow(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reporting.CashFlowSummary(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ReceivablesAging reports outstanding receivables bucketed by age
func (h *ReportHandler) ReceivablesAging(c *gin.Context) {
	summary, err := h.reporting.ReceivablesAging(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// PayablesAging reports outstanding payables bucketed by age
func (h *ReportHandler) PayablesAging(c *gin.Context) {
	summary, err := h.reporting.PayablesAging(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// RegisterRoutes registers reporting routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reportGroup := rg.Group("/reports")
	{
		reportGroup.GET("/cash-flow", h.CashFlow)
		reportGroup.GET("/receivables-aging", h.ReceivablesAging)
		reportGroup.GET("/payables-aging", h.PayablesAging)
	}
}
