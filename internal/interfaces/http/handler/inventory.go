package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinventory "github.com/stockledger/backend/internal/application/inventory"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory movement API endpoints
type InventoryHandler struct {
	BaseHandler
	recorder *appinventory.InventoryTransactionRecorder
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(recorder *appinventory.InventoryTransactionRecorder) *InventoryHandler {
	return &InventoryHandler{recorder: recorder}
}

// ===================== Request/Response DTOs =====================

// RecordMovementRequest is the payload for recording an inventory movement
type RecordMovementRequest struct {
	Type           string          `json:"type" binding:"required"`
	ProductID      string          `json:"product_id" binding:"required,uuid"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	FromLocation   string          `json:"from_location"`
	ToLocation     string          `json:"to_location"`
	OrderID        string          `json:"order_id" binding:"omitempty,uuid"`
	DocumentNumber string          `json:"document_number"`
	Notes          string          `json:"notes"`
	MovementDate   *time.Time      `json:"movement_date"`
}

// MovementResponse represents an inventory movement in API responses
type MovementResponse struct {
	ID             string     `json:"id"`
	MovementNumber string     `json:"movement_number"`
	MovementDate   time.Time  `json:"movement_date"`
	Type           string     `json:"type"`
	ProductID      string     `json:"product_id"`
	SKU            string     `json:"sku"`
	ProductName    string     `json:"product_name"`
	FromLocation   string     `json:"from_location,omitempty"`
	ToLocation     string     `json:"to_location,omitempty"`
	Quantity       string     `json:"quantity"`
	UnitCost       string     `json:"unit_cost"`
	TotalCost      string     `json:"total_cost"`
	OrderID        *string    `json:"order_id,omitempty"`
	DocumentNumber string     `json:"document_number,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	JournalEntryID *string    `json:"journal_entry_id,omitempty"`
	Posted         bool       `json:"posted"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toMovementResponse(m *inventory.InventoryMovement) MovementResponse {
	resp := MovementResponse{
		ID:             m.ID.String(),
		MovementNumber: m.MovementNumber,
		MovementDate:   m.MovementDate,
		Type:           m.Type.String(),
		ProductID:      m.ProductID.String(),
		SKU:            m.SKU,
		ProductName:    m.ProductName,
		FromLocation:   m.FromLocation,
		ToLocation:     m.ToLocation,
		Quantity:       m.Quantity.String(),
		UnitCost:       m.UnitCost.StringFixed(2),
		TotalCost:      m.TotalCost.StringFixed(2),
		DocumentNumber: m.DocumentNumber,
		Notes:          m.Notes,
		Posted:         m.IsPosted(),
		CreatedBy:      m.CreatedBy.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.OrderID != nil {
		orderID := m.OrderID.String()
		resp.OrderID = &orderID
	}
	if m.JournalEntryID != nil {
		entryID := m.JournalEntryID.String()
		resp.JournalEntryID = &entryID
	}
	return resp
}

func toMovementResponses(movements []inventory.InventoryMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = toMovementResponse(&movements[i])
	}
	return responses
}

// ===================== Handlers =====================

// RecordMovement records an inventory movement and cascades it into the ledger
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movementType := inventory.MovementType(strings.ToUpper(req.Type))
	if !movementType.IsValid() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Unknown movement type "+req.Type)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	appReq := appinventory.RecordMovementRequest{
		Type:           movementType,
		ProductID:      productID,
		SKU:            req.SKU,
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		UnitCost:       req.UnitCost,
		FromLocation:   req.FromLocation,
		ToLocation:     req.ToLocation,
		DocumentNumber: req.DocumentNumber,
		Notes:          req.Notes,
		MovementDate:   req.MovementDate,
		Actor:          actor,
	}
	if req.OrderID != "" {
		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			h.BadRequest(c, "Invalid order ID format")
			return
		}
		appReq.OrderID = &orderID
	}

	movement, err := h.recorder.RecordTransaction(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toMovementResponse(movement))
}

// GetMovement retrieves one movement by ID
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	movement, err := h.recorder.GetMovement(c.Request.Context(), movementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toMovementResponse(movement))
}

// ListMovementsByProduct lists movements for one product
func (h *InventoryHandler) ListMovementsByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.recorder.ListMovementsByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toMovementResponses(movements))
}

// ListMovementsByPeriod lists movements dated within [from, to)
func (h *InventoryHandler) ListMovementsByPeriod(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.recorder.ListMovementsByPeriod(c.Request.Context(), start, end, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toMovementResponses(movements))
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventoryGroup := rg.Group("/inventory")
	{
		inventoryGroup.POST("/movements", h.RecordMovement)
		inventoryGroup.GET("/movements", h.ListMovementsByPeriod)
		inventoryGroup.GET("/movements/:id", h.GetMovement)
		inventoryGroup.GET("/products/:productId/movements", h.ListMovementsByProduct)
	}
}
