package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/inventory"
)

// RecordMovementRequest carries the inputs for recording one inventory movement
type RecordMovementRequest struct {
	Type           inventory.MovementType
	ProductID      uuid.UUID
	SKU            string
	ProductName    string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	FromLocation   string
	ToLocation     string
	OrderID        *uuid.UUID
	DocumentNumber string
	Notes          string
	MovementDate   *time.Time
	Actor          uuid.UUID
}
