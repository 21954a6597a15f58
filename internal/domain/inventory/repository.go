package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// InventoryMovementRepository defines the interface for movement persistence
type InventoryMovementRepository interface {
	// Create persists a new movement
	Create(ctx context.Context, movement *InventoryMovement) error

	// Update persists changes to an existing movement (journal link, notes)
	Update(ctx context.Context, movement *InventoryMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryMovement, error)

	// FindByMovementNumber finds a movement by its unique number
	FindByMovementNumber(ctx context.Context, movementNumber string) (*InventoryMovement, error)

	// FindByProduct finds movements for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]InventoryMovement, error)

	// FindByPeriod finds movements within [start, end)
	FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]InventoryMovement, error)
}
