package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaccounting "github.com/stockledger/backend/internal/application/accounting"
	appfinance "github.com/stockledger/backend/internal/application/finance"
	"github.com/stockledger/backend/internal/domain/accounting"

	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/sequence"
	"go.uber.org/zap"
)

// InventoryTransactionRecorder orchestrates the movement-to-ledger pipeline:
// persist the movement, post the journal entry, link it back, then record the
// cash-flow transactions. Each stage past the first is best effort - a failure
// is absorbed and annotated rather than rolling back the upstream write.
type InventoryTransactionRecorder struct {
	movements inventory.InventoryMovementRepository
	engine    *appaccounting.JournalPostingEngine
	financial *appfinance.FinancialTransactionRecorder
	sequences sequence.Generator
	logger    *zap.Logger
}

// NewInventoryTransactionRecorder creates a new recorder
func NewInventoryTransactionRecorder(
	movements inventory.InventoryMovementRepository,
	engine *appaccounting.JournalPostingEngine,
	financial *appfinance.FinancialTransactionRecorder,
	sequences sequence.Generator,
	logger *zap.Logger,
) *InventoryTransactionRecorder {
	return &InventoryTransactionRecorder{
		movements: movements,
		engine:    engine,
		financial: financial,
		sequences: sequences,
		logger:    logger,
	}
}

// RecordTransaction records one inventory movement and cascades it into the
// ledger. The returned movement is always persisted; callers detect an
// accounting-stage failure by a nil JournalEntryID and an "Accounting error"
// annotation in the notes, not by an error return.
func (r *InventoryTransactionRecorder) RecordTransaction(
	ctx context.Context,
	req RecordMovementRequest,
) (*inventory.InventoryMovement, error) {
	movement, err := r.persistMovement(ctx, req)
	if err != nil {
		// Stage 1 is the source of truth; its failure propagates.
		return nil, err
	}

	entry := r.postJournal(ctx, movement, req.Actor)

	if entry != nil && movement.Type.HasCashFlowMapping() {
		r.recordFinancials(ctx, movement, entry, req.Actor)
	}

	return movement, nil
}

// GetMovement returns one movement by id
func (r *InventoryTransactionRecorder) GetMovement(ctx context.Context, id uuid.UUID) (*inventory.InventoryMovement, error) {
	return r.movements.FindByID(ctx, id)
}

// ListMovementsByProduct returns movements for a product
func (r *InventoryTransactionRecorder) ListMovementsByProduct(
	ctx context.Context,
	productID uuid.UUID,
	filter shared.Filter,
) ([]inventory.InventoryMovement, error) {
	return r.movements.FindByProduct(ctx, productID, filter)
}

// ListMovementsByPeriod returns movements dated within [start, end)
func (r *InventoryTransactionRecorder) ListMovementsByPeriod(
	ctx context.Context,
	start, end time.Time,
	filter shared.Filter,
) ([]inventory.InventoryMovement, error) {
	return r.movements.FindByPeriod(ctx, start, end, filter)
}

func (r *InventoryTransactionRecorder) persistMovement(
	ctx context.Context,
	req RecordMovementRequest,
) (*inventory.InventoryMovement, error) {
	movement, err := inventory.NewInventoryMovement(
		r.sequences.Next(sequence.PrefixMovement),
		req.Type,
		req.ProductID,
		req.SKU,
		req.ProductName,
		req.Quantity,
		req.UnitCost,
		req.Actor,
	)
	if err != nil {
		return nil, err
	}
	movement.WithLocations(req.FromLocation, req.ToLocation).
		WithDocumentNumber(req.DocumentNumber).
		WithNotes(req.Notes)
	if req.OrderID != nil {
		movement.WithOrderID(*req.OrderID)
	}
	if req.MovementDate != nil {
		movement.WithMovementDate(*req.MovementDate)
	}

	if err := r.movements.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to persist inventory movement: %w", err)
	}

	r.logger.Info("inventory movement recorded",
		zap.String("movement_number", movement.MovementNumber),
		zap.String("movement_type", movement.Type.String()),
		zap.String("product_id", movement.ProductID.String()),
		zap.String("quantity", movement.Quantity.String()),
		zap.String("total_cost", movement.TotalCost.StringFixed(2)),
	)
	return movement, nil
}

// postJournal runs stage 2. A recoverable failure is annotated onto the
// movement and swallowed; the movement stays valid and queryable unposted.
func (r *InventoryTransactionRecorder) postJournal(
	ctx context.Context,
	movement *inventory.InventoryMovement,
	actor uuid.UUID,
) *accounting.JournalEntry {
	entry, err := r.engine.Post(ctx, movement, actor)
	if err != nil {
		var stageErr *shared.StageError
		if errors.As(err, &stageErr) && !stageErr.Recoverable {
			// Unsupported types cannot happen for validated movements; if one
			// slips through, it is still annotated rather than dropped.
			r.logger.Error("journal posting rejected movement",
				zap.String("movement_id", movement.ID.String()),
				zap.String("movement_type", movement.Type.String()),
				zap.Error(err),
			)
		} else {
			r.logger.Error("journal posting failed",
				zap.String("movement_id", movement.ID.String()),
				zap.String("movement_type", movement.Type.String()),
				zap.String("product_id", movement.ProductID.String()),
				zap.Error(err),
			)
		}
		movement.AppendAccountingError(err.Error())
		if updateErr := r.movements.Update(ctx, movement); updateErr != nil {
			r.logger.Error("failed to annotate movement with accounting error",
				zap.String("movement_id", movement.ID.String()),
				zap.Error(updateErr),
			)
		}
		return nil
	}
	if entry == nil {
		// Movement type carries no accounting impact.
		return nil
	}

	movement.AttachJournalEntry(entry.ID)
	if err := r.movements.Update(ctx, movement); err != nil {
		r.logger.Error("failed to link journal entry to movement",
			zap.String("movement_id", movement.ID.String()),
			zap.String("entry_number", entry.EntryNumber),
			zap.Error(err),
		)
		movement.AppendAccountingError("journal entry created but link not persisted: " + err.Error())
		return entry
	}
	return entry
}

// recordFinancials runs stage 3. Failures are logged and absorbed; inventory
// and journal state are already committed and are never rolled back by a
// downstream reporting failure.
func (r *InventoryTransactionRecorder) recordFinancials(
	ctx context.Context,
	movement *inventory.InventoryMovement,
	entry *accounting.JournalEntry,
	actor uuid.UUID,
) {
	var err error
	switch movement.Type {
	case inventory.MovementTypeSale, inventory.MovementTypeFulfillment:
		_, err = r.financial.RecordSale(ctx, movement, entry, actor)
	case inventory.MovementTypePurchase:
		_, err = r.financial.RecordPurchase(ctx, movement, entry, actor)
	}
	if err != nil {
		r.logger.Error("financial transaction recording failed",
			zap.String("movement_id", movement.ID.String()),
			zap.String("movement_type", movement.Type.String()),
			zap.String("product_id", movement.ProductID.String()),
			zap.Error(err),
		)
	}
}
