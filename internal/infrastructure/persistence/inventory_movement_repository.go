package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryMovementRepository implements InventoryMovementRepository using GORM
type GormInventoryMovementRepository struct {
	db *gorm.DB
}

// NewGormInventoryMovementRepository creates a new GormInventoryMovementRepository
func NewGormInventoryMovementRepository(db *gorm.DB) *GormInventoryMovementRepository {
	return &GormInventoryMovementRepository{db: db}
}

// Create persists a new movement
func (r *GormInventoryMovementRepository) Create(ctx context.Context, movement *inventory.InventoryMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing movement
func (r *GormInventoryMovementRepository) Update(ctx context.Context, movement *inventory.InventoryMovement) error {
	result := r.db.WithContext(ctx).Save(movement)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a movement by its ID
func (r *GormInventoryMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryMovement, error) {
	var movement inventory.InventoryMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByMovementNumber finds a movement by its unique number
func (r *GormInventoryMovementRepository) FindByMovementNumber(ctx context.Context, movementNumber string) (*inventory.InventoryMovement, error) {
	var movement inventory.InventoryMovement
	if err := r.db.WithContext(ctx).First(&movement, "movement_number = ?", movementNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByProduct finds movements for a product
func (r *GormInventoryMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryMovement, error) {
	var movements []inventory.InventoryMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryMovement{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByPeriod finds movements dated within [start, end)
func (r *GormInventoryMovementRepository) FindByPeriod(ctx context.Context, start, end time.Time, filter shared.Filter) ([]inventory.InventoryMovement, error) {
	var movements []inventory.InventoryMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryMovement{}).
			Where("movement_date >= ? AND movement_date < ?", start, end),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "sku":
			query = query.Where("sku = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "posted":
			if value == true {
				query = query.Where("journal_entry_id IS NOT NULL")
			} else {
				query = query.Where("journal_entry_id IS NULL")
			}
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MovementSortFields, "movement_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormInventoryMovementRepository implements InventoryMovementRepository
var _ inventory.InventoryMovementRepository = (*GormInventoryMovementRepository)(nil)
