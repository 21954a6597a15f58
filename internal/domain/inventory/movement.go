package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// MovementType represents the type of inventory movement
type MovementType string

const (
	// MovementTypePurchase represents stock received from a supplier
	MovementTypePurchase MovementType = "PURCHASE"
	// MovementTypeSale represents stock sold to a customer
	MovementTypeSale MovementType = "SALE"
	// MovementTypeSaleReturn represents stock returned by a customer
	MovementTypeSaleReturn MovementType = "SALE_RETURN"
	// MovementTypePurchaseReturn represents stock returned to a supplier
	MovementTypePurchaseReturn MovementType = "PURCHASE_RETURN"
	// MovementTypeAdjustment represents a manual stock correction, signed by quantity
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	// MovementTypeLoss represents stock written off (damage, theft, expiry)
	MovementTypeLoss MovementType = "LOSS"
	// MovementTypeTransfer represents stock moved between locations
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeReservation represents stock reserved for a pending order
	MovementTypeReservation MovementType = "RESERVATION"
	// MovementTypeReservationRelease represents a reservation being released
	MovementTypeReservationRelease MovementType = "RESERVATION_RELEASE"
	// MovementTypeFulfillment represents reserved stock leaving on shipment
	MovementTypeFulfillment MovementType = "FULFILLMENT"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase,
		MovementTypeSale,
		MovementTypeSaleReturn,
		MovementTypePurchaseReturn,
		MovementTypeAdjustment,
		MovementTypeLoss,
		MovementTypeTransfer,
		MovementTypeReservation,
		MovementTypeReservationRelease,
		MovementTypeFulfillment:
		return true
	}
	return false
}

// RequiresAccounting returns true for movement types that must end up linked to
// a journal entry. Reservations, releases and transfers shuffle stock without
// changing its value, so they never post.
func (t MovementType) RequiresAccounting() bool {
	switch t {
	case MovementTypePurchase,
		MovementTypeSale,
		MovementTypeSaleReturn,
		MovementTypePurchaseReturn,
		MovementTypeAdjustment,
		MovementTypeLoss,
		MovementTypeFulfillment:
		return true
	}
	return false
}

// HasCashFlowMapping returns true for movement types that additionally produce
// cash-flow-level financial transactions
func (t MovementType) HasCashFlowMapping() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeFulfillment:
		return true
	}
	return false
}

// InventoryMovement is the immutable record of one stock change. After creation
// it is mutated only to attach a journal entry reference or to append an
// accounting-error annotation to its notes.
type InventoryMovement struct {
	shared.BaseEntity
	MovementNumber string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"movement_number"`
	MovementDate   time.Time       `gorm:"type:timestamptz;not null;index" json:"movement_date"`
	Type           MovementType    `gorm:"type:varchar(30);not null;index" json:"type"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU            string          `gorm:"type:varchar(100)" json:"sku"`
	ProductName    string          `gorm:"type:varchar(255)" json:"product_name"`
	FromLocation   string          `gorm:"type:varchar(100)" json:"from_location"`
	ToLocation     string          `gorm:"type:varchar(100)" json:"to_location"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`   // Signed; negative for shrinkage adjustments
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`  // Cost per unit at time of movement
	TotalCost      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_cost"` // |Quantity| * UnitCost
	OrderID        *uuid.UUID      `gorm:"type:uuid;index" json:"order_id"`
	DocumentNumber string          `gorm:"type:varchar(50)" json:"document_number"`
	Notes          string          `gorm:"type:text" json:"notes"`
	JournalEntryID *uuid.UUID      `gorm:"type:uuid;index" json:"journal_entry_id"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid" json:"created_by"`
}

// TableName returns the table name for GORM
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// NewInventoryMovement creates a new inventory movement.
// TotalCost is derived as |quantity| * unitCost.
func NewInventoryMovement(
	movementNumber string,
	movementType MovementType,
	productID uuid.UUID,
	sku string,
	productName string,
	quantity decimal.Decimal,
	unitCost decimal.Decimal,
	createdBy uuid.UUID,
) (*InventoryMovement, error) {
	if movementNumber == "" {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_NUMBER", "Movement number cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type is not valid")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &InventoryMovement{
		BaseEntity:     shared.NewBaseEntity(),
		MovementNumber: movementNumber,
		MovementDate:   time.Now(),
		Type:           movementType,
		ProductID:      productID,
		SKU:            sku,
		ProductName:    productName,
		Quantity:       quantity,
		UnitCost:       unitCost,
		TotalCost:      valueobject.NewMoneyUSD(quantity.Abs().Mul(unitCost)).Round(2).Amount(),
		CreatedBy:      createdBy,
	}, nil
}

// WithLocations sets the from/to locations
func (m *InventoryMovement) WithLocations(from, to string) *InventoryMovement {
	m.FromLocation = from
	m.ToLocation = to
	return m
}

// WithOrderID sets the originating order reference
func (m *InventoryMovement) WithOrderID(orderID uuid.UUID) *InventoryMovement {
	m.OrderID = &orderID
	return m
}

// WithDocumentNumber sets the source document number
func (m *InventoryMovement) WithDocumentNumber(documentNumber string) *InventoryMovement {
	m.DocumentNumber = documentNumber
	return m
}

// WithNotes sets the free-form notes
func (m *InventoryMovement) WithNotes(notes string) *InventoryMovement {
	m.Notes = notes
	return m
}

// WithMovementDate overrides the movement date
func (m *InventoryMovement) WithMovementDate(date time.Time) *InventoryMovement {
	m.MovementDate = date
	return m
}

// AttachJournalEntry links the movement to the journal entry that posted it
func (m *InventoryMovement) AttachJournalEntry(entryID uuid.UUID) {
	m.JournalEntryID = &entryID
}

// AppendAccountingError annotates the movement's notes with an accounting-stage
// failure so the movement is never silently left unposted
func (m *InventoryMovement) AppendAccountingError(message string) {
	annotation := "Accounting error: " + message
	if m.Notes == "" {
		m.Notes = annotation
		return
	}
	m.Notes = m.Notes + " | " + annotation
}

// IsPosted returns true if the movement is linked to a journal entry
func (m *InventoryMovement) IsPosted() bool {
	return m.JournalEntryID != nil
}
