package accounting

import (
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
)

// AccountRef names a well-known account in the chart of accounts. The directory
// materializes the backing record lazily on first use.
type AccountRef struct {
	Code string
	Name string
	Type AccountType
}

// Well-known accounts referenced by the posting policy
var (
	AccountInventory = AccountRef{Code: "1400", Name: "Inventory", Type: AccountTypeAsset}
	AccountCash      = AccountRef{Code: "1000", Name: "Cash", Type: AccountTypeAsset}
	AccountPayables  = AccountRef{Code: "2100", Name: "Accounts Payable - Suppliers", Type: AccountTypeLiability}
	AccountCOGS      = AccountRef{Code: "5000", Name: "Cost of Goods Sold", Type: AccountTypeExpense}
	AccountInvLoss   = AccountRef{Code: "5200", Name: "Inventory Loss", Type: AccountTypeExpense}
	AccountOtherInc  = AccountRef{Code: "4900", Name: "Other Operating Income", Type: AccountTypeRevenue}
	AccountOtherExp  = AccountRef{Code: "5900", Name: "Other Operating Expenses", Type: AccountTypeExpense}
)

// PostingRule is the debit/credit account pair selected for one movement
type PostingRule struct {
	Debit  AccountRef
	Credit AccountRef
}

// RuleFor selects the debit/credit account pair for a movement type. The table
// is fixed; adjustments pick a pair based on the sign of the quantity.
// Movement types that do not require accounting, and unknown types, are an
// error here - the posting engine filters non-accounting types before calling.
func RuleFor(movementType inventory.MovementType, quantity decimal.Decimal) (PostingRule, error) {
	switch movementType {
	case inventory.MovementTypePurchase:
		return PostingRule{Debit: AccountInventory, Credit: AccountPayables}, nil
	case inventory.MovementTypeSale, inventory.MovementTypeFulfillment:
		return PostingRule{Debit: AccountCOGS, Credit: AccountInventory}, nil
	case inventory.MovementTypeSaleReturn:
		return PostingRule{Debit: AccountInventory, Credit: AccountCOGS}, nil
	case inventory.MovementTypePurchaseReturn:
		return PostingRule{Debit: AccountPayables, Credit: AccountInventory}, nil
	case inventory.MovementTypeAdjustment:
		if quantity.IsPositive() {
			return PostingRule{Debit: AccountInventory, Credit: AccountOtherInc}, nil
		}
		return PostingRule{Debit: AccountOtherExp, Credit: AccountInventory}, nil
	case inventory.MovementTypeLoss:
		return PostingRule{Debit: AccountInvLoss, Credit: AccountInventory}, nil
	}
	return PostingRule{}, shared.NewDomainError("UNSUPPORTED_MOVEMENT_TYPE",
		"No posting rule defined for movement type "+movementType.String())
}
