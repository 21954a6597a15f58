package finance

import "strings"

// ClassifyExpenseCategory maps a free-form operating-expense category to the
// transaction type it is reported under
func ClassifyExpenseCategory(category string) TransactionType {
	normalized := strings.ToLower(strings.TrimSpace(category))
	switch {
	case containsAny(normalized, "shipping", "freight", "delivery"):
		return TransactionTypeShippingCost
	case containsAny(normalized, "tax"):
		return TransactionTypeTaxTransaction
	case containsAny(normalized, "discount", "promotion"):
		return TransactionTypeSalesDiscount
	case containsAny(normalized, "commission", "affiliate"):
		return TransactionTypeCommissionPayment
	}
	return TransactionTypeOperatingExpense
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
