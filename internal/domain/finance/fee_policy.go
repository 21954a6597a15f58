package finance

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// PaymentProvider identifies the payment processor for a customer payment
type PaymentProvider string

const (
	PaymentProviderStripe         PaymentProvider = "STRIPE"
	PaymentProviderPayPal         PaymentProvider = "PAYPAL"
	PaymentProviderBankTransfer   PaymentProvider = "BANK_TRANSFER"
	PaymentProviderCashOnDelivery PaymentProvider = "CASH_ON_DELIVERY"
)

// ParsePaymentProvider normalizes a free-form provider name
func ParsePaymentProvider(s string) PaymentProvider {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch normalized {
	case "STRIPE":
		return PaymentProviderStripe
	case "PAYPAL":
		return PaymentProviderPayPal
	case "BANK_TRANSFER", "BANKTRANSFER", "WIRE":
		return PaymentProviderBankTransfer
	case "CASH_ON_DELIVERY", "CASHONDELIVERY", "COD":
		return PaymentProviderCashOnDelivery
	}
	return PaymentProvider(normalized)
}

// feeSchedule holds the percentage and fixed components of a provider's fee
type feeSchedule struct {
	percent decimal.Decimal
	fixed   decimal.Decimal
}

var (
	feeSchedules = map[PaymentProvider]feeSchedule{
		PaymentProviderStripe:         {percent: decimal.NewFromFloat(0.029), fixed: decimal.NewFromFloat(0.30)},
		PaymentProviderPayPal:         {percent: decimal.NewFromFloat(0.0349), fixed: decimal.NewFromFloat(0.49)},
		PaymentProviderBankTransfer:   {percent: decimal.Zero, fixed: decimal.Zero},
		PaymentProviderCashOnDelivery: {percent: decimal.Zero, fixed: decimal.Zero},
	}

	defaultFeeSchedule = feeSchedule{percent: decimal.NewFromFloat(0.03), fixed: decimal.Zero}
)

// ProcessingFee computes the payment processing fee for a provider, rounded to
// 2 decimals (half away from zero). Unknown providers fall back to the default
// schedule.
func ProcessingFee(provider PaymentProvider, amount decimal.Decimal) decimal.Decimal {
	schedule, ok := feeSchedules[provider]
	if !ok {
		schedule = defaultFeeSchedule
	}
	fee := valueobject.NewMoneyUSD(amount.Mul(schedule.percent).Add(schedule.fixed))
	return fee.Round(2).Amount()
}
