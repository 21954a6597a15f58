package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePaymentProvider(t *testing.T) {
	tests := []struct {
		input string
		want  PaymentProvider
	}{
		{"stripe", PaymentProviderStripe},
		{"Stripe", PaymentProviderStripe},
		{" STRIPE ", PaymentProviderStripe},
		{"paypal", PaymentProviderPayPal},
		{"bank transfer", PaymentProviderBankTransfer},
		{"banktransfer", PaymentProviderBankTransfer},
		{"wire", PaymentProviderBankTransfer},
		{"cash on delivery", PaymentProviderCashOnDelivery},
		{"COD", PaymentProviderCashOnDelivery},
		{"square", PaymentProvider("SQUARE")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePaymentProvider(tt.input), "input %q", tt.input)
	}
}

func TestProcessingFee(t *testing.T) {
	tests := []struct {
		name     string
		provider PaymentProvider
		amount   string
		want     string
	}{
		{"stripe", PaymentProviderStripe, "100.00", "3.20"},
		{"stripe small", PaymentProviderStripe, "1.00", "0.33"},
		{"paypal", PaymentProviderPayPal, "100.00", "3.98"},
		{"bank transfer free", PaymentProviderBankTransfer, "100.00", "0.00"},
		{"cod free", PaymentProviderCashOnDelivery, "100.00", "0.00"},
		{"unknown default 3 percent", PaymentProvider("SQUARE"), "100.00", "3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			fee := ProcessingFee(tt.provider, amount)
			assert.Equal(t, tt.want, fee.StringFixed(2))
		})
	}
}

func TestProcessingFee_Rounding(t *testing.T) {
	// 10.10 * 0.029 + 0.30 = 0.59290 rounds to 0.59
	fee := ProcessingFee(PaymentProviderStripe, decimal.RequireFromString("10.10"))
	assert.Equal(t, "0.59", fee.StringFixed(2))

	// 17.35 * 0.029 + 0.30 = 0.803150 rounds to 0.80
	fee = ProcessingFee(PaymentProviderStripe, decimal.RequireFromString("17.35"))
	assert.Equal(t, "0.80", fee.StringFixed(2))

	// 25.00 * 0.029 + 0.30 = 1.025 exactly; half rounds away from zero, not to even
	fee = ProcessingFee(PaymentProviderStripe, decimal.RequireFromString("25.00"))
	assert.Equal(t, "1.03", fee.StringFixed(2))
}
