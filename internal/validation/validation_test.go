package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/validation"
)

// All expiry rules are evaluated against a pinned reference time.
var at = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"16 digits", "4242424242424242", true},
		{"14 digits lower bound", "12345678901234", true},
		{"19 digits upper bound", "1234567890123456789", true},
		{"13 digits too short", "1234567890123", false},
		{"20 digits too long", "12345678901234567890", false},
		{"letters", "42424242424242ab", false},
		{"separators", "4242-4242-4242-4242", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidCardNumber(tt.in))
		})
	}
}

func TestValidExpirationMonth(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"01", true},
		{"12", true},
		{"7", true},
		{"0", false},
		{"13", false},
		{"-1", false},
		{"+7", false},
		{"ab", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.ValidExpirationMonth(tt.in), "month %q", tt.in)
	}
}

func TestValidExpirationYear(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2025", true},
		{"2030", true},
		{"2024", false},
		{"25", false},
		{"20255", false},
		{"20a5", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.ValidExpirationYear(tt.in, at), "year %q", tt.in)
	}
}

func TestValidExpirationDate(t *testing.T) {
	tests := []struct {
		name        string
		month, year string
		want        bool
	}{
		{"current month current year", "6", "2025", true},
		{"previous month current year", "5", "2025", false},
		{"later month current year", "12", "2025", true},
		{"next year any month", "1", "2026", true},
		{"previous year any month", "12", "2024", false},
		{"unpadded month", "7", "2025", true},
		{"zero-padded month", "07", "2025", true},
		{"bad month", "13", "2026", false},
		{"bad year", "202", "202", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidExpirationDate(tt.month, tt.year, at))
		})
	}
}

func TestValidCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"USD", true},
		{"EUR", true},
		{"GBP", true},
		{"usd", false},
		{"US", false},
		{"USDD", false},
		{"XXX", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.ValidCurrency(tt.in), "currency %q", tt.in)
	}
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"1000", true},
		{"0", false},
		{"-5", false},
		{"10.50", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.ValidAmount(tt.in), "amount %q", tt.in)
	}
}

func TestValidCVV(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.ValidCVV(tt.in), "cvv %q", tt.in)
	}
}

func TestValidateRequest(t *testing.T) {
	valid := payment.Request{
		CardNumber:      "4242424242424242",
		ExpirationMonth: "12",
		ExpirationYear:  "2030",
		CVV:             "123",
		Currency:        "USD",
		Amount:          "1000",
	}

	assert.True(t, validation.ValidateRequest(valid, at))
	assert.Empty(t, validation.Check(valid, at))

	invalid := valid
	invalid.CardNumber = "1234"
	invalid.Amount = "0"
	assert.False(t, validation.ValidateRequest(invalid, at))

	violations := validation.Check(invalid, at)
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"card_number", "amount"}, fields)
}
