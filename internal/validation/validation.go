package validation

import (
	"regexp"
	"strconv"
	"time"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
)

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{14,19}$`)
	yearRe       = regexp.MustCompile(`^[0-9]{4}$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
)

// ValidCardNumber reports whether s is an all-digit string of 14 to 19
// characters. Separators and letters are not accepted.
func ValidCardNumber(s string) bool {
	return cardNumberRe.MatchString(s)
}

// ValidExpirationMonth accepts zero-padded and unpadded months in 1..12.
func ValidExpirationMonth(s string) bool {
	if !digitsRe.MatchString(s) {
		return false
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return m >= 1 && m <= 12
}

// ValidExpirationYear requires exactly 4 digits and a year no earlier than
// the calendar year of at.
func ValidExpirationYear(s string, at time.Time) bool {
	if !yearRe.MatchString(s) {
		return false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return y >= at.Year()
}

// ValidExpirationDate applies the month-granularity expiry rule: a card is
// valid through the last month printed on it. No day-of-month check.
func ValidExpirationDate(month, year string, at time.Time) bool {
	if !ValidExpirationMonth(month) || !ValidExpirationYear(year, at) {
		return false
	}
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	if y > at.Year() {
		return true
	}
	return m >= int(at.Month())
}

// ValidCurrency requires a recognized ISO 4217 alphabetic code. The lookup
// table is static; lowercase codes are not accepted.
func ValidCurrency(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	_, ok := currencyCodes[s]
	return ok
}

// ValidAmount requires a strictly positive integer.
func ValidAmount(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return n > 0
}

// ValidCVV is a transport-input rule, not part of the business aggregate.
func ValidCVV(s string) bool {
	return cvvRe.MatchString(s)
}

// Violation names a failed rule for diagnostics.
type Violation struct {
	Field  string
	Reason string
}

// Check runs every business rule and returns the failures. An empty result
// means the request is valid.
func Check(req payment.Request, at time.Time) []Violation {
	var vs []Violation
	if !ValidCardNumber(req.CardNumber) {
		vs = append(vs, Violation{Field: "card_number", Reason: "must be 14-19 digits"})
	}
	if !ValidExpirationDate(req.ExpirationMonth, req.ExpirationYear, at) {
		vs = append(vs, Violation{Field: "card_expiration", Reason: "card is expired or date is malformed"})
	}
	if !ValidCurrency(req.Currency) {
		vs = append(vs, Violation{Field: "currency", Reason: "must be a recognized ISO 4217 code"})
	}
	if !ValidAmount(req.Amount) {
		vs = append(vs, Violation{Field: "amount", Reason: "must be a positive integer"})
	}
	return vs
}

// ValidateRequest is the aggregate contract consumed by the processor: the
// conjunction of the card number, expiration date, currency and amount rules.
// CVV format is checked at the transport layer.
func ValidateRequest(req payment.Request, at time.Time) bool {
	return len(Check(req, at)) == 0
}
