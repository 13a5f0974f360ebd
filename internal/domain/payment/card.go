// Package payment contains pure card-validation predicates applied at the
// checkout boundary, before any request reaches a payment gateway.
package payment

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// stripNonDigits removes every non-digit rune, so formatted input such as
// "4532 0151 1283 0366" or "12/27" validates the same as the bare digits.
func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// ValidateCardNumber reports whether the card number has a plausible length
// (13-19 digits) and passes the Luhn checksum.
func ValidateCardNumber(cardNumber string) bool {
	cleaned := stripNonDigits(cardNumber)
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// ValidateExpiryDate reports whether the expiry is a valid MMYY that is not
// strictly in the past. The current month is still valid.
func ValidateExpiryDate(expiry string) bool {
	return ValidateExpiryDateAt(expiry, time.Now())
}

// ValidateExpiryDateAt is ValidateExpiryDate against an explicit reference
// time, so callers and tests are not coupled to the wall clock.
func ValidateExpiryDateAt(expiry string, now time.Time) bool {
	cleaned := stripNonDigits(expiry)
	if len(cleaned) != 4 {
		return false
	}

	month, err := strconv.Atoi(cleaned[:2])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(cleaned[2:])
	if err != nil {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return false
	}

	return true
}

// SplitExpiry breaks an expiry into its MM and YY parts using the same
// digit-stripped form the validator accepts, so "12/29", "12-29" and "1229"
// all split identically. Input that would not validate yields empty parts.
func SplitExpiry(expiry string) (month, year string) {
	cleaned := stripNonDigits(expiry)
	if len(cleaned) != 4 {
		return "", ""
	}

	return cleaned[:2], cleaned[2:]
}

// ValidateCVV reports whether the security code is 3 or 4 digits.
func ValidateCVV(cvv string) bool {
	cleaned := stripNonDigits(cvv)

	return len(cleaned) == 3 || len(cleaned) == 4
}
