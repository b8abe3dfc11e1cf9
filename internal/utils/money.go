package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidAmount is returned for money input that cannot be read as a
// non-negative dollar amount.
var ErrInvalidAmount = fmt.Errorf("invalid amount: %w", apperrors.ErrValidation)

var (
	moneyInputCleaner = strings.NewReplacer("$", "", ",", "")
	maxCents          = decimal.NewFromInt(math.MaxInt64)
	usdPrinter        = message.NewPrinter(language.AmericanEnglish)
)

// ParseMoneyToCents converts dollar input to cents.
// Handles "20" => 2000, "20.5" => 2050, "$20.50" => 2050, "1,000" => 100000.
// Fractions of a cent are rounded half away from zero. Negative, empty and
// non-numeric input is rejected with ErrInvalidAmount.
func ParseMoneyToCents(value string) (int64, error) {
	cleaned := strings.TrimSpace(moneyInputCleaner.Replace(value))
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, value)
	}
	cents := amount.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, value)
	}
	return cents.IntPart(), nil
}

// FormatMoney renders cents as US dollars, e.g. 12345 -> "$123.45",
// -12345 -> "-$123.45", 123456 -> "$1,234.56".
func FormatMoney(cents int64) string {
	sign := ""
	amount := decimal.NewFromInt(cents)
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	dollars := amount.Shift(-2)
	whole := dollars.Truncate(0)
	fraction := dollars.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, usdPrinter.Sprint(number.Decimal(whole.IntPart())), fraction)
}

// CentsToDollars returns cents as an exact two-place decimal, for API responses.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
