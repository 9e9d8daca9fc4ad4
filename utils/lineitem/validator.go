package lineitem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Reasons a candidate is dropped.
var (
	ErrEmptyDescription       = errors.New("empty description")
	ErrBoilerplateDescription = errors.New("description matches boilerplate")
	ErrDescriptionLength      = errors.New("description length out of range")
	ErrNonTextDescription     = errors.New("description is not text")
	ErrNegativeValue          = errors.New("negative value")
	ErrQuantityOutOfRange     = errors.New("quantity out of range")
	ErrUnitPriceOutOfRange    = errors.New("unit price out of range")
	ErrAmountOutOfRange       = errors.New("amount out of range")
)

// Validate returns nil when c is plausible enough to keep. Arithmetic
// mismatches are never a reason to reject; see CheckArithmetic.
func Validate(c Candidate, cfg Config) error {
	desc := strings.TrimSpace(c.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if p, hit := MatchBoilerplate(desc); hit {
		return fmt.Errorf("%w: %s", ErrBoilerplateDescription, p.Name)
	}
	if n := utf8.RuneCountInString(desc); n < cfg.MinDescriptionLength || n > cfg.MaxDescriptionLength {
		return fmt.Errorf("%w: %d", ErrDescriptionLength, n)
	}
	if IsNonText(desc) {
		return ErrNonTextDescription
	}

	fields := []struct {
		name  string
		value decimal.Decimal
		max   decimal.Decimal
		err   error
	}{
		{"quantity", c.Quantity, cfg.MaxQuantity, ErrQuantityOutOfRange},
		{"unit price", c.UnitPrice, cfg.MaxUnitPrice, ErrUnitPriceOutOfRange},
		{"amount", c.Amount, cfg.MaxAmount, ErrAmountOutOfRange},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s %s", ErrNegativeValue, f.name, f.value)
		}
		if f.value.GreaterThan(f.max) {
			return fmt.Errorf("%w: %s", f.err, f.value)
		}
	}
	return nil
}

// CheckArithmetic compares quantity x unit price with amount. ok is false only
// when all three are positive and differ by more than ArithmeticTolerance
// relative to the amount.
func CheckArithmetic(c Candidate, cfg Config) (expected decimal.Decimal, ok bool) {
	if !allPositive(c) {
		return decimal.Zero, true
	}
	expected = c.LineTotal()
	return expected, withinTolerance(expected, c.Amount, cfg.ArithmeticTolerance)
}

func allPositive(c Candidate) bool {
	return c.Quantity.IsPositive() && c.UnitPrice.IsPositive() && c.Amount.IsPositive()
}

func withinTolerance(expected, actual, tolerance decimal.Decimal) bool {
	return expected.Sub(actual).Abs().LessThanOrEqual(actual.Abs().Mul(tolerance))
}
