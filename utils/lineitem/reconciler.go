package lineitem

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	oneCent       = decimal.RequireFromString("0.01")
	thousand      = decimal.NewFromInt(1000)
	tenThousand   = decimal.NewFromInt(10000)
	fiftyThousand = decimal.NewFromInt(50000)
	hundredK      = decimal.NewFromInt(100000)
	million       = decimal.NewFromInt(1000000)
)

// FillMissing derives the one missing value of quantity, unit price and
// amount from the other two. Present values are never overwritten. A missing
// tax or discount amount is derived from its rate. Negative values end up as 0.
func FillMissing(c Candidate) Candidate {
	q, p, a := c.Quantity, c.UnitPrice, c.Amount
	switch {
	case !a.IsPositive() && q.IsPositive() && p.IsPositive():
		c.Amount = q.Mul(p).Round(4)
	case !p.IsPositive() && q.IsPositive() && a.IsPositive():
		c.UnitPrice = a.DivRound(q, 4)
	case !q.IsPositive() && p.IsPositive() && a.IsPositive():
		c.Quantity = a.DivRound(p, 4)
	}

	c.Quantity = clampNegative(c.Quantity)
	c.UnitPrice = clampNegative(c.UnitPrice)
	c.Amount = clampNegative(c.Amount)

	if !c.TaxAmount.Valid && c.TaxRate.Valid && c.Amount.IsPositive() {
		c.TaxAmount = decimal.NewNullDecimal(c.Amount.Mul(c.TaxRate.Decimal).Div(hundred).Round(2))
	}
	if !c.DiscountAmount.Valid && c.DiscountRate.Valid && c.Amount.IsPositive() {
		c.DiscountAmount = decimal.NewNullDecimal(c.Amount.Mul(c.DiscountRate.Decimal).Div(hundred).Round(2))
	}
	return c
}

func clampNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Score computes the weighted plausibility of a candidate in [0,1]. Only the
// weights of fields the candidate carries count towards the normalizer.
func Score(c Candidate, cfg Config) float64 {
	w := cfg.Weights
	var score, applied float64
	add := func(present bool, weight, sub float64) {
		if present {
			score += weight * sub
			applied += weight
		}
	}
	add(strings.TrimSpace(c.Description) != "", w.Description, descriptionScore(c.Description))
	add(c.Quantity.IsPositive(), w.Quantity, quantityScore(c.Quantity))
	add(c.UnitPrice.IsPositive(), w.UnitPrice, unitPriceScore(c.UnitPrice))
	add(c.Amount.IsPositive(), w.Amount, amountScore(c.Amount))
	if applied <= 0 {
		return 0
	}
	confidence := score / applied

	if allPositive(c) {
		if withinTolerance(c.LineTotal(), c.Amount, cfg.ArithmeticTolerance) {
			confidence += cfg.ArithmeticAdjustment
		} else {
			confidence -= cfg.ArithmeticAdjustment
		}
	}
	return clamp01(confidence)
}

// Finalize fills missing values and scores the candidate.
func Finalize(c Candidate, cfg Config) Candidate {
	c = FillMissing(c)
	c.Confidence = Score(c, cfg)
	c.Scored = true
	return c
}

func descriptionScore(desc string) float64 {
	if desc == "" {
		return 0
	}
	s := 0.5
	if HasVocabulary(desc) {
		s += 0.3
	}
	if n := utf8.RuneCountInString(desc); n >= 5 && n <= 100 {
		s += 0.2
	}
	if IsNonText(desc) {
		s -= 0.3
	}
	if ShortCodePattern.MatchString(desc) {
		s -= 0.2
	}
	return clamp01(s)
}

func quantityScore(q decimal.Decimal) float64 {
	switch {
	case !q.IsPositive():
		return 0
	case q.LessThanOrEqual(thousand) && q.Equal(q.Truncate(0)):
		return 1.0
	case q.LessThanOrEqual(thousand):
		return 0.8
	case q.LessThanOrEqual(tenThousand):
		return 0.5
	default:
		return 0.1
	}
}

func unitPriceScore(p decimal.Decimal) float64 {
	switch {
	case !p.IsPositive():
		return 0
	case p.LessThan(oneCent):
		return 0.3
	case p.LessThanOrEqual(tenThousand):
		return 1.0
	case p.LessThanOrEqual(hundredK):
		return 0.6
	default:
		return 0.1
	}
}

func amountScore(a decimal.Decimal) float64 {
	switch {
	case !a.IsPositive():
		return 0
	case a.LessThanOrEqual(fiftyThousand):
		return 1.0
	case a.LessThanOrEqual(million):
		return 0.6
	default:
		return 0.1
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
