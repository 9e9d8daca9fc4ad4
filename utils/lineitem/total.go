package lineitem

import "github.com/shopspring/decimal"

// Sum adds up the amounts of items.
func Sum(items []Candidate) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}

// ReconcileWithTotal reports whether the summed amounts are within
// total*tolerance of the known invoice total. An empty item list never reconciles.
func ReconcileWithTotal(items []Candidate, total, tolerance decimal.Decimal) bool {
	if len(items) == 0 {
		return false
	}
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	allowed := total.Abs().Mul(tolerance)
	return Sum(items).Sub(total).Abs().LessThanOrEqual(allowed)
}
