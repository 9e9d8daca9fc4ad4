package lineitem

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/shopspring/decimal"
)

// NormalizeDescription lowercases s and collapses its whitespace.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Similarity is 1 - editDistance/maxLen over normalized descriptions.
func Similarity(a, b string) float64 {
	a, b = NormalizeDescription(a), NormalizeDescription(b)
	if a == b {
		return 1
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	dist := levenshtein.Distance(a, b, nil)
	return float64(maxLen-dist) / float64(maxLen)
}

// MergeSimilar collapses candidates whose descriptions are more similar than
// cfg.SimilarityThreshold. Grouping is a single greedy pass: each ungrouped
// candidate seeds a group and collects every later ungrouped candidate close
// to it. Output order follows the seeds.
func MergeSimilar(cands []Candidate, cfg Config, obs Observer) []Candidate {
	if obs == nil {
		obs = NopObserver{}
	}

	grouped := make([]bool, len(cands))
	out := make([]Candidate, 0, len(cands))
	for i, seed := range cands {
		if grouped[i] {
			continue
		}
		grouped[i] = true

		group := []Candidate{seed}
		for j := i + 1; j < len(cands); j++ {
			if grouped[j] {
				continue
			}
			if Similarity(seed.Description, cands[j].Description) > cfg.SimilarityThreshold {
				grouped[j] = true
				group = append(group, cands[j])
			}
		}

		if len(group) == 1 {
			out = append(out, seed)
			continue
		}
		merged := mergeGroup(group)
		obs.MergePerformed(merged, len(group))
		out = append(out, merged)
	}
	return out
}

func mergeGroup(group []Candidate) Candidate {
	merged := group[0]
	merged.Quantity = decimal.Zero
	merged.Amount = decimal.Zero

	var prices, taxRates, discountRates []decimal.Decimal
	var taxAmounts, discountAmounts []decimal.NullDecimal
	for _, c := range group {
		merged.Quantity = merged.Quantity.Add(c.Quantity)
		merged.Amount = merged.Amount.Add(c.Amount)
		if c.UnitPrice.IsPositive() {
			prices = append(prices, c.UnitPrice)
		}
		if c.TaxRate.Valid {
			taxRates = append(taxRates, c.TaxRate.Decimal)
		}
		if c.DiscountRate.Valid {
			discountRates = append(discountRates, c.DiscountRate.Decimal)
		}
		taxAmounts = append(taxAmounts, c.TaxAmount)
		discountAmounts = append(discountAmounts, c.DiscountAmount)

		if merged.ItemNumber == "" {
			merged.ItemNumber = c.ItemNumber
		}
		if c.StrategyConfidence > merged.StrategyConfidence {
			merged.StrategyConfidence = c.StrategyConfidence
		}
	}

	merged.UnitPrice = average(prices)
	merged.TaxRate = nullAverage(taxRates)
	merged.DiscountRate = nullAverage(discountRates)
	merged.TaxAmount = nullSum(taxAmounts)
	merged.DiscountAmount = nullSum(discountAmounts)
	return merged
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values)))).Round(4)
}

func nullAverage(values []decimal.Decimal) decimal.NullDecimal {
	if len(values) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(average(values))
}

func nullSum(values []decimal.NullDecimal) decimal.NullDecimal {
	var sum decimal.NullDecimal
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if !sum.Valid {
			sum = decimal.NewNullDecimal(decimal.Zero)
		}
		sum.Decimal = sum.Decimal.Add(v.Decimal)
	}
	return sum
}
