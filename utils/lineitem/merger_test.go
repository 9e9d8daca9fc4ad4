package lineitem

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Basic Fee", "basic   fee "))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.8, Similarity("abcde", "abcdx"), 1e-9)
	assert.Equal(t, 1.0, Similarity("", " "))
}

func TestMergeSimilarWhitespaceDuplicates(t *testing.T) {
	cands := []Candidate{
		{Description: "Basic Fee", Amount: dec("10.00")},
		{Description: "Basic Fee ", Amount: dec("15.00")},
	}

	merged := MergeSimilar(cands, DefaultConfig(), nil)

	require.Len(t, merged, 1)
	assert.Equal(t, "Basic Fee", merged[0].Description)
	assertDecimal(t, "25.00", merged[0].Amount)
}

func TestMergeSimilarThresholdIsStrict(t *testing.T) {
	cands := []Candidate{
		{Description: "abcde", Amount: dec("1")},
		{Description: "abcdx", Amount: dec("2")},
	}

	assert.Len(t, MergeSimilar(cands, DefaultConfig(), nil), 2)

	cfg := DefaultConfig()
	cfg.SimilarityThreshold = 0.79
	merged := MergeSimilar(cands, cfg, nil)
	require.Len(t, merged, 1)
	assertDecimal(t, "3", merged[0].Amount)
}

func TestMergeSimilarCombinesFields(t *testing.T) {
	cands := []Candidate{
		{
			Description:        "Hosting fee",
			Quantity:           dec("1"),
			UnitPrice:          dec("10"),
			Amount:             dec("10"),
			TaxRate:            decimal.NewNullDecimal(dec("19")),
			TaxAmount:          decimal.NewNullDecimal(dec("1.90")),
			StrategyConfidence: 0.5,
		},
		{Description: "Support plan", Amount: dec("99")},
		{
			Description:        "Hosting fees",
			ItemNumber:         "42",
			Quantity:           dec("2"),
			UnitPrice:          dec("20"),
			Amount:             dec("40"),
			DiscountRate:       decimal.NewNullDecimal(dec("5")),
			StrategyConfidence: 0.7,
		},
	}
	obs := &recordingObserver{}

	merged := MergeSimilar(cands, DefaultConfig(), obs)

	require.Len(t, merged, 2)
	first := merged[0]
	assert.Equal(t, "Hosting fee", first.Description)
	assert.Equal(t, "42", first.ItemNumber)
	assertDecimal(t, "3", first.Quantity)
	assertDecimal(t, "15", first.UnitPrice)
	assertDecimal(t, "50", first.Amount)
	assertDecimal(t, "19", first.TaxRate.Decimal)
	assertDecimal(t, "1.9", first.TaxAmount.Decimal)
	assertDecimal(t, "5", first.DiscountRate.Decimal)
	assert.False(t, first.DiscountAmount.Valid)
	assert.Equal(t, 0.7, first.StrategyConfidence)

	assert.Equal(t, "Support plan", merged[1].Description)
	assert.Equal(t, 1, obs.merges)
}

func TestMergeSimilarGreedySeeds(t *testing.T) {
	// "abcd" pulls in "abce" but "abce" never gets a chance to pull "abfe".
	cfg := DefaultConfig()
	cfg.SimilarityThreshold = 0.7
	cands := []Candidate{
		{Description: "abcd"},
		{Description: "abce"},
		{Description: "abfe"},
	}

	merged := MergeSimilar(cands, cfg, nil)

	require.Len(t, merged, 2)
	assert.Equal(t, "abcd", merged[0].Description)
	assert.Equal(t, "abfe", merged[1].Description)
}
