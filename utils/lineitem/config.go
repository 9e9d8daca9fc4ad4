package lineitem

import "github.com/shopspring/decimal"

// FieldWeights controls how much each field contributes to a candidate's confidence.
type FieldWeights struct {
	Description float64
	Quantity    float64
	UnitPrice   float64
	Amount      float64
}

// Sum returns the total weight applied by the scorer.
func (w FieldWeights) Sum() float64 {
	return w.Description + w.Quantity + w.UnitPrice + w.Amount
}

// StrategyConfidence holds the fixed confidence each strategy assigns to what it finds.
type StrategyConfidence struct {
	Tabular        float64
	MultiLine      float64
	SingleLine     float64
	Pattern        float64
	GenericPattern float64
	Simple         float64
	UltraBasic     float64
	CurrencyOnly   float64
}

// Config holds every threshold and weight used by the extraction pipeline.
type Config struct {
	MinDescriptionLength int
	MaxDescriptionLength int

	// Bounds used by IsLikelyDescription when deciding whether a line reads like an item.
	HeuristicMinLength int
	HeuristicMaxLength int

	SingleLineMaxLength int
	UltraBasicMinLength int
	UltraBasicMaxLength int

	// MinPatternRepeats is how many matching lines the detector needs before trusting a layout.
	MinPatternRepeats int
	// MinStrategyYield is the candidate count below which the fallback cascade runs.
	MinStrategyYield int

	MaxQuantity  decimal.Decimal
	MaxUnitPrice decimal.Decimal
	MaxAmount    decimal.Decimal

	// ArithmeticTolerance is the relative difference allowed between
	// quantity x unit price and amount. It drives both the mismatch report
	// and the scorer bonus/penalty.
	ArithmeticTolerance decimal.Decimal

	SimilarityThreshold float64

	Weights              FieldWeights
	ArithmeticAdjustment float64
	Strategies           StrategyConfidence

	ReconcileTolerance decimal.Decimal
	ReviewConfidence   float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinDescriptionLength: 3,
		MaxDescriptionLength: 120,
		HeuristicMinLength:   3,
		HeuristicMaxLength:   100,
		SingleLineMaxLength:  100,
		UltraBasicMinLength:  5,
		UltraBasicMaxLength:  150,
		MinPatternRepeats:    3,
		MinStrategyYield:     3,
		MaxQuantity:          decimal.NewFromInt(10000),
		MaxUnitPrice:         decimal.NewFromInt(100000),
		MaxAmount:            decimal.NewFromInt(1000000),
		ArithmeticTolerance:  decimal.RequireFromString("0.05"),
		SimilarityThreshold:  0.8,
		Weights: FieldWeights{
			Description: 0.30,
			Quantity:    0.20,
			UnitPrice:   0.20,
			Amount:      0.30,
		},
		ArithmeticAdjustment: 0.1,
		Strategies: StrategyConfidence{
			Tabular:        0.95,
			MultiLine:      0.7,
			SingleLine:     0.7,
			Pattern:        0.65,
			GenericPattern: 0.6,
			Simple:         0.5,
			UltraBasic:     0.3,
			CurrencyOnly:   0.2,
		},
		ReconcileTolerance: decimal.RequireFromString("0.01"),
		ReviewConfidence:   0.5,
	}
}
