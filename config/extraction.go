package config

import (
	"fmt"
	"os"

	"github.com/Aashish23092/ocr-invoice-extraction/utils/lineitem"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type lengthBounds struct {
	Min *int `yaml:"min_length"`
	Max *int `yaml:"max_length"`
}

type magnitudeCaps struct {
	Quantity  *float64 `yaml:"quantity"`
	UnitPrice *float64 `yaml:"unit_price"`
	Amount    *float64 `yaml:"amount"`
}

type fieldWeights struct {
	Description *float64 `yaml:"description"`
	Quantity    *float64 `yaml:"quantity"`
	UnitPrice   *float64 `yaml:"unit_price"`
	Amount      *float64 `yaml:"amount"`
}

type strategyConfidence struct {
	Tabular        *float64 `yaml:"tabular"`
	MultiLine      *float64 `yaml:"multi_line"`
	SingleLine     *float64 `yaml:"single_line"`
	Pattern        *float64 `yaml:"pattern"`
	GenericPattern *float64 `yaml:"generic_pattern"`
	Simple         *float64 `yaml:"simple"`
	UltraBasic     *float64 `yaml:"ultra_basic"`
	CurrencyOnly   *float64 `yaml:"currency_only"`
}

// extractionFile mirrors the YAML layout. Absent keys keep their defaults.
type extractionFile struct {
	Description          lengthBounds       `yaml:"description"`
	Heuristic            lengthBounds       `yaml:"heuristic"`
	UltraBasic           lengthBounds       `yaml:"ultra_basic"`
	SingleLineMaxLength  *int               `yaml:"single_line_max_length"`
	MinPatternRepeats    *int               `yaml:"min_pattern_repeats"`
	MinStrategyYield     *int               `yaml:"min_strategy_yield"`
	Caps                 magnitudeCaps      `yaml:"caps"`
	ArithmeticTolerance  *float64           `yaml:"arithmetic_tolerance"`
	SimilarityThreshold  *float64           `yaml:"similarity_threshold"`
	Weights              fieldWeights       `yaml:"weights"`
	ArithmeticAdjustment *float64           `yaml:"arithmetic_adjustment"`
	StrategyConfidence   strategyConfidence `yaml:"strategy_confidence"`
	ReconcileTolerance   *float64           `yaml:"reconcile_tolerance"`
	ReviewConfidence     *float64           `yaml:"review_confidence"`
}

// LoadExtractionConfig returns the engine defaults overlaid with the YAML file
// at path. An empty path yields the defaults.
func LoadExtractionConfig(path string) (lineitem.Config, error) {
	cfg := lineitem.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read extraction config: %w", err)
	}

	var file extractionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse extraction config %s: %w", path, err)
	}

	file.apply(&cfg)
	if err := validateExtraction(cfg); err != nil {
		return lineitem.DefaultConfig(), fmt.Errorf("invalid extraction config %s: %w", path, err)
	}
	return cfg, nil
}

func (f extractionFile) apply(cfg *lineitem.Config) {
	setInt(&cfg.MinDescriptionLength, f.Description.Min)
	setInt(&cfg.MaxDescriptionLength, f.Description.Max)
	setInt(&cfg.HeuristicMinLength, f.Heuristic.Min)
	setInt(&cfg.HeuristicMaxLength, f.Heuristic.Max)
	setInt(&cfg.UltraBasicMinLength, f.UltraBasic.Min)
	setInt(&cfg.UltraBasicMaxLength, f.UltraBasic.Max)
	setInt(&cfg.SingleLineMaxLength, f.SingleLineMaxLength)
	setInt(&cfg.MinPatternRepeats, f.MinPatternRepeats)
	setInt(&cfg.MinStrategyYield, f.MinStrategyYield)

	setDecimal(&cfg.MaxQuantity, f.Caps.Quantity)
	setDecimal(&cfg.MaxUnitPrice, f.Caps.UnitPrice)
	setDecimal(&cfg.MaxAmount, f.Caps.Amount)
	setDecimal(&cfg.ArithmeticTolerance, f.ArithmeticTolerance)
	setDecimal(&cfg.ReconcileTolerance, f.ReconcileTolerance)

	setFloat(&cfg.SimilarityThreshold, f.SimilarityThreshold)
	setFloat(&cfg.ArithmeticAdjustment, f.ArithmeticAdjustment)
	setFloat(&cfg.ReviewConfidence, f.ReviewConfidence)

	setFloat(&cfg.Weights.Description, f.Weights.Description)
	setFloat(&cfg.Weights.Quantity, f.Weights.Quantity)
	setFloat(&cfg.Weights.UnitPrice, f.Weights.UnitPrice)
	setFloat(&cfg.Weights.Amount, f.Weights.Amount)

	s := f.StrategyConfidence
	setFloat(&cfg.Strategies.Tabular, s.Tabular)
	setFloat(&cfg.Strategies.MultiLine, s.MultiLine)
	setFloat(&cfg.Strategies.SingleLine, s.SingleLine)
	setFloat(&cfg.Strategies.Pattern, s.Pattern)
	setFloat(&cfg.Strategies.GenericPattern, s.GenericPattern)
	setFloat(&cfg.Strategies.Simple, s.Simple)
	setFloat(&cfg.Strategies.UltraBasic, s.UltraBasic)
	setFloat(&cfg.Strategies.CurrencyOnly, s.CurrencyOnly)
}

func validateExtraction(cfg lineitem.Config) error {
	if cfg.MinDescriptionLength > cfg.MaxDescriptionLength {
		return fmt.Errorf("description min_length %d exceeds max_length %d", cfg.MinDescriptionLength, cfg.MaxDescriptionLength)
	}
	if cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold %.2f outside [0,1]", cfg.SimilarityThreshold)
	}
	if cfg.Weights.Sum() <= 0 {
		return fmt.Errorf("weights must sum to a positive value")
	}
	if cfg.ArithmeticTolerance.IsNegative() || cfg.ReconcileTolerance.IsNegative() {
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setDecimal(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}
