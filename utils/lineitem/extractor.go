package lineitem

import "github.com/shopspring/decimal"

// Extractor runs the line item pipeline. It holds no mutable state and may be
// shared between goroutines.
type Extractor struct {
	cfg Config
	obs Observer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig replaces the default thresholds and weights.
func WithConfig(cfg Config) Option {
	return func(e *Extractor) {
		e.cfg = cfg
	}
}

// WithObserver attaches an observer. A nil observer is ignored.
func WithObserver(obs Observer) Option {
	return func(e *Extractor) {
		if obs != nil {
			e.obs = obs
		}
	}
}

// NewExtractor returns an Extractor using DefaultConfig unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		cfg: DefaultConfig(),
		obs: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the configuration the extractor runs with.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Result is the outcome of one extraction.
type Result struct {
	Items             []Candidate
	Format            Format
	Strategy          string
	AverageConfidence float64
	// NeedsReview is set for empty or low-confidence results.
	NeedsReview bool
}

// ExtractLineItems runs the pipeline with the default configuration.
func ExtractLineItems(rawText string) []Candidate {
	return NewExtractor().Extract(rawText)
}

// Extract returns the validated, merged and scored line items found in rawText.
func (e *Extractor) Extract(rawText string) []Candidate {
	return e.Analyze(rawText).Items
}

// Reconcile checks items against a known total using the configured tolerance.
func (e *Extractor) Reconcile(items []Candidate, total decimal.Decimal) bool {
	return ReconcileWithTotal(items, total, e.cfg.ReconcileTolerance)
}

// Analyze runs the pipeline and reports how the items were found.
func (e *Extractor) Analyze(rawText string) Result {
	doc := NewDocument(rawText)
	format := DetectFormat(doc, e.cfg)
	e.obs.FormatDetected(format, doc.Len())

	res := Result{Items: []Candidate{}, Format: format}
	if doc.Len() == 0 {
		res.NeedsReview = true
		return res
	}

	found, strategy := e.runStrategies(doc, format)
	res.Strategy = strategy

	accepted := make([]Candidate, 0, len(found))
	for _, c := range found {
		if err := Validate(c, e.cfg); err != nil {
			e.obs.CandidateRejected(c, err)
			continue
		}
		accepted = append(accepted, c)
	}

	for _, c := range MergeSimilar(accepted, e.cfg, e.obs) {
		c = Finalize(c, e.cfg)
		// merged sums and filled values must still respect the caps
		if err := Validate(c, e.cfg); err != nil {
			e.obs.CandidateRejected(c, err)
			continue
		}
		if expected, ok := CheckArithmetic(c, e.cfg); !ok {
			e.obs.ArithmeticMismatch(c, expected)
		}
		e.obs.CandidateAccepted(c)
		res.Items = append(res.Items, c)
	}

	res.AverageConfidence = averageConfidence(res.Items)
	res.NeedsReview = len(res.Items) == 0 || res.AverageConfidence < e.cfg.ReviewConfidence
	return res
}

// runStrategies runs the primary extractor for format and falls back to the
// cascade when the format is unknown or the primary yield is too small. The
// larger result wins; ties keep the primary one.
func (e *Extractor) runStrategies(doc Document, format Format) ([]Candidate, string) {
	var (
		primary     []Candidate
		primaryName string
	)
	if s, ok := primaryStrategy(format, e.cfg); ok {
		primary = s.Extract(doc)
		primaryName = s.Name
		e.obs.StrategyCompleted(primaryName, len(primary))
		if len(primary) >= e.cfg.MinStrategyYield {
			return primary, primaryName
		}
	}

	fallback, fallbackName := FallbackCascade(e.cfg).Run(doc, 1)
	if fallbackName != "" {
		e.obs.StrategyCompleted(fallbackName, len(fallback))
	}
	if len(fallback) > len(primary) {
		return fallback, fallbackName
	}
	return primary, primaryName
}

func averageConfidence(items []Candidate) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Confidence
	}
	return sum / float64(len(items))
}
