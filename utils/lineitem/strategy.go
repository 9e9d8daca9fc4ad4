package lineitem

// Strategy is one self-contained extraction algorithm.
type Strategy struct {
	Name    string
	Extract func(doc Document) []Candidate
}

// Cascade is an ordered list of strategies, from most to least precise.
type Cascade []Strategy

// Run tries each strategy in order and returns the first result holding at
// least minYield candidates. When none clears the bar, the largest non-empty
// result is returned, earlier strategies winning ties.
func (c Cascade) Run(doc Document, minYield int) ([]Candidate, string) {
	if minYield < 1 {
		minYield = 1
	}

	var (
		best     []Candidate
		bestName string
	)
	for _, s := range c {
		found := s.Extract(doc)
		if len(found) >= minYield {
			return found, s.Name
		}
		if len(found) > len(best) {
			best, bestName = found, s.Name
		}
	}
	return best, bestName
}

// Strategy names as reported in Candidate.Source.
const (
	SourceTabular        = "tabular"
	SourceMultiLine      = "multi_line"
	SourceSingleLine     = "single_line"
	SourcePattern        = "pattern"
	SourceGenericPattern = "generic_pattern"
	SourceSimple         = "simple"
	SourceUltraBasic     = "ultra_basic"
	SourceCurrencyOnly   = "currency_only"
)

// primaryStrategy returns the extractor for a detected format.
func primaryStrategy(f Format, cfg Config) (Strategy, bool) {
	switch f {
	case FormatTabular:
		return Strategy{Name: SourceTabular, Extract: func(d Document) []Candidate { return extractTabular(d, cfg) }}, true
	case FormatMultiLine:
		return Strategy{Name: SourceMultiLine, Extract: func(d Document) []Candidate { return extractMultiLine(d, cfg) }}, true
	case FormatSingleLine:
		return Strategy{Name: SourceSingleLine, Extract: func(d Document) []Candidate { return extractSingleLine(d, cfg) }}, true
	}
	return Strategy{}, false
}

// FallbackCascade returns the ordered permissive strategies used when the
// primary extractor finds too little.
func FallbackCascade(cfg Config) Cascade {
	return Cascade{
		{Name: SourcePattern, Extract: func(d Document) []Candidate { return extractPatterns(d, cfg) }},
		{Name: SourceSimple, Extract: func(d Document) []Candidate { return extractSimple(d, cfg) }},
		{Name: SourceUltraBasic, Extract: func(d Document) []Candidate { return extractUltraBasic(d, cfg) }},
		{Name: SourceCurrencyOnly, Extract: func(d Document) []Candidate { return extractCurrencyOnly(d, cfg) }},
	}
}
