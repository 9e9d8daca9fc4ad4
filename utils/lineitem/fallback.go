package lineitem

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ColumnTemplate is a per-line regular expression with named groups
// item, desc, qty, price and amount. Groups may be omitted.
type ColumnTemplate struct {
	Name string
	// Vocabulary restricts the template to descriptions with a service keyword.
	Vocabulary bool
	Pattern    *regexp.Regexp
}

const (
	itemGroup   = `^(?:(?P<item>\d{1,4})[.)]\s+)?`
	descGroup   = `(?P<desc>.*?\pL.*?)`
	qtyGroup    = `(?P<qty>\d+(?:[.,]\d+)?)\s*(?:x|pcs?|units?|hrs?|h)?`
	moneyGroup  = `[€$£¥]?\s?-?\d[\d.,']*(?:\s?[€$£¥])?`
	priceColumn = `(?P<price>` + moneyGroup + `)`
	totalColumn = `(?P<amount>` + moneyGroup + `)`
)

func columnTemplates() []ColumnTemplate {
	layouts := []struct {
		name string
		expr string
	}{
		{"four_column", itemGroup + descGroup + `\s+` + qtyGroup + `\s+` + priceColumn + `\s+` + totalColumn + `$`},
		{"three_column", itemGroup + descGroup + `\s+` + qtyGroup + `\s+` + totalColumn + `$`},
		{"two_column", itemGroup + descGroup + `\s+` + totalColumn + `$`},
	}

	var out []ColumnTemplate
	for _, vocab := range []bool{true, false} {
		for _, l := range layouts {
			name := "generic_" + l.name
			if vocab {
				name = "vocabulary_" + l.name
			}
			out = append(out, ColumnTemplate{Name: name, Vocabulary: vocab, Pattern: regexp.MustCompile(l.expr)})
		}
	}
	return out
}

// ColumnTemplates are tried per line in order; vocabulary variants come first.
var ColumnTemplates = columnTemplates()

func (t ColumnTemplate) match(line string) (Candidate, bool) {
	m := t.Pattern.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}

	c := Candidate{Quantity: decimal.NewFromInt(1)}
	for i, name := range t.Pattern.SubexpNames() {
		if i == 0 || m[i] == "" {
			continue
		}
		switch name {
		case "item":
			c.ItemNumber = m[i]
		case "desc":
			c.Description = cleanDescription(m[i])
		case "qty":
			c.Quantity = ParseDecimal(m[i])
		case "price":
			c.UnitPrice = ParseCurrency(m[i])
		case "amount":
			c.Amount = ParseCurrency(m[i])
		}
	}

	if c.Description == "" || IsNonText(c.Description) {
		return Candidate{}, false
	}
	if _, hit := MatchBoilerplate(c.Description); hit {
		return Candidate{}, false
	}
	if t.Vocabulary && !HasVocabulary(c.Description) {
		return Candidate{}, false
	}
	return c, true
}

func extractPatterns(doc Document, cfg Config) []Candidate {
	var out []Candidate
	for i, line := range doc.lines {
		if IsHeaderLine(line) || !ContainsNumbers(line) {
			continue
		}
		rest, adj := extractAdjustments(line)
		for _, t := range ColumnTemplates {
			c, ok := t.match(rest)
			if !ok {
				continue
			}
			c.Source = SourcePattern
			c.StrategyConfidence = cfg.Strategies.Pattern
			if !t.Vocabulary {
				c.Source = SourceGenericPattern
				c.StrategyConfidence = cfg.Strategies.GenericPattern
			}
			c.Line = i
			adj.apply(&c)
			out = append(out, c)
			break
		}
	}
	return out
}

func extractSimple(doc Document, cfg Config) []Candidate {
	var out []Candidate
	for i, line := range doc.lines {
		if IsHeaderLine(line) || !ContainsNumbers(line) ||
			!isLikelyDescription(line, cfg.HeuristicMinLength, cfg.HeuristicMaxLength) {
			continue
		}
		rest, adj := extractAdjustments(line)
		itemNumber, body := splitItemNumber(rest)
		tokens := tokenize(body)
		q, p, a := assignNumbers(tokens)
		if p.IsZero() && a.IsZero() {
			continue
		}
		c := Candidate{
			Description:        cleanDescription(descriptionFrom(tokens)),
			ItemNumber:         itemNumber,
			Quantity:           q,
			UnitPrice:          p,
			Amount:             a,
			StrategyConfidence: cfg.Strategies.Simple,
			Source:             SourceSimple,
			Line:               i,
		}
		if c.Description == "" {
			continue
		}
		adj.apply(&c)
		out = append(out, c)
	}
	return out
}

func extractUltraBasic(doc Document, cfg Config) []Candidate {
	return extractCurrencyLines(doc, func(line string) bool {
		n := utf8.RuneCountInString(line)
		return IsLikelyNumeric(line) && n >= cfg.UltraBasicMinLength && n <= cfg.UltraBasicMaxLength
	}, cfg.Strategies.UltraBasic, SourceUltraBasic)
}

func extractCurrencyOnly(doc Document, cfg Config) []Candidate {
	return extractCurrencyLines(doc, hasCurrencySymbol, cfg.Strategies.CurrencyOnly, SourceCurrencyOnly)
}

// extractCurrencyLines builds one candidate per accepted money line. The
// description comes from the line's own words or from the line above it.
func extractCurrencyLines(doc Document, accept func(string) bool, confidence float64, source string) []Candidate {
	var out []Candidate
	for i, line := range doc.lines {
		if IsHeaderLine(line) || !accept(line) {
			continue
		}
		if _, hit := MatchBoilerplate(line); hit {
			continue
		}

		tokens := tokenize(line)
		q, p, a := assignNumbers(tokens)
		if p.IsZero() && a.IsZero() {
			continue
		}

		description := allText(line)
		if description == "" {
			description = precedingDescription(doc, i)
		}
		if description == "" {
			continue
		}
		out = append(out, Candidate{
			Description:        description,
			Quantity:           q,
			UnitPrice:          p,
			Amount:             a,
			StrategyConfidence: confidence,
			Source:             source,
			Line:               i,
		})
	}
	return out
}

func precedingDescription(doc Document, i int) string {
	prev := doc.Line(i - 1)
	if prev == "" || IsHeaderLine(prev) || hasCurrencySymbol(prev) || len(textWords(prev)) == 0 {
		return ""
	}
	if _, hit := MatchBoilerplate(prev); hit {
		return ""
	}
	return allText(prev)
}
