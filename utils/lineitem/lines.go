package lineitem

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var itemNumberPrefix = regexp.MustCompile(`^(\d{1,4}[.)]|#\d{1,4}|[A-Z]{2,5}-?\d{2,})\s+(\S.*)$`)

// splitItemNumber separates a leading position or article number from the description.
func splitItemNumber(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	m := itemNumberPrefix.FindStringSubmatch(desc)
	if m == nil {
		return "", cleanDescription(desc)
	}
	number := strings.TrimRight(strings.TrimPrefix(m[1], "#"), ".)")
	return number, cleanDescription(m[2])
}

// adjustments are tax and discount figures written inline next to an item.
type adjustments struct {
	TaxRate        decimal.NullDecimal
	TaxAmount      decimal.NullDecimal
	DiscountRate   decimal.NullDecimal
	DiscountAmount decimal.NullDecimal
}

func (a adjustments) apply(c *Candidate) {
	c.TaxRate = a.TaxRate
	c.TaxAmount = a.TaxAmount
	c.DiscountRate = a.DiscountRate
	c.DiscountAmount = a.DiscountAmount
}

// or fills unset fields of a from b.
func (a adjustments) or(b adjustments) adjustments {
	pick := func(x, y decimal.NullDecimal) decimal.NullDecimal {
		if x.Valid {
			return x
		}
		return y
	}
	return adjustments{
		TaxRate:        pick(a.TaxRate, b.TaxRate),
		TaxAmount:      pick(a.TaxAmount, b.TaxAmount),
		DiscountRate:   pick(a.DiscountRate, b.DiscountRate),
		DiscountAmount: pick(a.DiscountAmount, b.DiscountAmount),
	}
}

var (
	taxRatePattern        = regexp.MustCompile(`(?i)\b(?:vat|tax|mwst|ust)\.?\s*(\d{1,2}(?:[.,]\d{1,2})?)\s*%|(\d{1,2}(?:[.,]\d{1,2})?)\s*%\s*(?:vat|tax|mwst|ust)\b`)
	discountRatePattern   = regexp.MustCompile(`(?i)\b(?:discount|rabatt)\s*-?\s*(\d{1,2}(?:[.,]\d{1,2})?)\s*%`)
	discountAmountPattern = regexp.MustCompile(`(?i)\b(?:discount|rabatt)\s*-?\s*([€$£¥]\s?\d[\d.,]*|\d[\d.,]*\s?[€$£¥])`)
	taxAmountPattern      = regexp.MustCompile(`(?i)\b(?:vat|tax|mwst|ust)\.?\s*([€$£¥]\s?\d[\d.,]*|\d[\d.,]*\s?[€$£¥])`)
)

// extractAdjustments pulls inline tax and discount figures out of line and
// returns the line with those fragments removed.
func extractAdjustments(line string) (string, adjustments) {
	var adj adjustments
	take := func(p *regexp.Regexp, dst *decimal.NullDecimal) {
		loc := p.FindStringSubmatchIndex(line)
		if loc == nil {
			return
		}
		for g := 1; g*2+1 < len(loc); g++ {
			if loc[g*2] >= 0 {
				*dst = decimal.NewNullDecimal(ParseDecimal(line[loc[g*2]:loc[g*2+1]]))
				break
			}
		}
		line = line[:loc[0]] + " " + line[loc[1]:]
	}

	take(taxRatePattern, &adj.TaxRate)
	take(discountRatePattern, &adj.DiscountRate)
	take(discountAmountPattern, &adj.DiscountAmount)
	take(taxAmountPattern, &adj.TaxAmount)
	return strings.TrimSpace(line), adj
}

// assignNumbers maps the numeric tokens of an item onto quantity, unit price
// and amount. Quantity defaults to one. With currency tokens present the first
// is the unit price and the last, when there are at least two, is the amount.
// Without any, bare numbers are read in column order.
func assignNumbers(tokens []token) (qty, price, amount decimal.Decimal) {
	var money, bare []decimal.Decimal
	for _, t := range tokens {
		switch t.kind {
		case tokenCurrency:
			money = append(money, t.value)
		case tokenNumber:
			bare = append(bare, t.value)
		}
	}

	qty = decimal.NewFromInt(1)
	if len(money) > 0 {
		price = money[0]
		if len(money) >= 2 {
			amount = money[len(money)-1]
		}
		for _, b := range bare {
			if b.IsPositive() {
				qty = b
				break
			}
		}
		return qty, price, amount
	}

	switch len(bare) {
	case 0:
	case 1:
		amount = bare[0]
	case 2:
		qty, amount = bare[0], bare[1]
	default:
		qty, price, amount = bare[0], bare[1], bare[len(bare)-1]
	}
	return qty, price, amount
}

func descriptionFrom(tokens []token) string {
	var lead, all []string
	leading := true
	for _, t := range tokens {
		if t.kind != tokenText {
			leading = false
			continue
		}
		all = append(all, t.raw)
		if leading {
			lead = append(lead, t.raw)
		}
	}
	if len(lead) > 0 {
		return strings.Join(lead, " ")
	}
	return strings.Join(all, " ")
}

func firstMoney(line string) decimal.Decimal {
	if v := currencyTokens(line); len(v) > 0 {
		return v[0]
	}
	if v := bareNumbers(line); len(v) > 0 {
		return v[0]
	}
	return decimal.Zero
}

func firstNumber(line string) decimal.Decimal {
	if v := bareNumbers(line); len(v) > 0 {
		return v[0]
	}
	if v := currencyTokens(line); len(v) > 0 {
		return v[0]
	}
	return decimal.Zero
}

func extractMultiLine(doc Document, cfg Config) []Candidate {
	var out []Candidate
	for i := 0; i+1 < doc.Len(); i++ {
		if !isMultiLinePair(doc.Line(i), doc.Line(i+1), cfg) {
			continue
		}
		descLine, descAdj := extractAdjustments(doc.Line(i))
		numLine, numAdj := extractAdjustments(doc.Line(i + 1))

		q, p, a := assignNumbers(tokenize(numLine))
		itemNumber, description := splitItemNumber(descLine)
		c := Candidate{
			Description:        description,
			ItemNumber:         itemNumber,
			Quantity:           q,
			UnitPrice:          p,
			Amount:             a,
			StrategyConfidence: cfg.Strategies.MultiLine,
			Source:             SourceMultiLine,
			Line:               i,
		}
		numAdj.or(descAdj).apply(&c)
		out = append(out, c)
		i++
	}
	return out
}

func extractSingleLine(doc Document, cfg Config) []Candidate {
	var out []Candidate
	for i, line := range doc.lines {
		if !isSingleLineItem(line, cfg) {
			continue
		}
		rest, adj := extractAdjustments(line)
		itemNumber, body := splitItemNumber(rest)
		tokens := tokenize(body)
		q, p, a := assignNumbers(tokens)
		if p.IsZero() && a.IsZero() {
			continue
		}
		description := cleanDescription(descriptionFrom(tokens))
		if description == "" {
			continue
		}
		c := Candidate{
			Description:        description,
			ItemNumber:         itemNumber,
			Quantity:           q,
			UnitPrice:          p,
			Amount:             a,
			StrategyConfidence: cfg.Strategies.SingleLine,
			Source:             SourceSingleLine,
			Line:               i,
		}
		adj.apply(&c)
		out = append(out, c)
	}
	return out
}
