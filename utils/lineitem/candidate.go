// Package lineitem recovers invoice line items from flat OCR text.
//
// The pipeline detects the document layout, runs the matching extraction
// strategy (falling back to progressively looser ones), drops implausible
// candidates, merges near-duplicates and finally fills in and scores each
// record. It never returns an error: malformed input yields an empty or
// low-confidence result.
package lineitem

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Document is the OCR text split into trimmed, non-empty lines.
type Document struct {
	lines []string
}

// NewDocument splits raw OCR text into lines, dropping blank ones.
func NewDocument(rawText string) Document {
	rawText = strings.ReplaceAll(rawText, "\r", "")
	rawLines := strings.Split(rawText, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return Document{lines: lines}
}

// Len returns the number of lines.
func (d Document) Len() int {
	return len(d.lines)
}

// Line returns the i-th line, or "" when i is out of range.
func (d Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns a copy of the document lines.
func (d Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Candidate is a line item as it moves through the pipeline.
type Candidate struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	ItemNumber  string

	TaxAmount      decimal.NullDecimal
	TaxRate        decimal.NullDecimal
	DiscountAmount decimal.NullDecimal
	DiscountRate   decimal.NullDecimal

	// Confidence is only meaningful once Scored is set.
	Confidence float64
	Scored     bool

	StrategyConfidence float64
	Source             string
	Line               int
}

// LineTotal is quantity x unit price.
func (c Candidate) LineTotal() decimal.Decimal {
	return c.Quantity.Mul(c.UnitPrice)
}

func cleanDescription(s string) string {
	s = strings.Trim(s, " \t-–:|;,*")
	return strings.Join(strings.Fields(s), " ")
}
