package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/lineitem"
	"github.com/shopspring/decimal"
)

var (
	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\binvoice\s*(?:no\.?|number|nr\.?|#|id)\s*[:.#]?\s*([A-Z0-9][A-Z0-9\-/]{2,})`),
		regexp.MustCompile(`(?i)\brechnungs\s*(?:nummer|nr\.?)\s*[:.]?\s*([A-Z0-9][A-Z0-9\-/]{2,})`),
		regexp.MustCompile(`(?i)\bbill\s*(?:no\.?|number)\s*[:.]?\s*([A-Z0-9][A-Z0-9\-/]{2,})`),
	}

	invoiceDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:invoice\s*date|rechnungsdatum|datum|date)\s*[:.]?\s*(\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`(?i)\b(?:invoice\s*date|rechnungsdatum|datum|date)\s*[:.]?\s*(\d{1,2}\.?\s+[A-Za-z]+\.?\s+\d{4}|[A-Za-z]+\s+\d{1,2},\s*\d{4})`),
	}

	// A gross total is printed after the net one, so the last hit wins.
	totalLabel    = regexp.MustCompile(`(?i)^\s*(?:grand\s+total|invoice\s+total|total\s+amount|total\s+incl\.?|total\s+due|amount\s+due|balance\s+due|gesamtbetrag|endbetrag|rechnungsbetrag|total)\b`)
	subtotalLabel = regexp.MustCompile(`(?i)\b(?:sub\s*-?\s*total|zwischensumme|net\s+total|total\s+net|total\s+excl)`)
	amountToken   = regexp.MustCompile(`\(?-?\d[\d.,']*\d\)?|\d`)
	currencyCode  = regexp.MustCompile(`\b(EUR|USD|GBP|CHF|JPY)\b`)

	currencySymbols = map[string]string{"€": "EUR", "$": "USD", "£": "GBP", "¥": "JPY"}
)

// ParseInvoiceHeader extracts the document level fields from invoice text.
func ParseInvoiceHeader(text string) dto.InvoiceHeader {
	header := dto.InvoiceHeader{
		InvoiceNumber: extractInvoiceNumber(text),
		InvoiceDate:   extractInvoiceDate(text),
		Currency:      extractCurrency(text),
	}
	if total, ok := ExtractStatedTotal(text); ok {
		header.Total = &total
	}
	return header
}

func extractInvoiceNumber(text string) string {
	for _, re := range invoiceNumberPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimRight(m[1], "-/")
		}
	}
	return ""
}

// extractInvoiceDate returns the labelled date as YYYY-MM-DD, or the raw text
// when the layout is not recognised.
func extractInvoiceDate(text string) string {
	for _, re := range invoiceDatePatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			raw := strings.TrimSpace(m[1])
			if t, err := parseDate(raw); err == nil {
				return t.Format("2006-01-02")
			}
			return raw
		}
	}
	return ""
}

func parseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"02.01.2006", "2.1.2006", "02/01/2006", "02-01-2006", "2006-01-02",
		"02.01.06", "02/01/06",
		"2 January 2006", "2. January 2006", "2 Jan 2006", "January 2, 2006", "Jan 2, 2006",
	}
	var err error
	for _, format := range formats {
		var t time.Time
		if t, err = time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// extractCurrency prefers an ISO code over a symbol.
func extractCurrency(text string) string {
	if m := currencyCode.FindString(text); m != "" {
		return m
	}
	for _, sym := range lineitem.CurrencySymbols {
		if strings.Contains(text, sym) {
			return currencySymbols[sym]
		}
	}
	return ""
}

// ExtractStatedTotal returns the amount on the last total line of the text.
func ExtractStatedTotal(text string) (decimal.Decimal, bool) {
	var (
		total decimal.Decimal
		found bool
	)
	for _, line := range strings.Split(text, "\n") {
		loc := totalLabel.FindStringIndex(line)
		if loc == nil || subtotalLabel.MatchString(line) {
			continue
		}
		rest := line[loc[1]:]
		tokens := amountToken.FindAllStringIndex(rest, -1)
		for i := len(tokens) - 1; i >= 0; i-- {
			tok := rest[tokens[i][0]:tokens[i][1]]
			if strings.HasPrefix(rest[tokens[i][1]:], "%") {
				continue
			}
			v := lineitem.ParseCurrency(tok)
			if v.IsPositive() {
				total, found = v, true
				break
			}
		}
	}
	return total, found
}
