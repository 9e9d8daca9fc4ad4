package lineitem

import (
	"regexp"
	"strings"
)

// NamedPattern is a regular expression together with the reason it exists.
type NamedPattern struct {
	Name    string
	Purpose string
	Pattern *regexp.Regexp
}

// Matches reports whether the pattern matches s.
func (p NamedPattern) Matches(s string) bool {
	return p.Pattern.MatchString(s)
}

// NamedTerm is a plain substring or keyword with its purpose.
type NamedTerm struct {
	Term    string
	Purpose string
}

// HeaderSignature describes a table header: every group must have at least one
// term present in the line.
type HeaderSignature struct {
	Name   string
	Groups [][]string
}

// Matches reports whether the lowercased line satisfies all term groups.
func (h HeaderSignature) Matches(line string) bool {
	lower := strings.ToLower(line)
	for _, group := range h.Groups {
		hit := false
		for _, term := range group {
			if strings.Contains(lower, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return len(h.Groups) > 0
}

// CurrencySymbols is the fixed set of symbols that mark a money value.
var CurrencySymbols = []string{"€", "$", "£", "¥"}

// CurrencyCodes are ISO codes that OCR output sometimes carries instead of a symbol.
var CurrencyCodes = []string{"EUR", "USD", "GBP", "CHF", "JPY"}

// BoilerplatePatterns match invoice furniture that must never become a line item.
var BoilerplatePatterns = []NamedPattern{
	{"invoice_number", "invoice number label", regexp.MustCompile(`(?i)\b(invoice|inv|bill)\.?\s*(no\b|number\b|nr\b|#|id\b)`)},
	{"customer_number", "customer number label", regexp.MustCompile(`(?i)\b(customer|client|cust)\.?\s*(no\b|number\b|nr\b|#|id\b)`)},
	{"order_reference", "order or purchase order reference", regexp.MustCompile(`(?i)\b(order|po|purchase\s+order)\.?\s*(no\b|number\b|nr\b|#)`)},
	{"vat_id", "VAT or tax registration label", regexp.MustCompile(`(?i)\b(vat|tax|ust|uid)[\s.-]*(id|no|number|reg|registration)\b`)},
	{"vat_number", "bare EU VAT number", regexp.MustCompile(`\b[A-Z]{2}\s?\d{8,12}\b`)},
	{"bank_details", "bank routing details", regexp.MustCompile(`(?i)\b(iban|bic|swift|sort\s+code|bank\s+code|routing)\b`)},
	{"account_number", "bank account number label", regexp.MustCompile(`(?i)\b(account|acct|a/c)\s*(no\b|number\b|#)`)},
	{"phone", "phone or fax contact", regexp.MustCompile(`(?i)\b(tel|phone|fax|mobile)\b`)},
	{"email", "email address", regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{"website", "web address", regexp.MustCompile(`(?i)(\bwww\.|https?://)`)},
	{"contact", "correspondence phrases", regexp.MustCompile(`(?i)\b(contact|attn|attention|dear|sincerely|regards)\b`)},
	{"street", "street address", regexp.MustCompile(`(?i)\b(street|strasse|straße|avenue|boulevard|p\.?\s?o\.?\s+box)\b`)},
	{"postcode_city", "postcode followed by a city name", regexp.MustCompile(`^\d{4,5}\s+\p{Lu}\p{Ll}+(\s+\p{Lu}\p{Ll}+)?$`)},
	{"date_label", "labelled date or period", regexp.MustCompile(`(?i)\b(date|due|dated|period)\s*:`)},
	{"date_numeric", "numeric date stamp", regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)},
	{"date_text", "written-out date", regexp.MustCompile(`(?i)\b\d{1,2}\.?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\b`)},
	{"column_description", "description column header", regexp.MustCompile(`(?i)^\s*(service\s+)?description\b`)},
	{"column_without_vat", "net amount column header", regexp.MustCompile(`(?i)\bwithout\s+vat\b`)},
	{"column_single", "single column header word", regexp.MustCompile(`(?i)^\s*(qty|quantity|unit\s+price|price|amount|pos\.?|item)\s*$`)},
	{"totals", "total or balance line", regexp.MustCompile(`(?i)^\s*(sub\s*-?\s*total|total|grand\s+total|net\s+total|amount\s+due|balance\s+due|balance)\b`)},
	{"page_marker", "page footer", regexp.MustCompile(`(?i)\bpage\s+\d+\s*(of|/)\s*\d+|^\s*page\s+\d+\s*$`)},
	{"document_title", "document title line", regexp.MustCompile(`(?i)^\s*(tax\s+|commercial\s+)?(invoice|rechnung)\s*$`)},
	{"registration", "company registration footer", regexp.MustCompile(`(?i)\b(registered\s+office|commercial\s+register|managing\s+director|company\s+reg)\b`)},
	{"payment_terms", "payment terms or closing text", regexp.MustCompile(`(?i)\b(payment\s+terms|payable\s+within|thank\s+you)\b`)},
}

// HeaderTerms mark a column header or totals line. A term only matches as
// whole words, so "Totalstation rental" is not a header.
var HeaderTerms = []NamedTerm{
	{"service description", "column header"},
	{"description", "column header"},
	{"amount without vat", "column header"},
	{"without vat", "column header"},
	{"incl. vat", "column header"},
	{"excl. vat", "column header"},
	{"quantity", "column header"},
	{"qty", "column header"},
	{"unit price", "column header"},
	{"total", "totals line"},
	{"subtotal", "totals line"},
	{"sub-total", "totals line"},
	{"amount due", "totals line"},
	{"invoice no", "document header"},
	{"invoice number", "document header"},
	{"invoice date", "document header"},
	{"item no", "column header"},
}

// ServiceVocabulary are words that typically appear in a billed item.
var ServiceVocabulary = []NamedTerm{
	{"fee", "charge"},
	{"charge", "charge"},
	{"service", "service"},
	{"item", "generic item"},
	{"product", "generic item"},
	{"license", "software"},
	{"licence", "software"},
	{"subscription", "recurring"},
	{"support", "service"},
	{"maintenance", "service"},
	{"consulting", "service"},
	{"consultancy", "service"},
	{"hosting", "software"},
	{"user", "seat based"},
	{"seat", "seat based"},
	{"account", "seat based"},
	{"module", "software"},
	{"package", "bundle"},
	{"plan", "recurring"},
	{"installation", "service"},
	{"training", "service"},
	{"hour", "time based"},
	{"setup", "service"},
	{"rental", "recurring"},
	{"delivery", "logistics"},
	{"shipping", "logistics"},
	{"storage", "software"},
	{"software", "software"},
	{"hardware", "goods"},
	{"development", "service"},
	{"design", "service"},
	{"upgrade", "software"},
	{"addon", "software"},
	{"add-on", "software"},
	{"extension", "software"},
	{"domain", "software"},
	{"server", "software"},
	{"usage", "metered"},
	{"repair", "service"},
	{"material", "goods"},
	{"labour", "service"},
	{"labor", "service"},
	{"basic", "tier"},
	{"premium", "tier"},
}

// TableHeaders are the column header combinations that identify a tabular layout.
var TableHeaders = []HeaderSignature{
	{
		Name: "description_amount_quantity",
		Groups: [][]string{
			{"description", "item", "product"},
			{"amount"},
			{"quantity", "qty"},
		},
	},
	{
		Name: "price_qty",
		Groups: [][]string{
			{"price"},
			{"qty"},
		},
	},
}

// ProductMarkers flag the first real row of a table.
var ProductMarkers = []NamedPattern{
	{"product_code", "alphanumeric article code", regexp.MustCompile(`\b[A-Z]{2,5}[-_]?\d{2,}\b`)},
	{"brand_name", "camel-cased product or brand name", regexp.MustCompile(`\b[a-z]{1,4}[A-Z][A-Za-z]+\b`)},
	{"sku_label", "article number label", regexp.MustCompile(`(?i)\b(sku|art\.?\s*no|part\s*no)\b`)},
}

// ShortCodePattern matches descriptions that are really just codes.
var ShortCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-_/.]{0,7}$`)

var vocabularyPattern = buildVocabularyPattern(ServiceVocabulary)

func buildVocabularyPattern(terms []NamedTerm) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(t.Term))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)(?:s|es)?\b`)
}
