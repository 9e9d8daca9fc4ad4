package lineitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyDescription(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"wmView Basic Fee", true},
		{"Additional user account", true},
		{"Premium support plan", true},
		{"Replacement filter cartridge", true},
		{"", false},
		{"   ", false},
		{"Invoice No: 12345", false},
		{"Customer number 4711", false},
		{"VAT ID: DE123456789", false},
		{"Phone: +49 30 123456", false},
		{"billing@example.com", false},
		{"Service Description", false},
		{"Without VAT", false},
		{"Total", false},
		{"Page 1 of 2", false},
		{"Date: 01.02.2024", false},
		{"€5.00 1", false},
		{"Fee", true},
		{"Widget", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLikelyDescription(tt.line), tt.line)
	}
}

func TestIsLikelyNumeric(t *testing.T) {
	assert.True(t, IsLikelyNumeric("€5.00"))
	assert.True(t, IsLikelyNumeric("12.50 $"))
	assert.True(t, IsLikelyNumeric("£3"))
	assert.False(t, IsLikelyNumeric("5.00"))
	assert.False(t, IsLikelyNumeric("€"))
	assert.False(t, IsLikelyNumeric(""))
}

func TestContainsNumbers(t *testing.T) {
	assert.True(t, ContainsNumbers("abc 1"))
	assert.False(t, ContainsNumbers("abc"))
	assert.False(t, ContainsNumbers(""))
}

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine(""))
	assert.True(t, IsHeaderLine("Quantity"))
	assert.True(t, IsHeaderLine("UNIT PRICE"))
	assert.True(t, IsHeaderLine("Amount without VAT"))
	assert.True(t, IsHeaderLine("Subtotal €20.00"))
	assert.False(t, IsHeaderLine("wmView Basic Fee"))
	assert.False(t, IsHeaderLine("Private training"))
	assert.False(t, IsHeaderLine("€20.00"))

	// header words inside longer words do not count
	assert.False(t, IsHeaderLine("Homepage design"))
	assert.False(t, IsHeaderLine("Invoice processing service"))
	assert.False(t, IsHeaderLine("Totalstation rental"))
	assert.True(t, IsHeaderLine("Total amount €106.00"))
	assert.True(t, IsHeaderLine("Invoice No: 2024-0117"))
}

func TestMatchBoilerplate(t *testing.T) {
	p, ok := MatchBoilerplate("john@example.com")
	assert.True(t, ok)
	assert.Equal(t, "email", p.Name)

	p, ok = MatchBoilerplate("IBAN DE89 3704 0044 0532 0130 00")
	assert.True(t, ok)
	assert.Equal(t, "bank_details", p.Name)

	p, ok = MatchBoilerplate("10115 Berlin")
	assert.True(t, ok)
	assert.Equal(t, "postcode_city", p.Name)

	p, ok = MatchBoilerplate("Page 2")
	assert.True(t, ok)
	assert.Equal(t, "page_marker", p.Name)

	p, ok = MatchBoilerplate("INVOICE")
	assert.True(t, ok)
	assert.Equal(t, "document_title", p.Name)

	_, ok = MatchBoilerplate("Additional user account")
	assert.False(t, ok)
}

func TestPatternTablesAreNamed(t *testing.T) {
	for _, p := range BoilerplatePatterns {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Purpose, p.Name)
		assert.NotNil(t, p.Pattern, p.Name)
	}
	for _, p := range ProductMarkers {
		assert.NotEmpty(t, p.Name)
		assert.NotNil(t, p.Pattern, p.Name)
	}
	for _, term := range ServiceVocabulary {
		assert.True(t, HasVocabulary(term.Term), term.Term)
	}
	assert.Len(t, CurrencySymbols, 4)
}

func TestHasVocabulary(t *testing.T) {
	assert.True(t, HasVocabulary("Monthly hosting"))
	assert.True(t, HasVocabulary("12 Licenses"))
	assert.True(t, HasVocabulary("Consulting hours"))
	assert.False(t, HasVocabulary("coffee beans"))
	assert.False(t, HasVocabulary(""))
}

func TestHasProductMarker(t *testing.T) {
	assert.True(t, HasProductMarker("wmView Basic Fee"))
	assert.True(t, HasProductMarker("iPhone case"))
	assert.True(t, HasProductMarker("SKU-1234 cable"))
	assert.False(t, HasProductMarker("hello world"))
}

func TestIsNonText(t *testing.T) {
	assert.True(t, IsNonText("123.45 ---"))
	assert.True(t, IsNonText("€ 10,00"))
	assert.False(t, IsNonText("10 hours"))
}
