package lineitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"€10.00", "10"},
		{"10,50", "10.5"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1,234", "1234"},
		{"1.234.567", "1234567"},
		{"1.234.56", "1234.56"},
		{"(12.00)", "-12"},
		{"-5", "-5"},
		{"5-", "-5"},
		{"EUR 99.90", "99.9"},
		{"99.90 USD", "99.9"},
		{"$ 1'250.00", "1250"},
		{"1O.OO", "10"},
		{"19%", "19"},
		{"  7  ", "7"},
		{"abc", "0"},
		{"", "0"},
		{"€", "0"},
		{"1,2,3", "123"},
	}

	for _, tt := range tests {
		assertDecimal(t, tt.want, ParseDecimal(tt.in), tt.in)
	}
}

func TestParseCurrencyMatchesParseDecimal(t *testing.T) {
	for _, in := range []string{"€1.234,56", "£3", "garbage", "(4.50)"} {
		assert.True(t, ParseDecimal(in).Equal(ParseCurrency(in)), in)
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("€5.00 1")
	assert.Len(t, tokens, 2)
	assert.Equal(t, tokenCurrency, tokens[0].kind)
	assertDecimal(t, "5", tokens[0].value)
	assert.Equal(t, tokenNumber, tokens[1].kind)
	assertDecimal(t, "1", tokens[1].value)

	tokens = tokenize("Hosting € 10.00 20.00 € 2x 19%")
	kinds := make([]tokenKind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
	}
	assert.Equal(t, []tokenKind{tokenText, tokenCurrency, tokenCurrency, tokenNumber, tokenPercent}, kinds)
	assertDecimal(t, "20", tokens[2].value)
	assertDecimal(t, "2", tokens[3].value)
	assertDecimal(t, "19", tokens[4].value)
}

func TestTokenHelpers(t *testing.T) {
	line := "Support 3 €10.00 €30.00 VAT 19%"
	assert.Len(t, currencyTokens(line), 2)
	assert.Len(t, bareNumbers(line), 1)
	assert.Len(t, percentTokens(line), 1)
	assert.Equal(t, "Support VAT", allText(line))
}
