package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceHeader(t *testing.T) {
	text := `
		ACME Cloud GmbH
		Invoice No: INV-2024-0117
		Invoice Date: 15.03.2024
		Hosting package 2 €10.00 €20.00
		Subtotal €20.00
		VAT 19% €3.80
		Total €23.80
	`

	header := ParseInvoiceHeader(text)

	assert.Equal(t, "INV-2024-0117", header.InvoiceNumber)
	assert.Equal(t, "2024-03-15", header.InvoiceDate)
	assert.Equal(t, "EUR", header.Currency)
	require.NotNil(t, header.Total)
	assert.Equal(t, "23.8", header.Total.String())
}

func TestParseInvoiceHeaderGerman(t *testing.T) {
	text := `
		Rechnungsnummer: RE-1001
		Rechnungsdatum: 01/02/2024
		Gesamtbetrag 1.234,56 EUR
	`

	header := ParseInvoiceHeader(text)

	assert.Equal(t, "RE-1001", header.InvoiceNumber)
	assert.Equal(t, "2024-02-01", header.InvoiceDate)
	assert.Equal(t, "EUR", header.Currency)
	require.NotNil(t, header.Total)
	assert.Equal(t, "1234.56", header.Total.String())
}

func TestParseInvoiceHeaderEmpty(t *testing.T) {
	header := ParseInvoiceHeader("")
	assert.Empty(t, header.InvoiceNumber)
	assert.Empty(t, header.InvoiceDate)
	assert.Empty(t, header.Currency)
	assert.Nil(t, header.Total)
}

func TestExtractStatedTotal(t *testing.T) {
	total, ok := ExtractStatedTotal("Total net 100.00\nTotal incl. VAT 19%: 119.00")
	require.True(t, ok)
	assert.Equal(t, "119", total.String())

	total, ok = ExtractStatedTotal("Subtotal 50.00\nAmount due: $ 75.50")
	require.True(t, ok)
	assert.Equal(t, "75.5", total.String())

	_, ok = ExtractStatedTotal("Subtotal 50.00\nHosting 2 x 10.00")
	assert.False(t, ok)
}

func TestExtractCurrency(t *testing.T) {
	assert.Equal(t, "CHF", extractCurrency("Betrag CHF 120.00"))
	assert.Equal(t, "GBP", extractCurrency("Total £12.00"))
	assert.Equal(t, "", extractCurrency("Total 12.00"))
}
