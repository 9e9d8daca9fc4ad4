package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentPayloadEPC(t *testing.T) {
	info, ok := ParsePaymentPayload(epcPayload)
	require.True(t, ok)

	assert.Equal(t, PaymentFormatEPC, info.Format)
	assert.Equal(t, "ACME Cloud GmbH", info.Creditor)
	assert.Equal(t, "DE89370400440532013000", info.IBAN)
	assert.Equal(t, "EUR", info.Currency)
	require.True(t, info.Amount.Valid)
	assert.Equal(t, "106", info.Amount.Decimal.String())
	assert.Equal(t, "Invoice 2024-0117", info.Reference)
}

func TestParsePaymentPayloadEPCWithoutAmount(t *testing.T) {
	payload := strings.Join([]string{"BCD", "002", "1", "SCT", "", "ACME", "DE89370400440532013000"}, "\r\n")

	info, ok := ParsePaymentPayload(payload)
	require.True(t, ok)
	assert.False(t, info.Amount.Valid)
	assert.Empty(t, info.Currency)
}

func TestParsePaymentPayloadSwiss(t *testing.T) {
	lines := make([]string, 31)
	lines[0] = "SPC"
	lines[1] = "0200"
	lines[2] = "1"
	lines[spcIBAN] = "CH4431999123000889012"
	lines[4] = "S"
	lines[spcCreditor] = "Robert Schneider AG"
	lines[spcAmount] = "1949.75"
	lines[spcCurrency] = "CHF"
	lines[27] = "QRR"
	lines[spcReference] = "210000000003139471430009017"
	lines[30] = "EPD"

	info, ok := ParsePaymentPayload(strings.Join(lines, "\n"))
	require.True(t, ok)

	assert.Equal(t, PaymentFormatSwiss, info.Format)
	assert.Equal(t, "Robert Schneider AG", info.Creditor)
	assert.Equal(t, "CHF", info.Currency)
	require.True(t, info.Amount.Valid)
	assert.Equal(t, "1949.75", info.Amount.Decimal.String())
	assert.Equal(t, "210000000003139471430009017", info.Reference)
}

func TestParsePaymentPayloadRejectsOtherCodes(t *testing.T) {
	for _, payload := range []string{"", "https://example.com/pay", "BCD\n002", "SPC\n0200\n1"} {
		_, ok := ParsePaymentPayload(payload)
		assert.False(t, ok, payload)
	}
}

func TestDecodePaymentQR(t *testing.T) {
	info, err := DecodePaymentQR(qrPNG(t, epcPayload))
	require.NoError(t, err)
	assert.Equal(t, "106", info.Amount.Decimal.String())

	_, err = DecodePaymentQR(qrPNG(t, "just a link"))
	assert.Error(t, err)

	_, err = DecodePaymentQR([]byte("not an image"))
	assert.Error(t, err)
}
