package service

import (
	"bytes"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/shopspring/decimal"
)

// Payment QR formats.
const (
	PaymentFormatEPC   = "epc"
	PaymentFormatSwiss = "swiss_qr"
)

// PaymentInfo is the content of a payment QR code printed on an invoice.
type PaymentInfo struct {
	Format    string
	Creditor  string
	IBAN      string
	Amount    decimal.NullDecimal
	Currency  string
	Reference string
}

var epcAmount = regexp.MustCompile(`^([A-Z]{3})(\d+(?:\.\d{1,2})?)$`)

// Swiss QR-bill field positions.
const (
	spcIBAN      = 3
	spcCreditor  = 5
	spcAmount    = 18
	spcCurrency  = 19
	spcReference = 28
	spcMessage   = 29
)

// DecodePaymentQR looks for an EPC or Swiss QR-bill code in an encoded image.
func DecodePaymentQR(data []byte) (*PaymentInfo, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return decodePaymentImage(img)
}

func decodePaymentImage(img image.Image) (*PaymentInfo, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return nil, fmt.Errorf("no QR code found: %w", err)
	}

	info, ok := ParsePaymentPayload(result.GetText())
	if !ok {
		return nil, fmt.Errorf("QR code is not a payment code")
	}
	return info, nil
}

// ParsePaymentPayload parses the text of an EPC ("BCD") or Swiss ("SPC")
// payment code.
func ParsePaymentPayload(text string) (*PaymentInfo, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	switch lines[0] {
	case "BCD":
		return parseEPC(lines)
	case "SPC":
		return parseSwiss(lines)
	}
	return nil, false
}

func parseEPC(lines []string) (*PaymentInfo, bool) {
	if len(lines) < 7 {
		return nil, false
	}
	info := &PaymentInfo{
		Format:   PaymentFormatEPC,
		Creditor: lines[5],
		IBAN:     lines[6],
	}
	if len(lines) > 7 {
		if m := epcAmount.FindStringSubmatch(lines[7]); m != nil {
			info.Currency = m[1]
			info.Amount = decimal.NewNullDecimal(decimal.RequireFromString(m[2]))
		}
	}
	switch {
	case len(lines) > 9 && lines[9] != "":
		info.Reference = lines[9]
	case len(lines) > 10:
		info.Reference = lines[10]
	}
	return info, true
}

func parseSwiss(lines []string) (*PaymentInfo, bool) {
	if len(lines) <= spcCurrency {
		return nil, false
	}
	info := &PaymentInfo{
		Format:   PaymentFormatSwiss,
		Creditor: lines[spcCreditor],
		IBAN:     lines[spcIBAN],
		Currency: lines[spcCurrency],
	}
	if amount, err := decimal.NewFromString(lines[spcAmount]); err == nil && amount.IsPositive() {
		info.Amount = decimal.NewNullDecimal(amount)
	}
	switch {
	case len(lines) > spcReference && lines[spcReference] != "":
		info.Reference = lines[spcReference]
	case len(lines) > spcMessage:
		info.Reference = lines[spcMessage]
	}
	return info, true
}
