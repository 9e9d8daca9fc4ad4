package service

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/utils/lineitem"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var invoiceText = strings.Join([]string{
	"ACME Cloud GmbH",
	"Invoice No: 2024-0117",
	"Customer number: 4711",
	"VAT ID: DE123456789",
	"Hosting package 2 €10.00 €20.00",
	"Premium support plan 1 €50.00 €50.00",
	"Domain renewal fee 3 €12.00 €36.00",
	"Total amount €106.00",
	"IBAN DE89 3704 0044 0532 0130 00",
}, "\n")

var epcPayload = strings.Join([]string{
	"BCD",
	"002",
	"1",
	"SCT",
	"BFSWDE33BER",
	"ACME Cloud GmbH",
	"DE89370400440532013000",
	"EUR106.00",
	"",
	"",
	"Invoice 2024-0117",
}, "\n")

type fakeRecognizer struct {
	name  string
	text  string
	conf  float64
	err   error
	calls atomic.Int32
}

func (f *fakeRecognizer) Name() string { return f.name }

func (f *fakeRecognizer) RecognizeText(ctx context.Context, data []byte) (string, float64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text, f.conf, nil
}

type fakePDF struct {
	text    string
	textErr error
	images  [][]byte
	imgErr  error
}

func (f *fakePDF) ExtractText([]byte, string) (string, error) { return f.text, f.textErr }

func (f *fakePDF) ExtractImages([]byte, string) ([][]byte, error) { return f.images, f.imgErr }

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(pdf PDFProcessor, recognizers ...TextRecognizer) *InvoiceService {
	logger, _ := test.NewNullLogger()
	s := NewInvoiceService(lineitem.NewExtractor(), pdf, logger, recognizers...)
	s.now = func() time.Time { return fixedNow }
	return s
}

func qrPNG(t *testing.T, payload string) []byte {
	t.Helper()
	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 400, 400, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))
	return buf.Bytes()
}
