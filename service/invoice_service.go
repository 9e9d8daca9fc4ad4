package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/lineitem"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TextRecognizer is an OCR engine turning an encoded image into text.
type TextRecognizer interface {
	Name() string
	RecognizeText(ctx context.Context, data []byte) (string, float64, error)
}

// Embedded PDF text scoring below this is treated as a scanned document.
const minTextQuality = 40.0

// OCR output shorter than this counts as a failed recognition.
const minRecognizedLength = 10

// InvoiceService turns uploaded invoices and raw text into reconciled line items.
type InvoiceService struct {
	extractor    *lineitem.Extractor
	pdfProcessor PDFProcessor
	recognizers  []TextRecognizer
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewInvoiceService wires the extraction engine to the document readers.
// Recognizers are tried in the order given. A nil extractor or logger falls
// back to the defaults.
func NewInvoiceService(
	extractor *lineitem.Extractor,
	pdfProcessor PDFProcessor,
	log logrus.FieldLogger,
	recognizers ...TextRecognizer,
) *InvoiceService {
	if extractor == nil {
		extractor = lineitem.NewExtractor()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &InvoiceService{
		extractor:    extractor,
		pdfProcessor: pdfProcessor,
		recognizers:  recognizers,
		log:          log,
		now:          time.Now,
	}
}

// ExtractFromText runs the engine on already recognised text.
func (s *InvoiceService) ExtractFromText(text string, total, tolerance *decimal.Decimal) dto.ExtractionResponse {
	return s.buildResponse(recognized{text: text, source: dto.TextSourceRequest}, total, tolerance)
}

// recognized is the text of a document together with where it came from.
type recognized struct {
	text       string
	source     string
	confidence float64
	payment    *PaymentInfo
}

// ExtractFromDocument reads a PDF or image invoice and extracts its line items.
func (s *InvoiceService) ExtractFromDocument(ctx context.Context, in dto.DocumentInput) (*dto.ExtractionResponse, error) {
	if !dto.IsSupportedFile(in.Filename) {
		return nil, fmt.Errorf("%w: %s", dto.ErrUnsupportedFileType, filepath.Ext(in.Filename))
	}

	log := s.log.WithField("filename", in.Filename)

	var (
		doc recognized
		err error
	)
	if strings.EqualFold(filepath.Ext(in.Filename), ".pdf") {
		doc, err = s.readPDF(ctx, in, log)
	} else {
		doc, err = s.readImages(ctx, [][]byte{in.Data}, log)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.text) == "" {
		return nil, dto.ErrNoTextExtracted
	}

	resp := s.buildResponse(doc, in.Total, in.Tolerance)
	return &resp, nil
}

func (s *InvoiceService) readPDF(ctx context.Context, in dto.DocumentInput, log logrus.FieldLogger) (recognized, error) {
	text, err := s.pdfProcessor.ExtractText(in.Data, in.Password)
	if err != nil {
		log.WithError(err).Warn("PDF text extraction failed")
	}

	quality := evaluateTextQuality(text)
	if quality >= minTextQuality {
		return recognized{text: text, source: dto.TextSourcePDF, confidence: 1}, nil
	}

	log.WithField("quality", quality).Info("PDF text is weak, running OCR on embedded images")
	images, imgErr := s.pdfProcessor.ExtractImages(in.Data, in.Password)
	if imgErr != nil || len(images) == 0 {
		log.WithError(imgErr).Warn("Failed to extract images from PDF")
		if strings.TrimSpace(text) != "" {
			return recognized{text: text, source: dto.TextSourcePDF, confidence: quality / 100}, nil
		}
		if err != nil {
			return recognized{}, fmt.Errorf("failed to read pdf: %w", err)
		}
		return recognized{}, dto.ErrNoTextExtracted
	}

	doc, ocrErr := s.readImages(ctx, images, log)
	if ocrErr != nil || strings.TrimSpace(doc.text) == "" {
		if strings.TrimSpace(text) != "" {
			return recognized{text: text, source: dto.TextSourcePDF, confidence: quality / 100, payment: doc.payment}, nil
		}
		return doc, ocrErr
	}
	return doc, nil
}

type pageResult struct {
	text       string
	source     string
	confidence float64
	payment    *PaymentInfo
	err        error
}

// readImages recognises every page concurrently and joins the text in page order.
func (s *InvoiceService) readImages(ctx context.Context, pages [][]byte, log logrus.FieldLogger) (recognized, error) {
	results := make([]pageResult, len(pages))

	var wg sync.WaitGroup
	for i, data := range pages {
		wg.Add(1)
		go func(i int, data []byte) {
			defer wg.Done()

			res := &results[i]
			if info, err := DecodePaymentQR(data); err == nil {
				res.payment = info
			}
			res.text, res.confidence, res.source, res.err = s.recognize(ctx, data, log)
		}(i, data)
	}
	wg.Wait()

	var (
		doc       recognized
		combined  strings.Builder
		totalConf float64
		count     int
		lastErr   error
	)
	for i, res := range results {
		if doc.payment == nil {
			doc.payment = res.payment
		}
		if res.err != nil {
			log.WithError(res.err).WithField("page", i+1).Warn("OCR failed for page")
			lastErr = res.err
			continue
		}
		combined.WriteString(res.text)
		combined.WriteString("\n")
		totalConf += res.confidence
		count++
		if doc.source == "" {
			doc.source = res.source
		}
	}

	if count == 0 {
		if lastErr == nil {
			lastErr = dto.ErrNoTextExtracted
		}
		return doc, fmt.Errorf("image OCR failed: %w", lastErr)
	}

	doc.text = combined.String()
	doc.confidence = totalConf / float64(count)
	return doc, nil
}

// recognize tries each engine in turn and keeps the first usable text.
func (s *InvoiceService) recognize(ctx context.Context, data []byte, log logrus.FieldLogger) (string, float64, string, error) {
	var lastErr error
	for _, r := range s.recognizers {
		if err := ctx.Err(); err != nil {
			return "", 0, "", err
		}
		text, conf, err := r.RecognizeText(ctx, data)
		if err != nil {
			log.WithError(err).WithField("engine", r.Name()).Debug("OCR engine failed")
			lastErr = err
			continue
		}
		if len(strings.TrimSpace(text)) < minRecognizedLength {
			lastErr = fmt.Errorf("%s returned too little text", r.Name())
			continue
		}
		return text, conf, r.Name(), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no OCR engine configured")
	}
	return "", 0, "", lastErr
}

func (s *InvoiceService) buildResponse(doc recognized, total, tolerance *decimal.Decimal) dto.ExtractionResponse {
	res := s.extractor.Analyze(doc.text)
	header := utils.ParseInvoiceHeader(doc.text)
	if header.Currency == "" && doc.payment != nil {
		header.Currency = doc.payment.Currency
	}

	resp := dto.ExtractionResponse{
		Items:             ToLineItems(res.Items),
		Format:            res.Format.String(),
		Strategy:          res.Strategy,
		AverageConfidence: res.AverageConfidence,
		NeedsReview:       res.NeedsReview,
		Header:            header,
		ItemsTotal:        lineitem.Sum(res.Items),
		TextSource:        doc.source,
		OCRConfidence:     doc.confidence,
		ProcessedAt:       s.now().UTC().Format(time.RFC3339),
	}

	if known, source, ok := resolveTotal(total, doc.payment, header); ok {
		reconciled := lineitem.ReconcileWithTotal(res.Items, known, s.tolerance(tolerance))
		resp.KnownTotal = &known
		resp.TotalSource = source
		resp.Reconciled = &reconciled
		if !reconciled {
			resp.NeedsReview = true
		}
	}

	s.log.WithFields(logrus.Fields{
		"format":      resp.Format,
		"strategy":    resp.Strategy,
		"items":       len(resp.Items),
		"confidence":  resp.AverageConfidence,
		"text_source": resp.TextSource,
		"reconciled":  resp.Reconciled != nil && *resp.Reconciled,
	}).Info("Invoice line items extracted")

	return resp
}

// resolveTotal picks the known invoice total: caller first, then a payment
// QR code, then the total printed in the text.
func resolveTotal(caller *decimal.Decimal, payment *PaymentInfo, header dto.InvoiceHeader) (decimal.Decimal, string, bool) {
	switch {
	case caller != nil:
		return *caller, dto.TotalSourceCaller, true
	case payment != nil && payment.Amount.Valid:
		return payment.Amount.Decimal, dto.TotalSourceQR, true
	case header.Total != nil:
		return *header.Total, dto.TotalSourceText, true
	}
	return decimal.Zero, "", false
}

func (s *InvoiceService) tolerance(requested *decimal.Decimal) decimal.Decimal {
	if requested != nil {
		return *requested
	}
	return s.extractor.Config().ReconcileTolerance
}

// Reconcile checks caller supplied items against a total.
func (s *InvoiceService) Reconcile(req dto.ReconcileRequest) dto.ReconcileResponse {
	items := FromLineItems(req.Items)
	total := decimal.Zero
	if req.Total != nil {
		total = *req.Total
	}
	tol := s.tolerance(req.Tolerance)
	sum := lineitem.Sum(items)

	return dto.ReconcileResponse{
		Reconciled: lineitem.ReconcileWithTotal(items, total, tol),
		ItemsTotal: sum,
		Total:      total,
		Difference: sum.Sub(total),
		Tolerance:  tol,
	}
}

// evaluateTextQuality scores extracted text from 0 to 100 by length and the
// presence of invoice vocabulary.
func evaluateTextQuality(text string) float64 {
	if text == "" {
		return 0.0
	}

	score := 0.0

	// Length score (max 40 points)
	textLen := len(strings.TrimSpace(text))
	if textLen > 500 {
		score += 40.0
	} else if textLen > 100 {
		score += 20.0
	} else if textLen > 20 {
		score += 10.0
	}

	keywords := []string{
		"invoice", "total", "amount", "qty", "quantity",
		"price", "vat", "tax", "rechnung",
	}

	textLower := strings.ToLower(text)
	keywordCount := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}

	// Each keyword adds points (up to 60)
	score += float64(keywordCount) * 6.67

	if score > 100.0 {
		score = 100.0
	}

	return score
}

// ToLineItems converts engine candidates to their API form.
func ToLineItems(cands []lineitem.Candidate) []dto.LineItem {
	items := make([]dto.LineItem, 0, len(cands))
	for _, c := range cands {
		items = append(items, dto.LineItem{
			ItemNumber:         c.ItemNumber,
			Description:        c.Description,
			Quantity:           c.Quantity,
			UnitPrice:          c.UnitPrice,
			Amount:             c.Amount,
			TaxRate:            c.TaxRate,
			TaxAmount:          c.TaxAmount,
			DiscountRate:       c.DiscountRate,
			DiscountAmount:     c.DiscountAmount,
			Confidence:         c.Confidence,
			StrategyConfidence: c.StrategyConfidence,
			Source:             c.Source,
			Line:               c.Line,
		})
	}
	return items
}

// FromLineItems converts API line items back into engine candidates.
func FromLineItems(items []dto.LineItem) []lineitem.Candidate {
	cands := make([]lineitem.Candidate, 0, len(items))
	for _, it := range items {
		cands = append(cands, lineitem.Candidate{
			ItemNumber:         it.ItemNumber,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			Amount:             it.Amount,
			TaxRate:            it.TaxRate,
			TaxAmount:          it.TaxAmount,
			DiscountRate:       it.DiscountRate,
			DiscountAmount:     it.DiscountAmount,
			Confidence:         it.Confidence,
			Scored:             true,
			StrategyConfidence: it.StrategyConfidence,
			Source:             it.Source,
			Line:               it.Line,
		})
	}
	return cands
}
