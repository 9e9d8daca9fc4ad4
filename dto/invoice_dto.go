package dto

import "github.com/shopspring/decimal"

// Text sources reported in ExtractionResponse.
const (
	TextSourceRequest   = "request"
	TextSourcePDF       = "pdf_text"
	TextSourceTesseract = "tesseract"
	TextSourcePaddle    = "paddleocr"
)

// Total sources, in order of precedence.
const (
	TotalSourceCaller = "caller"
	TotalSourceQR     = "qr_code"
	TotalSourceText   = "invoice_text"
)

// LineItem is one extracted invoice position.
type LineItem struct {
	ItemNumber     string              `json:"item_number,omitempty"`
	Description    string              `json:"description"`
	Quantity       decimal.Decimal     `json:"quantity"`
	UnitPrice      decimal.Decimal     `json:"unit_price"`
	Amount         decimal.Decimal     `json:"amount"`
	TaxRate        decimal.NullDecimal `json:"tax_rate"`
	TaxAmount      decimal.NullDecimal `json:"tax_amount"`
	DiscountRate   decimal.NullDecimal `json:"discount_rate"`
	DiscountAmount decimal.NullDecimal `json:"discount_amount"`

	Confidence         float64 `json:"confidence"`
	StrategyConfidence float64 `json:"strategy_confidence"`
	Source             string  `json:"source,omitempty"`
	Line               int     `json:"line"`
}

// InvoiceHeader holds the document level fields found next to the items.
type InvoiceHeader struct {
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	InvoiceDate   string           `json:"invoice_date,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
}

// ExtractionResponse is returned by both extraction endpoints.
type ExtractionResponse struct {
	Items             []LineItem    `json:"items"`
	Format            string        `json:"format"`
	Strategy          string        `json:"strategy,omitempty"`
	AverageConfidence float64       `json:"average_confidence"`
	NeedsReview       bool          `json:"needs_review"`
	Header            InvoiceHeader `json:"header"`

	ItemsTotal  decimal.Decimal  `json:"items_total"`
	KnownTotal  *decimal.Decimal `json:"known_total,omitempty"`
	TotalSource string           `json:"total_source,omitempty"`
	// Reconciled is nil when no total was known.
	Reconciled *bool `json:"reconciled,omitempty"`

	TextSource    string  `json:"text_source"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
	ProcessedAt   string  `json:"processed_at"`
}

// ReconcileResponse reports whether the items add up to the total.
type ReconcileResponse struct {
	Reconciled bool            `json:"reconciled"`
	ItemsTotal decimal.Decimal `json:"items_total"`
	Total      decimal.Decimal `json:"total"`
	Difference decimal.Decimal `json:"difference"`
	Tolerance  decimal.Decimal `json:"tolerance"`
}
