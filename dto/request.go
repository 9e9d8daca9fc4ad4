package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceUploadRequest is the multipart form for document extraction.
type InvoiceUploadRequest struct {
	File      *multipart.FileHeader `form:"file" binding:"required"`
	Password  string                `form:"password"`
	Total     string                `form:"total"`
	Tolerance string                `form:"tolerance"`
}

// Validate checks the upload against the size limit and supported types.
func (r *InvoiceUploadRequest) Validate(maxSize int64) error {
	if r.File == nil {
		return ErrFileRequired
	}
	if maxSize > 0 && r.File.Size > maxSize {
		return ErrFileTooLarge
	}
	if !IsSupportedFile(r.File.Filename) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(r.File.Filename))
	}
	return nil
}

// Amounts parses the optional total and tolerance form values.
func (r *InvoiceUploadRequest) Amounts() (total, tolerance *decimal.Decimal, err error) {
	if total, err = optionalDecimal("total", r.Total); err != nil {
		return nil, nil, err
	}
	if tolerance, err = optionalDecimal("tolerance", r.Tolerance); err != nil {
		return nil, nil, err
	}
	return total, tolerance, nil
}

func optionalDecimal(field, value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidAmount, field, value)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, field)
	}
	return &d, nil
}

// IsSupportedFile reports whether the extension is a PDF or a raster image.
func IsSupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif":
		return true
	}
	return false
}

// ExtractTextRequest carries already recognised invoice text.
type ExtractTextRequest struct {
	Text      string           `json:"text" binding:"required"`
	Total     *decimal.Decimal `json:"total,omitempty"`
	Tolerance *decimal.Decimal `json:"tolerance,omitempty"`
}

// ReconcileRequest checks a list of items against a known total.
type ReconcileRequest struct {
	Items     []LineItem       `json:"items"`
	Total     *decimal.Decimal `json:"total" binding:"required"`
	Tolerance *decimal.Decimal `json:"tolerance,omitempty"`
}

// DocumentInput is an uploaded invoice handed to the service layer.
type DocumentInput struct {
	Filename  string
	Data      []byte
	Password  string
	Total     *decimal.Decimal
	Tolerance *decimal.Decimal
}
