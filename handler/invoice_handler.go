package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceService is the extraction behaviour the HTTP layer depends on.
type InvoiceService interface {
	ExtractFromText(text string, total, tolerance *decimal.Decimal) dto.ExtractionResponse
	ExtractFromDocument(ctx context.Context, in dto.DocumentInput) (*dto.ExtractionResponse, error)
	Reconcile(req dto.ReconcileRequest) dto.ReconcileResponse
	ExportXLSX(resp dto.ExtractionResponse) ([]byte, error)
}

type InvoiceHandler struct {
	invoiceService InvoiceService
	maxFileSize    int64
	log            logrus.FieldLogger
}

func NewInvoiceHandler(invoiceService InvoiceService, maxFileSize int64, log logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// ExtractDocument handles POST /invoices/line-items with a PDF or image upload.
func (h *InvoiceHandler) ExtractDocument(c *gin.Context) {
	log := requestLog(c, h.log)

	var req dto.InvoiceUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", dto.ErrFileRequired.Error(), err)
		return
	}
	if err := req.Validate(h.maxFileSize); err != nil {
		h.sendError(c, uploadStatus(err), "INVALID_FILE", err.Error(), err)
		return
	}
	total, tolerance, err := req.Amounts()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	data, err := readUpload(req)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_FILE", "Failed to read uploaded file", err)
		return
	}

	log.WithFields(logrus.Fields{
		"filename": req.File.Filename,
		"size":     req.File.Size,
	}).Info("Processing invoice document")

	resp, err := h.invoiceService.ExtractFromDocument(c.Request.Context(), dto.DocumentInput{
		Filename:  req.File.Filename,
		Data:      data,
		Password:  req.Password,
		Total:     total,
		Tolerance: tolerance,
	})
	if err != nil {
		h.sendError(c, uploadStatus(err), "EXTRACTION_FAILED", "Failed to extract line items", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func readUpload(req dto.InvoiceUploadRequest) ([]byte, error) {
	file, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// ExtractText handles POST /line-items/extract with already recognised text.
func (h *InvoiceHandler) ExtractText(c *gin.Context) {
	var req dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required", err)
		return
	}

	c.JSON(http.StatusOK, h.invoiceService.ExtractFromText(req.Text, req.Total, req.Tolerance))
}

// Reconcile handles POST /line-items/reconcile.
func (h *InvoiceHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "total is required", err)
		return
	}

	c.JSON(http.StatusOK, h.invoiceService.Reconcile(req))
}

// Export handles POST /line-items/export and returns an xlsx workbook.
func (h *InvoiceHandler) Export(c *gin.Context) {
	var req dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required", err)
		return
	}

	resp := h.invoiceService.ExtractFromText(req.Text, req.Total, req.Tolerance)
	data, err := h.invoiceService.ExportXLSX(resp)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export line items", err)
		return
	}

	filename := "line-items.xlsx"
	if resp.Header.InvoiceNumber != "" {
		filename = fmt.Sprintf("line-items-%s.xlsx", sanitizeFilename(resp.Header.InvoiceNumber))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Health handles GET /health.
func (h *InvoiceHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: "OCR Invoice Extraction",
	})
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, dto.ErrNoTextExtracted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrFileRequired), errors.Is(err, dto.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func sanitizeFilename(s string) string {
	out := []rune(s)
	for i, r := range out {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			out[i] = '_'
		}
	}
	return string(out)
}

// sendError sends a structured error response
func (h *InvoiceHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		requestLog(c, h.log).WithError(err).WithField("status", statusCode).Warn(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
