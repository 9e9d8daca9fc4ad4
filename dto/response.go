package dto

import "errors"

// Custom errors
var (
	ErrFileRequired        = errors.New("file is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the upload limit")
	ErrNoTextExtracted     = errors.New("no text could be extracted from the document")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
