package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PaddleClient calls a PaddleOCR hub serving endpoint over HTTP.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// NewPaddleClient creates a client for apiURL. An empty URL disables it.
func NewPaddleClient(apiURL string, timeout time.Duration, log logrus.FieldLogger) *PaddleClient {
	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Name identifies the engine in responses and logs.
func (p *PaddleClient) Name() string {
	return "paddleocr"
}

// Enabled reports whether an endpoint is configured.
func (p *PaddleClient) Enabled() bool {
	return p != nil && p.apiURL != ""
}

// RecognizeText posts the image to PaddleOCR and returns one line per
// recognised text box with the mean box confidence.
func (p *PaddleClient) RecognizeText(ctx context.Context, data []byte) (string, float64, error) {
	if !p.Enabled() {
		return "", 0, fmt.Errorf("PaddleOCR API URL not configured")
	}

	payload, err := json.Marshal(paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", 0, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var (
		textBuilder strings.Builder
		totalConf   float64
		boxes       int
	)
	for _, page := range result.Results {
		for _, line := range page {
			if strings.TrimSpace(line.Text) == "" {
				continue
			}
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
			totalConf += line.Confidence
			boxes++
		}
	}

	if boxes == 0 {
		return "", 0, fmt.Errorf("PaddleOCR extracted no text from image")
	}

	avgConf := totalConf / float64(boxes)
	p.log.WithFields(logrus.Fields{
		"characters": textBuilder.Len(),
		"boxes":      boxes,
		"confidence": avgConf,
	}).Debug("PaddleOCR finished")

	return textBuilder.String(), avgConf, nil
}
