package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/sirupsen/logrus"
)

type TesseractClient struct {
	dataPath  string
	languages []string
	log       logrus.FieldLogger
}

// NewTesseractClient creates a client for the given tessdata directory and a
// "+" separated language list such as "eng+deu".
func NewTesseractClient(dataPath, language string, log logrus.FieldLogger) *TesseractClient {
	langs := strings.Split(language, "+")
	if language == "" {
		langs = []string{"eng"}
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: langs,
		log:       log,
	}
}

// Name identifies the engine in responses and logs.
func (tc *TesseractClient) Name() string {
	return "tesseract"
}

// RecognizeText runs OCR on an encoded image and returns the text together
// with the mean word confidence in [0,1].
func (tc *TesseractClient) RecognizeText(ctx context.Context, data []byte) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	prepared, err := PrepareImage(data)
	if err != nil {
		tc.log.WithError(err).Debug("Image pre-processing failed, using original")
		prepared = data
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
			return "", 0, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	// keeps column gaps so quantity and price stay separate tokens
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", 0, fmt.Errorf("failed to configure tesseract: %w", err)
	}

	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		tc.log.WithError(err).Warn("Tesseract bounding boxes unavailable, confidence unknown")
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}
	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes)) / 100
	}

	tc.log.WithFields(logrus.Fields{
		"characters": len(text),
		"words":      len(boxes),
		"confidence": avgConf,
	}).Debug("Tesseract OCR finished")

	return text, avgConf, nil
}
