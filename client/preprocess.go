package client

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Scans narrower than this are upscaled before recognition.
const minOCRWidth = 1200

// PrepareImage decodes an invoice scan and returns a PNG that Tesseract reads
// more reliably: upright, grayscale, contrast boosted and slightly sharpened.
func PrepareImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return EncodePNG(Enhance(img))
}

// Enhance applies the OCR pre-processing chain to an already decoded image.
func Enhance(img image.Image) image.Image {
	if w := img.Bounds().Dx(); w > 0 && w < minOCRWidth {
		img = imaging.Resize(img, minOCRWidth, 0, imaging.Lanczos)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 20)
	return imaging.Sharpen(gray, 0.8)
}

// EncodePNG serialises img for the OCR engines.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
