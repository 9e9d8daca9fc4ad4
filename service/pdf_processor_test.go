package service

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

func TestJoinRowSeparatesDistantRuns(t *testing.T) {
	row := []pdf.Text{
		{S: "€20.00", X: 400, W: 30, FontSize: 10},
		{S: "Hosting", X: 50, W: 35, FontSize: 10},
		{S: "package", X: 87, W: 36, FontSize: 10},
		{S: "2", X: 300, W: 5, FontSize: 10},
	}

	assert.Equal(t, "Hosting package 2 €20.00", joinRow(row))
}

func TestJoinRowKeepsGlyphRuns(t *testing.T) {
	row := []pdf.Text{
		{S: "Ho", X: 50, W: 10, FontSize: 10},
		{S: "st", X: 60, W: 8, FontSize: 10},
		{S: "ing", X: 68.5, W: 12, FontSize: 10},
	}

	assert.Equal(t, "Hosting", joinRow(row))
}

func TestExtractTextRejectsInvalidPDF(t *testing.T) {
	_, err := NewPDFProcessor().ExtractText([]byte("not a pdf"), "")
	assert.Error(t, err)
}
