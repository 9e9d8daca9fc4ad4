package lineitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("  first \r\n\n\t\nsecond\n   ")
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, []string{"first", "second"}, doc.Lines())
	assert.Equal(t, "", doc.Line(5))
	assert.Equal(t, "", doc.Line(-1))

	copied := doc.Lines()
	copied[0] = "changed"
	assert.Equal(t, "first", doc.Line(0))
}

func TestDetectFormat(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		want Format
	}{
		{"tabular header", tabularInvoice, FormatTabular},
		{"price and qty header", lines("Item Price Qty", "Widget €1.00 2"), FormatTabular},
		{"description then numeric", multiLineInvoice, FormatMultiLine},
		{"items on one line", singleLineInvoice, FormatSingleLine},
		{"consecutive priced descriptions", lines("Hosting fee €10.00", "Setup fee €20.00", "Support fee €30.00", "Backup fee €40.00"), FormatSingleLine},
		{"too few pairs", lines("Additional user account", "€5.00 1", "Premium support plan", "€12.50 2"), FormatUnknown},
		{"noise", lines("hello", "world"), FormatUnknown},
		{"empty", "", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(NewDocument(tt.text), cfg))
		})
	}
}

func TestDetectFormatRespectsRepeatThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPatternRepeats = 2

	doc := NewDocument(lines("Additional user account", "€5.00 1", "Premium support plan", "€12.50 2"))
	assert.Equal(t, FormatMultiLine, DetectFormat(doc, cfg))
}

func TestFindTableHeader(t *testing.T) {
	idx, ok := FindTableHeader(NewDocument(lines("ACME GmbH", "Product Quantity Amount", "x")))
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = FindTableHeader(NewDocument(multiLineInvoice))
	assert.False(t, ok)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "tabular", FormatTabular.String())
	assert.Equal(t, "multi_line", FormatMultiLine.String())
	assert.Equal(t, "single_line", FormatSingleLine.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
