package service

import (
	"fmt"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	itemsSheet   = "Line Items"
	summarySheet = "Summary"
)

var exportHeaders = []string{
	"Pos",
	"Item No",
	"Description",
	"Quantity",
	"Unit Price",
	"Amount",
	"Tax Rate",
	"Tax Amount",
	"Discount Rate",
	"Discount Amount",
	"Confidence",
	"Strategy",
}

// ExportXLSX renders an extraction result as a workbook with one row per
// line item and a summary sheet with the reconciliation verdict.
func (s *InvoiceService) ExportXLSX(resp dto.ExtractionResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(itemsSheet, "A1", lastHeader, bold)

	for i, it := range resp.Items {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(itemsSheet, cell, v)
		}

		write(1, i+1)
		write(2, it.ItemNumber)
		write(3, it.Description)
		write(4, it.Quantity.InexactFloat64())
		write(5, it.UnitPrice.InexactFloat64())
		write(6, it.Amount.InexactFloat64())
		write(7, nullValue(it.TaxRate))
		write(8, nullValue(it.TaxAmount))
		write(9, nullValue(it.DiscountRate))
		write(10, nullValue(it.DiscountAmount))
		write(11, it.Confidence)
		write(12, it.Source)
	}

	_ = f.SetColWidth(itemsSheet, "A", "B", 10)
	_ = f.SetColWidth(itemsSheet, "C", "C", 48)
	_ = f.SetColWidth(itemsSheet, "D", "K", 14)
	_ = f.SetColWidth(itemsSheet, "L", "L", 18)

	summary := [][]any{
		{"Invoice Number", resp.Header.InvoiceNumber},
		{"Invoice Date", resp.Header.InvoiceDate},
		{"Currency", resp.Header.Currency},
		{"Layout", resp.Format},
		{"Strategy", resp.Strategy},
		{"Items", len(resp.Items)},
		{"Items Total", resp.ItemsTotal.InexactFloat64()},
		{"Known Total", optionalValue(resp.KnownTotal)},
		{"Total Source", resp.TotalSource},
		{"Reconciled", reconciledLabel(resp.Reconciled)},
		{"Average Confidence", resp.AverageConfidence},
		{"Needs Review", resp.NeedsReview},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 20)
	_ = f.SetColWidth(summarySheet, "B", "B", 24)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.log.WithField("rows", len(resp.Items)).Info("Line items exported to xlsx")
	return buf.Bytes(), nil
}

func nullValue(d decimal.NullDecimal) any {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}

func optionalValue(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func reconciledLabel(r *bool) string {
	switch {
	case r == nil:
		return "no total"
	case *r:
		return "yes"
	}
	return "no"
}
