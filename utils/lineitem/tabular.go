package lineitem

// Tabular documents repeat four-line groups below the table header:
//
//	description
//	unit price
//	quantity
//	total
//
// OCR regularly inserts or drops a line, so a window that fails the structural
// check moves the scan forward by one line instead of ending it.

const tabularStride = 4

func extractTabular(doc Document, cfg Config) []Candidate {
	header, ok := FindTableHeader(doc)
	if !ok {
		return nil
	}

	start := -1
	for i := header + 1; i < doc.Len(); i++ {
		line := doc.Line(i)
		if !IsHeaderLine(line) && HasProductMarker(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []Candidate
	for i := start; i+tabularStride <= doc.Len(); {
		desc, price, qty, total := doc.Line(i), doc.Line(i+1), doc.Line(i+2), doc.Line(i+3)
		if !isTabularWindow(desc, price, qty, total) {
			i++
			continue
		}

		itemNumber, description := splitItemNumber(desc)
		out = append(out, Candidate{
			Description:        description,
			ItemNumber:         itemNumber,
			UnitPrice:          firstMoney(price),
			Quantity:           firstNumber(qty),
			Amount:             firstMoney(total),
			StrategyConfidence: cfg.Strategies.Tabular,
			Source:             SourceTabular,
			Line:               i,
		})
		i += tabularStride
	}
	return out
}

func isTabularWindow(desc, price, qty, total string) bool {
	for _, l := range []string{desc, price, qty, total} {
		if IsHeaderLine(l) {
			return false
		}
	}
	if !IsLikelyNumeric(price) || !IsLikelyNumeric(total) || !ContainsNumbers(qty) {
		return false
	}
	if _, hit := MatchBoilerplate(desc); hit {
		return false
	}
	return HasVocabulary(desc)
}
