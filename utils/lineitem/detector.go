package lineitem

import "unicode/utf8"

// Format is the layout hypothesis for how line items are arranged in the text.
type Format int

const (
	FormatUnknown Format = iota
	FormatTabular
	FormatMultiLine
	FormatSingleLine
)

func (f Format) String() string {
	switch f {
	case FormatTabular:
		return "tabular"
	case FormatMultiLine:
		return "multi_line"
	case FormatSingleLine:
		return "single_line"
	default:
		return "unknown"
	}
}

// DetectFormat classifies the document. A table header is the strongest signal;
// the two line-pattern counts need MinPatternRepeats hits each.
//
// A description line followed by a money line only counts as a multi-line pair
// when the money line carries no description of its own. Consecutive lines such
// as "Hosting fee €10.00" are therefore single-line items, not pairs.
func DetectFormat(doc Document, cfg Config) Format {
	if _, ok := FindTableHeader(doc); ok {
		return FormatTabular
	}
	if countMultiLinePairs(doc, cfg) >= cfg.MinPatternRepeats {
		return FormatMultiLine
	}
	if countSingleLines(doc, cfg) >= cfg.MinPatternRepeats {
		return FormatSingleLine
	}
	return FormatUnknown
}

// FindTableHeader returns the index of the first line that looks like a table header.
func FindTableHeader(doc Document) (int, bool) {
	for i, line := range doc.lines {
		for _, h := range TableHeaders {
			if h.Matches(line) {
				return i, true
			}
		}
	}
	return -1, false
}

func countMultiLinePairs(doc Document, cfg Config) int {
	count := 0
	for i := 0; i+1 < doc.Len(); i++ {
		if isMultiLinePair(doc.Line(i), doc.Line(i+1), cfg) {
			count++
		}
	}
	return count
}

// isMultiLinePair reports whether desc followed by numeric forms one item. A
// numeric line that reads as a description itself belongs to a single-line layout.
func isMultiLinePair(desc, numeric string, cfg Config) bool {
	return isLikelyDescription(desc, cfg.HeuristicMinLength, cfg.HeuristicMaxLength) &&
		IsLikelyNumeric(numeric) &&
		!isLikelyDescription(numeric, cfg.HeuristicMinLength, cfg.HeuristicMaxLength)
}

func countSingleLines(doc Document, cfg Config) int {
	count := 0
	for _, line := range doc.lines {
		if isSingleLineItem(line, cfg) {
			count++
		}
	}
	return count
}

func isSingleLineItem(line string, cfg Config) bool {
	return utf8.RuneCountInString(line) < cfg.SingleLineMaxLength &&
		ContainsNumbers(line) &&
		isLikelyDescription(line, cfg.HeuristicMinLength, cfg.HeuristicMaxLength)
}
