package lineitem

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsLikelyDescription reports whether a line reads like an item description.
func IsLikelyDescription(line string) bool {
	cfg := DefaultConfig()
	return isLikelyDescription(line, cfg.HeuristicMinLength, cfg.HeuristicMaxLength)
}

func isLikelyDescription(line string, minLen, maxLen int) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if _, hit := MatchBoilerplate(line); hit {
		return false
	}

	if HasVocabulary(line) {
		n := utf8.RuneCountInString(line)
		return !IsNonText(line) && n >= minLen && n <= maxLen
	}

	return alphabeticWords(line) >= 2
}

// IsLikelyNumeric reports whether a line carries a currency symbol and a digit.
func IsLikelyNumeric(line string) bool {
	return hasCurrencySymbol(line) && ContainsNumbers(line)
}

// ContainsNumbers reports whether the line has at least one digit.
func ContainsNumbers(line string) bool {
	return strings.IndexFunc(line, unicode.IsDigit) >= 0
}

// IsHeaderLine reports whether the line is empty or contains a column header term.
func IsHeaderLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return true
	}
	for _, t := range HeaderTerms {
		if containsWord(lower, t.Term) {
			return true
		}
	}
	return false
}

// containsWord reports whether term occurs in s bounded by non-word runes.
func containsWord(s, term string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], term)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(term)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MatchBoilerplate returns the first boilerplate pattern that matches text.
func MatchBoilerplate(text string) (NamedPattern, bool) {
	for _, p := range BoilerplatePatterns {
		if p.Matches(text) {
			return p, true
		}
	}
	return NamedPattern{}, false
}

// HasVocabulary reports whether text contains a service or product keyword.
func HasVocabulary(text string) bool {
	return vocabularyPattern.MatchString(text)
}

// HasProductMarker reports whether text looks like the first row of a product table.
func HasProductMarker(text string) bool {
	if HasVocabulary(text) {
		return true
	}
	for _, p := range ProductMarkers {
		if p.Matches(text) {
			return true
		}
	}
	return false
}

// IsNonText reports whether text consists only of digits, currency and punctuation.
func IsNonText(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func hasCurrencySymbol(s string) bool {
	for _, sym := range CurrencySymbols {
		if strings.Contains(s, sym) {
			return true
		}
	}
	return false
}

func alphabeticWords(line string) int {
	count := 0
	for _, w := range strings.Fields(line) {
		w = strings.Trim(w, ".,:;()[]\"'!?")
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if strings.IndexFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && r != '-' }) >= 0 {
			continue
		}
		count++
	}
	return count
}

// textWords returns the words of line that carry at least one letter.
func textWords(line string) []string {
	var words []string
	for _, w := range strings.Fields(line) {
		if strings.IndexFunc(w, unicode.IsLetter) >= 0 {
			words = append(words, w)
		}
	}
	return words
}
