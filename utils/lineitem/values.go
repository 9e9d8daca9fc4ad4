package lineitem

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseDecimal converts a token such as "€1.234,50" or "(12.00)" into a decimal.
// Unparsable input yields zero.
func ParseDecimal(token string) decimal.Decimal {
	s, _ := stripCurrency(strings.TrimSpace(token))
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\'' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSuffix(s, "%")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}
	s = strings.TrimPrefix(s, "+")

	s = normalizeSeparators(fixOCRDigits(s))
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// ParseCurrency parses a price or amount token. It normalizes exactly like ParseDecimal.
func ParseCurrency(token string) decimal.Decimal {
	return ParseDecimal(token)
}

func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		trailing := len(s) - lastComma - 1
		if strings.Count(s, ",") == 1 && trailing >= 1 && trailing <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		if len(s)-lastDot-1 == 3 {
			return strings.ReplaceAll(s, ".", "")
		}
		return strings.ReplaceAll(s[:lastDot], ".", "") + s[lastDot:]
	}
	return s
}

var ocrDigitReplacer = strings.NewReplacer("O", "0", "o", "0", "l", "1", "I", "1")

// fixOCRDigits repairs letters commonly misread for digits, but only inside
// tokens that are otherwise numeric.
func fixOCRDigits(s string) string {
	if !ContainsNumbers(s) {
		return s
	}
	fixed := ocrDigitReplacer.Replace(s)
	for _, r := range fixed {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return s
		}
	}
	return fixed
}

// stripCurrency removes currency symbols and ISO codes from a token.
func stripCurrency(s string) (string, bool) {
	found := false
	for _, sym := range CurrencySymbols {
		if strings.Contains(s, sym) {
			s = strings.ReplaceAll(s, sym, "")
			found = true
		}
	}
	upper := strings.ToUpper(s)
	for _, code := range CurrencyCodes {
		switch {
		case strings.HasPrefix(upper, code):
			s = s[len(code):]
			found = true
		case strings.HasSuffix(upper, code):
			s = s[:len(s)-len(code)]
			found = true
		default:
			continue
		}
		break
	}
	return strings.TrimSpace(s), found
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenNumber
	tokenCurrency
	tokenPercent
)

type token struct {
	kind  tokenKind
	raw   string
	value decimal.Decimal
}

var (
	numericCore  = regexp.MustCompile(`^[(+-]?\d[\d.,']*\)?-?$`)
	percentCore  = regexp.MustCompile(`^\d[\d.,]*%$`)
	quantityMark = regexp.MustCompile(`^(?:[xX×](\d+(?:[.,]\d+)?)|(\d+(?:[.,]\d+)?)[xX×])$`)
)

// tokenize splits a line into text, bare number, currency and percent tokens.
// A detached currency symbol binds to the following number, or to the
// preceding one when nothing numeric follows.
func tokenize(line string) []token {
	fields := strings.Fields(line)
	tokens := make([]token, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		f := strings.TrimRight(fields[i], ",;:")
		if f == "" {
			continue
		}

		if isCurrencyMarker(f) {
			if i+1 < len(fields) {
				next := strings.TrimRight(fields[i+1], ",;:")
				if numericCore.MatchString(fixOCRDigits(next)) {
					tokens = append(tokens, token{kind: tokenCurrency, raw: f + next, value: ParseCurrency(next)})
					i++
					continue
				}
			}
			if n := len(tokens); n > 0 && tokens[n-1].kind == tokenNumber {
				tokens[n-1].kind = tokenCurrency
				tokens[n-1].raw += f
			}
			continue
		}

		if m := quantityMark.FindStringSubmatch(f); m != nil {
			q := m[1]
			if q == "" {
				q = m[2]
			}
			tokens = append(tokens, token{kind: tokenNumber, raw: f, value: ParseDecimal(q)})
			continue
		}

		core, hadCurrency := stripCurrency(f)
		switch {
		case percentCore.MatchString(core):
			tokens = append(tokens, token{kind: tokenPercent, raw: f, value: ParseDecimal(core)})
		case core != "" && numericCore.MatchString(fixOCRDigits(core)):
			kind := tokenNumber
			if hadCurrency {
				kind = tokenCurrency
			}
			tokens = append(tokens, token{kind: kind, raw: f, value: ParseDecimal(core)})
		default:
			tokens = append(tokens, token{kind: tokenText, raw: fields[i]})
		}
	}
	return tokens
}

func isCurrencyMarker(f string) bool {
	for _, sym := range CurrencySymbols {
		if f == sym {
			return true
		}
	}
	for _, code := range CurrencyCodes {
		if strings.EqualFold(f, code) {
			return true
		}
	}
	return false
}

func currencyTokens(line string) []decimal.Decimal {
	return tokenValues(line, tokenCurrency)
}

func bareNumbers(line string) []decimal.Decimal {
	return tokenValues(line, tokenNumber)
}

func percentTokens(line string) []decimal.Decimal {
	return tokenValues(line, tokenPercent)
}

func tokenValues(line string, kind tokenKind) []decimal.Decimal {
	var out []decimal.Decimal
	for _, t := range tokenize(line) {
		if t.kind == kind {
			out = append(out, t.value)
		}
	}
	return out
}

// allText returns every text word of line, skipping numeric tokens.
func allText(line string) string {
	var words []string
	for _, t := range tokenize(line) {
		if t.kind == tokenText {
			words = append(words, t.raw)
		}
	}
	return cleanDescription(strings.Join(words, " "))
}
