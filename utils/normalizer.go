package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonKeyChars = regexp.MustCompile(`[^a-z0-9]`)
	// French amounts pad thousands with regular, non-breaking or narrow
	// non-breaking spaces depending on the payroll software.
	spaceChars = regexp.MustCompile(`[\s\x{00A0}\x{202F}]+`)
)

// NormalizeKey folds text into a canonical matching key: lowercase,
// diacritics stripped, everything outside [a-z0-9] removed.
// "Net à payer :" -> "netapayer"
func NormalizeKey(text string) string {
	lowered := strings.ToLower(text)

	// NFKD decomposition, then drop the combining marks
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(stripper, lowered)
	if err != nil {
		folded = lowered
	}

	return nonKeyChars.ReplaceAllString(folded, "")
}

// ParseFrenchAmount parses a monetary string like "1 234,56 €" or
// "1.200,50" into a float. Handles space/dot as thousands separator and
// comma as decimal separator. Returns nil for non-numeric input; it
// never fails, unparseable text is an expected input class.
func ParseFrenchAmount(text string) *float64 {
	if text == "" {
		return nil
	}

	clean := strings.ReplaceAll(text, "€", "")
	clean = strings.ReplaceAll(clean, "EUR", "")
	clean = spaceChars.ReplaceAllString(clean, "")

	hasDot := strings.Contains(clean, ".")
	hasComma := strings.Contains(clean, ",")
	switch {
	// "1.234,56" -> remove dots, comma becomes the decimal point
	case hasDot && hasComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	// "1234,56" -> comma is the decimal point
	case hasComma:
		clean = strings.ReplaceAll(clean, ",", ".")
		// "1 234.56" (unlikely in FR but emitted by some software) -> keep dot
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &value
}
