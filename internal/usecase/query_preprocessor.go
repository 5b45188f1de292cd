package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// maxQueryLength caps the search terms sent upstream
const maxQueryLength = 100

// QueryPreprocessor cleans user-typed product names before they are sent
// to the food database full-text search
type QueryPreprocessor struct {
	logger *zap.Logger
}

// Compiled regex patterns for query preprocessing
var (
	// Matches size/quantity patterns like "12 fl oz", "400 g", "1.5 liter", "2 lb"
	sizeQuantityPattern = regexp.MustCompile(`\b\d+\.?\d*\s*(fl\s*)?oz\b|\b\d+\.?\d*\s*(fl\s*)?ounces?\b|\b\d+\.?\d*\s*lbs?\b|\b\d+\.?\d*\s*pounds?\b|\b\d+\.?\d*\s*ml\b|\b\d+\.?\d*\s*cl\b|\b\d+\.?\d*\s*liters?\b|\b\d+\.?\d*\s*litres?\b|\b\d+\.?\d*\s*gallons?\b|\b\d+\.?\d*\s*kg\b|\b\d+\.?\d*\s*grams?\b|\b\d+\.?\d*\s*g\b`)

	// Matches pack/count patterns like "12 pack", "pack of 6", "6-pack", "24 count", "6 ct"
	packCountPattern = regexp.MustCompile(`\b\d+[-\s]*(pack|pk|count|ct)(\s+\w+)?\b|\bpack\s*of\s*\d+\b|\b\d+\s*cans?\b|\b\d+\s*bottles?\b|\b\d+\s*pouches?\b|\b\d+\s*bars?\b|\b\d+\s*pieces?\b`)

	// Matches standalone numbers with no unit (e.g., ", 128", "- 12")
	standaloneNumberPattern = regexp.MustCompile(`[,\-]\s*\d+\.?\d*\s*$|^\d+\.?\d*\s*[,\-]`)

	multiSpacePattern = regexp.MustCompile(`\s+`)

	innerPunctuationPattern    = regexp.MustCompile(`\s+[,\-;:]+\s+`)
	trailingPunctuationPattern = regexp.MustCompile(`[,\-;:]+\s*$`)
	leadingPunctuationPattern  = regexp.MustCompile(`^\s*[,\-;:]+`)
)

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger}
}

// PreprocessQuery strips size/quantity info and pack counts from a product
// name, lowercases it and normalizes whitespace. Brand and product words
// are kept. A name that cleans to nothing is returned lowercased as typed.
func (p *QueryPreprocessor) PreprocessQuery(productName string) string {
	typed := normalizeWords(productName)
	if typed == "" {
		return ""
	}

	cleaned := sizeQuantityPattern.ReplaceAllString(productName, " ")
	cleaned = packCountPattern.ReplaceAllString(cleaned, " ")
	cleaned = standaloneNumberPattern.ReplaceAllString(cleaned, " ")
	cleaned = normalizeWords(cleaned)
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = typed
	}

	cleaned = truncateQuery(cleaned)

	p.logger.Debug("preprocessed query", zap.String("input", productName), zap.String("output", cleaned))

	return cleaned
}

// normalizeWords lowercases s and collapses runs of whitespace
func normalizeWords(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// truncateQuery caps s at maxQueryLength bytes without splitting a
// character, preferring a word boundary in the second half
func truncateQuery(s string) string {
	if len(s) <= maxQueryLength {
		return s
	}

	cut := maxQueryLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	s = s[:cut]

	if lastSpace := strings.LastIndex(s, " "); lastSpace > maxQueryLength/2 {
		s = s[:lastSpace]
	}
	return s
}

// cleanOrphanedPunctuation removes punctuation that's now alone (e.g., lone commas)
func cleanOrphanedPunctuation(s string) string {
	result := innerPunctuationPattern.ReplaceAllString(s, " ")
	result = trailingPunctuationPattern.ReplaceAllString(result, "")
	result = leadingPunctuationPattern.ReplaceAllString(result, "")
	return result
}
