package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Extractor pulls unsigned decimal numbers out of free text, left to right.
// Implementations differ only in how they treat punctuation inside numerals,
// so extraction policy can change without touching detection.
type Extractor interface {
	Extract(text string) []float64
}

var (
	digitRunPattern = regexp.MustCompile(`\d+\.?\d*`)
	groupedPattern  = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)
)

// DigitRunExtractor matches bare digit runs with an optional decimal point.
// Currency symbols are skipped naturally, but a comma-grouped numeral like
// "10,000" splits into two tokens.
type DigitRunExtractor struct{}

func (DigitRunExtractor) Extract(text string) []float64 {
	return parseMatches(digitRunPattern.FindAllString(text, -1), false)
}

// GroupedExtractor additionally recognizes comma-grouped numerals, so
// "$10,000" yields 10000. Groups must be well-formed triples; "1,23" falls
// back to digit-run behavior.
type GroupedExtractor struct{}

func (GroupedExtractor) Extract(text string) []float64 {
	return parseMatches(groupedPattern.FindAllString(text, -1), true)
}

func parseMatches(matches []string, stripCommas bool) []float64 {
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		if stripCommas {
			m = strings.ReplaceAll(m, ",", "")
		}
		m = strings.TrimSuffix(m, ".")
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	return nums
}
