// Package intent maps free-text chat messages to calculation requests.
// Detection is a case-insensitive substring match against a fixed, ordered
// keyword table; the first tool whose keyword list matches wins. Ties are
// resolved by table order only, never by keyword specificity.
package intent

import (
	"strings"

	"github.com/finai-labs/finai-go/internal/calc"
)

// Tool describes one detectable calculation.
type Tool struct {
	Kind        calc.Kind
	Name        string
	Description string
	Keywords    []string
}

// table order is part of the detection contract: earlier entries win ties.
var table = []Tool{
	{
		Kind:        calc.KindCompoundInterest,
		Name:        "Compound Interest Calculator",
		Description: "Calculate compound interest growth over time",
		Keywords:    []string{"compound interest", "interest rate", "investment growth", "savings growth"},
	},
	{
		Kind:        calc.KindLoanPayment,
		Name:        "Loan Payment Calculator",
		Description: "Calculate monthly loan payments",
		Keywords:    []string{"loan payment", "mortgage", "monthly payment", "loan calculator", "car loan"},
	},
	{
		Kind:        calc.KindRetirement,
		Name:        "Retirement Savings Calculator",
		Description: "Project retirement savings growth",
		Keywords:    []string{"retirement", "401k", "savings", "retirement planning", "pension"},
	},
	{
		Kind:        calc.KindEmergencyFund,
		Name:        "Emergency Fund Calculator",
		Description: "Calculate recommended emergency fund size",
		Keywords:    []string{"emergency fund", "emergency savings", "safety net"},
	},
}

// Tools returns the detection table in match order.
func Tools() []Tool {
	out := make([]Tool, len(table))
	copy(out, table)
	return out
}

// Detector detects calculation intent and extracts operands.
type Detector struct {
	extractor Extractor
}

// NewDetector creates a detector using the given extraction strategy.
// A nil extractor defaults to comma-aware grouped extraction.
func NewDetector(extractor Extractor) *Detector {
	if extractor == nil {
		extractor = GroupedExtractor{}
	}
	return &Detector{extractor: extractor}
}

// Detect returns the first tool whose keywords match the message.
// The second return is false when no tool matches.
func (d *Detector) Detect(message string) (Tool, bool) {
	lower := strings.ToLower(message)
	for _, tool := range table {
		for _, kw := range tool.Keywords {
			if strings.Contains(lower, kw) {
				return tool, true
			}
		}
	}
	return Tool{}, false
}

// ExtractNumbers returns the numbers in the message in order of appearance,
// using the configured strategy.
func (d *Detector) ExtractNumbers(message string) []float64 {
	return d.extractor.Extract(message)
}
