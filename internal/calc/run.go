package calc

import "errors"

// ErrMissingOperands is returned by Run when a request carries fewer numbers
// than the calculation needs. Callers treat it as a skipped calculation, not
// a failed turn.
var ErrMissingOperands = errors.New("not enough operands for calculation")

// Request is a transient calculation request: a kind plus the numbers
// extracted from the triggering message, in order of appearance.
type Request struct {
	Kind     Kind
	Operands []float64
}

// MinOperands returns the minimum operand count for a kind.
func MinOperands(kind Kind) int {
	if kind == KindEmergencyFund {
		return 1
	}
	return 3
}

// Run maps request operands onto the kind-specific parameters and executes
// the calculation.
//
// Positional mapping:
//
//	compound_interest:  principal, rate (decimal), years (monthly compounding)
//	loan_payment:       principal, rate (percent), years
//	retirement_savings: monthly contribution, years, return (percent) [, current savings]
//	emergency_fund:     monthly expenses [, months coverage]
//
// Extra operands beyond the mapping are ignored.
func Run(req Request) (Result, error) {
	nums := req.Operands
	if len(nums) < MinOperands(req.Kind) {
		return Result{}, ErrMissingOperands
	}

	switch req.Kind {
	case KindCompoundInterest:
		return CompoundInterest(nums[0], nums[1], nums[2], 12)

	case KindLoanPayment:
		return LoanPayment(nums[0], nums[1], int(nums[2]))

	case KindRetirement:
		currentSavings := 0.0
		if len(nums) > 3 {
			currentSavings = nums[3]
		}
		return RetirementProjection(nums[0], int(nums[1]), nums[2], currentSavings)

	case KindEmergencyFund:
		monthsCoverage := 6.0
		if len(nums) > 1 {
			monthsCoverage = nums[1]
		}
		return EmergencyFund(nums[0], monthsCoverage)
	}

	return Result{}, domainErrorf("unknown calculation kind %q", req.Kind)
}
