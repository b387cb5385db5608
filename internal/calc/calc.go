// Package calc implements the deterministic financial calculators.
// All functions are pure: same inputs, same outputs, no I/O.
package calc

import (
	"fmt"
	"math"
)

// Kind identifies a calculation.
type Kind string

const (
	KindCompoundInterest Kind = "compound_interest"
	KindLoanPayment      Kind = "loan_payment"
	KindRetirement       Kind = "retirement_savings"
	KindEmergencyFund    Kind = "emergency_fund"
)

// DomainError reports invalid numeric input to a calculation.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return e.Msg
}

func domainErrorf(format string, args ...any) *DomainError {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// Field is a single named numeric output.
type Field struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result holds the outputs of a calculation. Fields keep insertion order so
// rendered output is stable.
type Result struct {
	Kind        Kind    `json:"kind"`
	Fields      []Field `json:"fields"`
	Explanation string  `json:"explanation"`
}

// Get returns the named field value.
func (r Result) Get(name string) (float64, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// round2 rounds to 2 decimal places, half away from zero. Pinned by tests;
// monetary outputs all pass through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CompoundInterest computes growth of principal at the given annual rate
// (as a decimal, e.g. 0.05) compounded compoundsPerYear times per year.
func CompoundInterest(principal, rate, years float64, compoundsPerYear int) (Result, error) {
	if compoundsPerYear <= 0 {
		return Result{}, domainErrorf("compounds per year must be positive, got %d", compoundsPerYear)
	}

	n := float64(compoundsPerYear)
	amount := principal * math.Pow(1+rate/n, n*years)

	return Result{
		Kind: KindCompoundInterest,
		Fields: []Field{
			{Name: "final_amount", Value: round2(amount)},
			{Name: "interest_earned", Value: round2(amount - principal)},
		},
		Explanation: fmt.Sprintf("A = P(1 + r/n)^(nt) = %g(1 + %g/%d)^(%g)",
			principal, rate, compoundsPerYear, n*years),
	}, nil
}

// LoanPayment computes the monthly payment for a fully amortizing loan.
// rate is the annual interest rate as a percentage (e.g. 5 for 5%).
func LoanPayment(principal, rate float64, years int) (Result, error) {
	if years <= 0 {
		return Result{}, domainErrorf("loan term must be positive, got %d years", years)
	}

	monthlyRate := rate / 12 / 100
	numPayments := float64(years * 12)

	var monthlyPayment float64
	if monthlyRate == 0 {
		// Zero-rate loans amortize by straight division.
		monthlyPayment = principal / numPayments
	} else {
		growth := math.Pow(1+monthlyRate, numPayments)
		monthlyPayment = principal * (monthlyRate * growth) / (growth - 1)
	}

	return Result{
		Kind: KindLoanPayment,
		Fields: []Field{
			{Name: "monthly_payment", Value: round2(monthlyPayment)},
			{Name: "total_payment", Value: round2(monthlyPayment * numPayments)},
			{Name: "total_interest", Value: round2(monthlyPayment*numPayments - principal)},
		},
		Explanation: fmt.Sprintf("Monthly payment over %d payments at %g%% annual rate", years*12, rate),
	}, nil
}

// RetirementProjection projects savings growth from monthly contributions.
// annualReturn is a percentage; currentSavings is the starting balance.
func RetirementProjection(monthlyContribution float64, years int, annualReturn, currentSavings float64) (Result, error) {
	monthlyReturn := annualReturn / 12 / 100
	numMonths := float64(years * 12)

	var total float64
	if monthlyReturn == 0 {
		total = currentSavings + monthlyContribution*numMonths
	} else {
		growth := math.Pow(1+monthlyReturn, numMonths)
		total = currentSavings*growth + monthlyContribution*(growth-1)/monthlyReturn
	}

	contributions := monthlyContribution * numMonths

	return Result{
		Kind: KindRetirement,
		Fields: []Field{
			{Name: "total_savings", Value: round2(total)},
			{Name: "contributions", Value: round2(contributions)},
			{Name: "interest_earned", Value: round2(total - (currentSavings + contributions))},
		},
		Explanation: fmt.Sprintf("Projection over %d years at %g%% expected annual return", years, annualReturn),
	}, nil
}

// EmergencyFund computes the recommended emergency fund size.
func EmergencyFund(monthlyExpenses, monthsCoverage float64) (Result, error) {
	return Result{
		Kind: KindEmergencyFund,
		Fields: []Field{
			{Name: "recommended_amount", Value: round2(monthlyExpenses * monthsCoverage)},
			{Name: "monthly_expenses", Value: monthlyExpenses},
			{Name: "months_coverage", Value: monthsCoverage},
		},
		Explanation: fmt.Sprintf("Emergency fund should cover %g months of expenses", monthsCoverage),
	}, nil
}
