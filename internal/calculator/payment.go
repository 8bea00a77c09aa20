package calculator

import "math"

// DefaultTermMonths is the term assumed for a debt that has neither a
// remaining nor a total term.
const DefaultTermMonths = 240

// ComputeMinimumPayment returns the fixed installment that amortizes principal
// over termMonths at the given nominal annual rate (percent).
//
// A non-positive principal or term, or a negative rate, yields 0. A zero rate
// is paid off straight-line: principal / termMonths.
func ComputeMinimumPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 || annualRatePercent < 0 {
		return 0
	}

	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / float64(termMonths)
	}

	// Negative exponent keeps very long terms finite: the installment
	// tends to principal*r instead of Inf/Inf.
	return principal * r / (1 - math.Pow(1+r, -float64(termMonths)))
}

// monthlyRate converts an annual percentage into a monthly fraction.
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// termFor picks the term used to backfill a missing installment:
// remaining, then total, then DefaultTermMonths.
func termFor(remainingTerms, totalTerms int) int {
	if remainingTerms > 0 {
		return remainingTerms
	}
	if totalTerms > 0 {
		return totalTerms
	}
	return DefaultTermMonths
}
