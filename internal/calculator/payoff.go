package calculator

import (
	"cmp"
	"math"
	"slices"
)

// Simulate runs a month-by-month payoff of debts under strategy, applying
// extraContribution on top of the minimum payments.
//
// The caller's slice is never modified. The run stops once every balance is
// zero or after MaxMonths; reaching the ceiling is not reported here, see
// Summarize.
func Simulate(debts []Debt, strategy Strategy, extraContribution float64) Result {
	if len(debts) == 0 {
		return Result{CurrentExtra: extraContribution}
	}

	working := prepare(debts)
	sortByStrategy(working, strategy)

	retired := make([]bool, len(working))
	runningExtra := extraContribution
	var schedule []MonthSnapshot

	allPaid := false
	for month := 1; !allPaid && month <= MaxMonths; month++ {
		snap := MonthSnapshot{
			Month:   month,
			PerDebt: make([]DebtState, len(working)),
		}

		// Debts seen at zero release their installment into the pool.
		for i := range working {
			d := &working[i]
			if d.Amount <= 0 && !retired[i] {
				retired[i] = true
				runningExtra += d.MonthlyPayment
				snap.Freed = &FreedMessage{DebtID: d.ID, DebtName: d.Name, Amount: d.MonthlyPayment}
			}
		}

		payMinimums(working, snap.PerDebt)
		applyExtra(working, snap.PerDebt, runningExtra)

		schedule = append(schedule, snap)
		allPaid = everyPaid(working)
	}

	return Result{Schedule: schedule, CurrentExtra: runningExtra}
}

// prepare deep-copies debts and freezes a missing installment.
func prepare(debts []Debt) []Debt {
	working := slices.Clone(debts)
	for i := range working {
		d := &working[i]
		if d.MonthlyPayment <= 0 {
			d.MonthlyPayment = ComputeMinimumPayment(d.Amount, d.InterestRate, termFor(d.RemainingTerms, d.TotalTerms))
		}
	}
	return working
}

// sortByStrategy orders debts once for the whole run. The sort is stable so
// ties keep their input order.
func sortByStrategy(debts []Debt, strategy Strategy) {
	if strategy == Avalanche {
		slices.SortStableFunc(debts, func(a, b Debt) int {
			return cmp.Compare(b.InterestRate, a.InterestRate)
		})
		return
	}
	slices.SortStableFunc(debts, func(a, b Debt) int {
		return cmp.Compare(a.Amount, b.Amount)
	})
}

// payMinimums accrues one month of interest on each open debt and pays its
// installment, capped at balance plus interest.
func payMinimums(debts []Debt, states []DebtState) {
	for i := range debts {
		d := &debts[i]
		states[i] = DebtState{DebtID: d.ID, Name: d.Name}
		if d.Amount <= 0 {
			continue
		}

		interest := d.Amount * monthlyRate(d.InterestRate)
		payment := math.Min(d.Amount+interest, d.MonthlyPayment)
		principal := math.Max(0, payment-interest)
		d.Amount = math.Max(0, d.Amount-principal)

		states[i].RemainingAmount = d.Amount
		states[i].InterestPaid = math.Min(interest, payment)
		states[i].PrincipalPaid = principal
		states[i].TotalPayment = payment
		states[i].MinimumPayment = payment
	}
}

// applyExtra pours available into debts in order, each debt taking as much
// as its balance before the next one sees anything.
func applyExtra(debts []Debt, states []DebtState, available float64) {
	for i := 0; i < len(debts) && available > 0; i++ {
		d := &debts[i]
		if d.Amount <= 0 {
			continue
		}

		extra := math.Min(d.Amount, available)
		d.Amount = math.Max(0, d.Amount-extra)

		states[i].PrincipalPaid += extra
		states[i].TotalPayment += extra
		states[i].ExtraPayment = extra
		states[i].RemainingAmount = d.Amount
		available -= extra
	}
}

func everyPaid(debts []Debt) bool {
	for _, d := range debts {
		if d.Amount > 0 {
			return false
		}
	}
	return true
}
