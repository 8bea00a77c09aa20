package calculator

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates a schedule into the totals shown next to the table.
type Summary struct {
	TotalMonths         int
	TotalYears          float64
	TotalInterest       float64
	TotalPaid           float64 // interest plus the original balances
	TotalMinimumPayment float64
	BaseExtra           float64
	CurrentExtra        float64
	FreedExtra          float64

	AllPaid bool
	// HorizonReached is true when the run stopped at MaxMonths with a
	// balance still outstanding.
	HorizonReached bool
}

// Summarize computes totals for a run of Simulate over debts.
func Summarize(debts []Debt, extraContribution float64, res Result) Summary {
	s := Summary{
		TotalMonths:  len(res.Schedule),
		TotalYears:   float64(len(res.Schedule)) / 12,
		BaseExtra:    extraContribution,
		CurrentExtra: res.CurrentExtra,
		FreedExtra:   res.CurrentExtra - extraContribution,
		AllPaid:      true,
	}

	for _, d := range debts {
		s.TotalPaid += d.Amount
		s.TotalMinimumPayment += Installment(d)
	}

	for _, m := range res.Schedule {
		for _, st := range m.PerDebt {
			s.TotalInterest += st.InterestPaid
		}
	}
	s.TotalPaid += s.TotalInterest

	if n := len(res.Schedule); n > 0 {
		for _, st := range res.Schedule[n-1].PerDebt {
			if st.RemainingAmount > 0 {
				s.AllPaid = false
				break
			}
		}
	}
	s.HorizonReached = s.TotalMonths == MaxMonths && !s.AllPaid

	return s
}

// Installment returns the debt's fixed payment, computing it when missing.
func Installment(d Debt) float64 {
	if d.MonthlyPayment > 0 {
		return d.MonthlyPayment
	}
	return ComputeMinimumPayment(d.Amount, d.InterestRate, termFor(d.RemainingTerms, d.TotalTerms))
}

// Comparison holds both strategies side by side.
type Comparison struct {
	Avalanche Summary
	Snowball  Summary

	// Savings of avalanche over snowball. Negative values mean snowball
	// was cheaper or faster.
	InterestSaved float64
	MonthsSaved   int
}

// Compare simulates both strategies over the same input concurrently.
func Compare(ctx context.Context, debts []Debt, extraContribution float64) (Comparison, error) {
	var c Comparison
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Avalanche = Summarize(debts, extraContribution, Simulate(debts, Avalanche, extraContribution))
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Snowball = Summarize(debts, extraContribution, Simulate(debts, Snowball, extraContribution))
		return nil
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	c.InterestSaved = roundTo2Decimals(c.Snowball.TotalInterest - c.Avalanche.TotalInterest)
	c.MonthsSaved = c.Snowball.TotalMonths - c.Avalanche.TotalMonths
	return c, nil
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}
