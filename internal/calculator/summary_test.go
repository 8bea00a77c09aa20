package calculator

import (
	"context"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Run("zero rate debt", func(t *testing.T) {
		debts := []Debt{{ID: 1, Name: "Phone", Amount: 1200, TotalTerms: 12}}
		s := Summarize(debts, 0, Simulate(debts, Avalanche, 0))

		if s.TotalMonths != 12 || s.TotalYears != 1 {
			t.Errorf("term = %d months / %v years, want 12 / 1", s.TotalMonths, s.TotalYears)
		}
		if s.TotalInterest != 0 {
			t.Errorf("TotalInterest = %v, want 0", s.TotalInterest)
		}
		if s.TotalPaid != 1200 {
			t.Errorf("TotalPaid = %v, want 1200", s.TotalPaid)
		}
		if math.Abs(s.TotalMinimumPayment-100) > tolerance {
			t.Errorf("TotalMinimumPayment = %v, want 100", s.TotalMinimumPayment)
		}
		if !s.AllPaid || s.HorizonReached {
			t.Errorf("AllPaid/HorizonReached = %v/%v, want true/false", s.AllPaid, s.HorizonReached)
		}
	})

	t.Run("freed extra", func(t *testing.T) {
		debts := scenarioC()
		s := Summarize(debts, 100, Simulate(debts, Snowball, 100))

		if s.BaseExtra != 100 || s.CurrentExtra != 140 || s.FreedExtra != 40 {
			t.Errorf("extra base/current/freed = %v/%v/%v, want 100/140/40", s.BaseExtra, s.CurrentExtra, s.FreedExtra)
		}
		if math.Abs(s.TotalInterest-360.47) > tolerance {
			t.Errorf("TotalInterest = %v, want 360.47", s.TotalInterest)
		}
		if math.Abs(s.TotalPaid-(5800+s.TotalInterest)) > 1e-9 {
			t.Errorf("TotalPaid = %v, want principal plus interest", s.TotalPaid)
		}
		if s.TotalMinimumPayment != 190 {
			t.Errorf("TotalMinimumPayment = %v, want 190", s.TotalMinimumPayment)
		}
	})

	t.Run("horizon reached", func(t *testing.T) {
		debts := []Debt{{ID: 1, Name: "Stuck", Amount: 1000, InterestRate: 24, MonthlyPayment: 10}}
		s := Summarize(debts, 0, Simulate(debts, Avalanche, 0))

		if s.TotalMonths != MaxMonths {
			t.Errorf("TotalMonths = %d, want %d", s.TotalMonths, MaxMonths)
		}
		if s.AllPaid || !s.HorizonReached {
			t.Errorf("AllPaid/HorizonReached = %v/%v, want false/true", s.AllPaid, s.HorizonReached)
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil, 50, Simulate(nil, Snowball, 50))
		if s.TotalMonths != 0 || s.CurrentExtra != 50 || s.FreedExtra != 0 {
			t.Errorf("empty summary = %+v", s)
		}
	})
}

func TestCompare(t *testing.T) {
	debts := []Debt{
		{ID: 1, Name: "Store card", Amount: 600, InterestRate: 10, MonthlyPayment: 30},
		{ID: 2, Name: "Credit card", Amount: 4000, InterestRate: 30, MonthlyPayment: 120},
	}

	c, err := Compare(context.Background(), debts, 200)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if c.Avalanche.TotalInterest >= c.Snowball.TotalInterest {
		t.Errorf("avalanche interest %v should beat snowball %v", c.Avalanche.TotalInterest, c.Snowball.TotalInterest)
	}
	if c.InterestSaved <= 0 {
		t.Errorf("InterestSaved = %v, want > 0", c.InterestSaved)
	}
	if c.MonthsSaved != c.Snowball.TotalMonths-c.Avalanche.TotalMonths {
		t.Errorf("MonthsSaved = %d, inconsistent with %d - %d", c.MonthsSaved, c.Snowball.TotalMonths, c.Avalanche.TotalMonths)
	}
}

func TestCompare_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Compare(ctx, scenarioC(), 100); err == nil {
		t.Error("expected error for canceled context")
	}
}
