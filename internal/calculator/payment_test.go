package calculator

import (
	"math"
	"testing"
)

func TestComputeMinimumPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		want      float64
	}{
		{name: "zero rate is straight-line", principal: 1200, rate: 0, term: 12, want: 100},
		{name: "standard amortization", principal: 10000, rate: 12, term: 24, want: 470.73},
		{name: "zero principal", principal: 0, rate: 12, term: 24, want: 0},
		{name: "zero term", principal: 1000, rate: 12, term: 0, want: 0},
		{name: "negative rate", principal: 1000, rate: -1, term: 12, want: 0},
		{name: "single month pays principal plus interest", principal: 1000, rate: 12, term: 1, want: 1010},
		{name: "very long term tends to interest only", principal: 1000, rate: 12, term: 80000, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMinimumPayment(tt.principal, tt.rate, tt.term)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("ComputeMinimumPayment(%v, %v, %v) = %v, want a finite payment", tt.principal, tt.rate, tt.term, got)
			}
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ComputeMinimumPayment(%v, %v, %v) = %v, want %v", tt.principal, tt.rate, tt.term, got, tt.want)
			}
		})
	}
}

func TestTermFor(t *testing.T) {
	if got := termFor(36, 60); got != 36 {
		t.Errorf("termFor(36, 60) = %d, want 36", got)
	}
	if got := termFor(0, 60); got != 60 {
		t.Errorf("termFor(0, 60) = %d, want 60", got)
	}
	if got := termFor(0, 0); got != DefaultTermMonths {
		t.Errorf("termFor(0, 0) = %d, want %d", got, DefaultTermMonths)
	}
}
