package calculator

import "fmt"

// Strategy selects the order in which extra money is applied to debts.
type Strategy string

const (
	Avalanche Strategy = "avalanche" // highest interest rate first
	Snowball  Strategy = "snowball"  // smallest balance first
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == Avalanche || s == Snowball
}

// MaxMonths bounds every simulation run (50 years).
const MaxMonths = 600

// Debt is the simulator's view of a liability.
type Debt struct {
	ID             int64
	Name           string
	Amount         float64 // remaining principal
	InterestRate   float64 // nominal annual rate in percent, e.g. 12.5
	TotalTerms     int
	RemainingTerms int
	MonthlyPayment float64 // fixed installment; <= 0 means compute it
}

// DebtState is one debt's row inside a MonthSnapshot.
type DebtState struct {
	DebtID          int64
	Name            string
	RemainingAmount float64
	InterestPaid    float64
	PrincipalPaid   float64
	TotalPayment    float64
	MinimumPayment  float64 // minimum actually paid this month
	ExtraPayment    float64
}

// FreedMessage records a debt that reached zero and the installment it
// released into the extra pool.
type FreedMessage struct {
	DebtID   int64
	DebtName string
	Amount   float64
}

// Text renders the message with a plain two-decimal amount.
func (m FreedMessage) Text() string {
	return m.Format(func(v float64) string { return fmt.Sprintf("%.2f", v) })
}

// Format renders the message with the amount formatted by money.
func (m FreedMessage) Format(money func(float64) string) string {
	return fmt.Sprintf("%s paid off! %s added to the monthly extra contribution.", m.DebtName, money(m.Amount))
}

// MonthSnapshot is one row of the amortization schedule.
type MonthSnapshot struct {
	Month   int
	PerDebt []DebtState // strategy order

	// Freed is set the month a debt is first seen at zero. When several
	// debts retire in the same month only the last one is kept.
	Freed *FreedMessage
}

// Result is the output of one simulation run.
type Result struct {
	Schedule []MonthSnapshot

	// CurrentExtra is the extra pool after all freed installments were
	// added. It never decreases during a run.
	CurrentExtra float64
}
