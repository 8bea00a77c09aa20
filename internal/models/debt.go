package models

// Debt is a liability entered by the user.
type Debt struct {
	// ID is assigned when the debt is created and never changes.
	ID int64 `json:"id"`

	// Name is the display label (e.g., "Visa", "Car loan").
	Name string `json:"name"`

	// Amount is the remaining principal balance.
	Amount float64 `json:"amount"`

	// InterestRate is the nominal annual rate in percent (12.5 means 12.5%/year).
	InterestRate float64 `json:"interestRate"`

	// TotalTerms is the original term in months.
	TotalTerms int `json:"totalTerms"`

	// RemainingTerms is the number of months left on the loan.
	RemainingTerms int `json:"remainingTerms"`

	// MonthlyPayment is the fixed installment. Zero means it was never
	// supplied and is computed from the remaining term.
	MonthlyPayment float64 `json:"monthlyPayment"`
}

// NextDebtID returns max(existing id)+1, or 1 for an empty list.
func NextDebtID(debts []Debt) int64 {
	var maxID int64
	for _, d := range debts {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	return maxID + 1
}
