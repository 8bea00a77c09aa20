package service

import (
	"github.com/mmynk/debtplanner/internal/calculator"
	"github.com/mmynk/debtplanner/internal/models"
)

// Wire messages for PlannerService. Field names follow the JSON the web
// client has always stored.

type ListDebtsRequest struct{}

type ListDebtsResponse struct {
	Debts []models.Debt `json:"debts"`
}

type AddDebtRequest struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interestRate"`
	TotalTerms     int     `json:"totalTerms,omitempty"`
	RemainingTerms int     `json:"remainingTerms,omitempty"`
	MonthlyPayment float64 `json:"monthlyPayment,omitempty"`
}

type AddDebtResponse struct {
	Debt models.Debt `json:"debt"`
}

type RemoveDebtRequest struct {
	ID int64 `json:"id"`
}

type RemoveDebtResponse struct{}

type GetSettingsRequest struct{}

type GetSettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

// UpdateSettingsRequest leaves absent fields unchanged.
type UpdateSettingsRequest struct {
	Strategy          *string  `json:"strategy,omitempty"`
	ExtraContribution *float64 `json:"extraContribution,omitempty"`
}

type UpdateSettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

type GetPlanRequest struct{}

type GetPlanResponse struct {
	RunID        string     `json:"runId"`
	Strategy     string     `json:"strategy"`
	Months       []MonthRow `json:"months"`
	CurrentExtra float64    `json:"currentExtraContribution"`
	Summary      Summary    `json:"summary"`
}

type MonthRow struct {
	Month   int        `json:"month"`
	Debts   []DebtRow  `json:"debts"`
	Message *FreedNote `json:"message,omitempty"`
}

type DebtRow struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	RemainingAmount float64 `json:"remainingAmount"`
	InterestPaid    float64 `json:"interestPaid"`
	PrincipalPaid   float64 `json:"principalPaid"`
	Payment         float64 `json:"payment"`
	MinimumPayment  float64 `json:"minimumPayment"`
	ExtraPayment    float64 `json:"extraPayment"`
}

type FreedNote struct {
	DebtID int64   `json:"debtId"`
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
}

type Summary struct {
	TotalMonths         int     `json:"totalMonths"`
	TotalYears          float64 `json:"totalYears"`
	TotalInterest       float64 `json:"totalInterest"`
	TotalPaid           float64 `json:"totalPaid"`
	TotalMinimumPayment float64 `json:"totalMinimumPayment"`
	BaseExtra           float64 `json:"baseExtra"`
	CurrentExtra        float64 `json:"currentExtra"`
	FreedExtra          float64 `json:"freedExtra"`
	AllPaid             bool    `json:"allPaid"`
	HorizonReached      bool    `json:"horizonReached"`
}

type ComparePlansRequest struct{}

type ComparePlansResponse struct {
	Avalanche     Summary `json:"avalanche"`
	Snowball      Summary `json:"snowball"`
	InterestSaved float64 `json:"interestSaved"`
	MonthsSaved   int     `json:"monthsSaved"`
}

type ComputePaymentRequest struct {
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
}

type ComputePaymentResponse struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
}

func toMonthRows(schedule []calculator.MonthSnapshot) []MonthRow {
	rows := make([]MonthRow, len(schedule))
	for i, m := range schedule {
		row := MonthRow{Month: m.Month, Debts: make([]DebtRow, len(m.PerDebt))}
		for j, st := range m.PerDebt {
			row.Debts[j] = DebtRow{
				ID:              st.DebtID,
				Name:            st.Name,
				RemainingAmount: st.RemainingAmount,
				InterestPaid:    st.InterestPaid,
				PrincipalPaid:   st.PrincipalPaid,
				Payment:         st.TotalPayment,
				MinimumPayment:  st.MinimumPayment,
				ExtraPayment:    st.ExtraPayment,
			}
		}
		if m.Freed != nil {
			row.Message = &FreedNote{DebtID: m.Freed.DebtID, Amount: m.Freed.Amount, Text: m.Freed.Text()}
		}
		rows[i] = row
	}
	return rows
}

func toSummary(s calculator.Summary) Summary {
	return Summary{
		TotalMonths:         s.TotalMonths,
		TotalYears:          s.TotalYears,
		TotalInterest:       s.TotalInterest,
		TotalPaid:           s.TotalPaid,
		TotalMinimumPayment: s.TotalMinimumPayment,
		BaseExtra:           s.BaseExtra,
		CurrentExtra:        s.CurrentExtra,
		FreedExtra:          s.FreedExtra,
		AllPaid:             s.AllPaid,
		HorizonReached:      s.HorizonReached,
	}
}
