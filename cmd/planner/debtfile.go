package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/mmynk/debtplanner/internal/models"
	"github.com/mmynk/debtplanner/internal/service"
)

// debtFile is the YAML layout read by "planner simulate".
type debtFile struct {
	Strategy          string      `yaml:"strategy"`
	ExtraContribution *float64    `yaml:"extraContribution"`
	Debts             []debtEntry `yaml:"debts"`
}

type debtEntry struct {
	Name           string  `yaml:"name"`
	Amount         float64 `yaml:"amount"`
	InterestRate   float64 `yaml:"interestRate"`
	TotalTerms     int     `yaml:"totalTerms"`
	RemainingTerms int     `yaml:"remainingTerms"`
	MonthlyPayment float64 `yaml:"monthlyPayment"`
}

func readDebtFile(path string) (*debtFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseDebtFile(data)
}

func parseDebtFile(data []byte) (*debtFile, error) {
	var f debtFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse debt file: %w", err)
	}
	return &f, nil
}

// debts validates each entry the same way the server does and assigns ids
// in file order.
func (f *debtFile) debts() ([]models.Debt, error) {
	out := make([]models.Debt, 0, len(f.Debts))
	for i, e := range f.Debts {
		d, err := service.NewDebt(service.DebtInput{
			Name:           e.Name,
			Amount:         e.Amount,
			InterestRate:   e.InterestRate,
			TotalTerms:     e.TotalTerms,
			RemainingTerms: e.RemainingTerms,
			MonthlyPayment: e.MonthlyPayment,
		})
		if err != nil {
			return nil, fmt.Errorf("debt #%d: %w", i+1, err)
		}
		d.ID = models.NextDebtID(out)
		out = append(out, d)
	}
	return out, nil
}
