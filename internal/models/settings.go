package models

// Settings holds the plan inputs besides the debt list.
type Settings struct {
	// Strategy is "avalanche" or "snowball".
	Strategy string `json:"strategy"`

	// ExtraContribution is the amount paid each month on top of the
	// minimum installments.
	ExtraContribution float64 `json:"extraContribution"`
}

// DefaultSettings mirrors a fresh install: avalanche with 5000 extra.
func DefaultSettings() Settings {
	return Settings{
		Strategy:          "avalanche",
		ExtraContribution: 5000,
	}
}
