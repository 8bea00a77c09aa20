package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/debtplanner/internal/calculator"
)

// moneyFormatter prints amounts in one currency for one locale.
type moneyFormatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

func newMoneyFormatter(locale, iso string) (*moneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", iso, err)
	}
	p := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)
	return &moneyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
		scale:   scale,
	}, nil
}

// format groups digits the way the locale does, e.g. "$ 1,234.50".
func (m *moneyFormatter) format(v float64) string {
	return m.symbol + " " + m.printer.Sprint(number.Decimal(v, number.Scale(m.scale)))
}

// dash formats v, or "-" when nothing was paid.
func (m *moneyFormatter) dash(v float64) string {
	if v <= 0 {
		return "-"
	}
	return m.format(v)
}

// renderSchedule writes one row per month with minimum, extra, interest and
// balance columns for every debt.
func renderSchedule(w io.Writer, money *moneyFormatter, schedule []calculator.MonthSnapshot) error {
	if len(schedule) == 0 {
		_, err := fmt.Fprintln(w, "No debts.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"Month"}
	for _, st := range schedule[0].PerDebt {
		header = append(header, st.Name+" min", "extra", "interest", "balance")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, m := range schedule {
		cols := []string{fmt.Sprint(m.Month)}
		for _, st := range m.PerDebt {
			cols = append(cols,
				money.dash(st.MinimumPayment),
				money.dash(st.ExtraPayment),
				money.dash(st.InterestPaid),
				money.format(st.RemainingAmount),
			)
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
		if m.Freed != nil {
			fmt.Fprintf(tw, "\t%s\n", m.Freed.Format(money.format))
		}
	}
	return tw.Flush()
}

func renderSummary(w io.Writer, money *moneyFormatter, s calculator.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Payoff time:\t%d months (%.1f years)\n", s.TotalMonths, s.TotalYears)
	fmt.Fprintf(tw, "Total interest:\t%s\n", money.format(s.TotalInterest))
	fmt.Fprintf(tw, "Total paid:\t%s\n", money.format(s.TotalPaid))
	fmt.Fprintf(tw, "Minimum payments:\t%s + extra %s = %s\n",
		money.format(s.TotalMinimumPayment), money.format(s.BaseExtra), money.format(s.TotalMinimumPayment+s.BaseExtra))
	fmt.Fprintf(tw, "Current extra:\t%s (base %s + freed %s)\n",
		money.format(s.CurrentExtra), money.format(s.BaseExtra), money.format(s.FreedExtra))
	if s.HorizonReached {
		fmt.Fprintf(tw, "Warning:\tdebts are not paid off within %d months\n", calculator.MaxMonths)
	}
	return tw.Flush()
}
