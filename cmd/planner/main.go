// Command planner runs payoff simulations from a YAML debt file and mints
// API tokens for the planner server.
//
//	planner simulate -f debts.yaml [-strategy snowball] [-extra 500]
//	planner token -subject household
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/debtplanner/internal/auth"
	"github.com/mmynk/debtplanner/internal/calculator"
	"github.com/mmynk/debtplanner/internal/config"
	"github.com/mmynk/debtplanner/internal/service"
	"github.com/mmynk/debtplanner/pkg/logging"
)

func main() {
	logging.Setup()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "simulate":
		err = runSimulate(os.Args[2:], os.Stdout)
	case "token":
		err = runToken(os.Args[2:], os.Stdout)
	case "-h", "--help", "help":
		usage(os.Stdout)
		return
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("planner failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: planner simulate -f FILE [-strategy avalanche|snowball] [-extra N] [-locale es-MX] [-currency MXN]")
	fmt.Fprintln(w, "       planner token -subject NAME")
}

func runSimulate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	file := fs.String("f", "debts.yaml", "YAML debt file")
	strategy := fs.String("strategy", "", "avalanche or snowball (overrides the file)")
	extra := fs.Float64("extra", 0, "monthly extra contribution (overrides the file)")
	locale := fs.String("locale", "es-MX", "locale for amounts")
	iso := fs.String("currency", "MXN", "ISO 4217 currency code")
	summaryOnly := fs.Bool("summary", false, "print only the summary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := readDebtFile(*file)
	if err != nil {
		return err
	}
	debts, err := f.debts()
	if err != nil {
		return err
	}

	s := calculator.Avalanche
	if f.Strategy != "" {
		s = calculator.Strategy(f.Strategy)
	}
	if *strategy != "" {
		s = calculator.Strategy(*strategy)
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %q", service.ErrInvalidStrategy, s)
	}

	contribution := 0.0
	if f.ExtraContribution != nil {
		contribution = *f.ExtraContribution
	}
	if flagSet(fs, "extra") {
		contribution = *extra
	}
	if contribution < 0 {
		return service.ErrNegativeExtra
	}

	money, err := newMoneyFormatter(*locale, *iso)
	if err != nil {
		return err
	}

	input := service.ToCalculatorDebts(debts)
	res := calculator.Simulate(input, s, contribution)
	slog.Debug("Simulation finished", "strategy", s, "debts", len(input), "months", len(res.Schedule))

	if !*summaryOnly {
		if err := renderSchedule(out, money, res.Schedule); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return renderSummary(out, money, calculator.Summarize(input, contribution, res))
}

// flagSet reports whether name was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func runToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "", "token subject (who the token is for)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required to sign tokens")
	}

	token, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).Issue(*subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
