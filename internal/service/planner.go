package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/debtplanner/internal/calculator"
	"github.com/mmynk/debtplanner/internal/metrics"
	"github.com/mmynk/debtplanner/internal/models"
	"github.com/mmynk/debtplanner/internal/storage"
)

var (
	ErrInvalidDebt     = errors.New("invalid debt")
	ErrDebtNotFound    = errors.New("debt not found")
	ErrInvalidStrategy = errors.New("strategy must be avalanche or snowball")
	ErrNegativeExtra   = errors.New("extra contribution must not be negative")
)

// DebtInput is a debt as entered by the user, before defaults are applied.
type DebtInput struct {
	Name           string
	Amount         float64
	InterestRate   float64
	TotalTerms     int
	RemainingTerms int
	MonthlyPayment float64
}

// Plan is a published simulation result.
type Plan struct {
	RunID        string
	Generation   uint64
	Strategy     calculator.Strategy
	Schedule     []calculator.MonthSnapshot
	CurrentExtra float64
	Summary      calculator.Summary
}

// Planner owns the debt list and settings, persists every change and keeps
// the latest plan. Each change triggers a full re-simulation; results from
// runs older than the published one are dropped.
type Planner struct {
	store    storage.Store
	recorder *metrics.Recorder

	mu       sync.Mutex
	debts    []models.Debt
	settings models.Settings
	gen      uint64 // last generation handed out

	planMu sync.RWMutex
	plan   Plan
}

// NewPlanner loads saved state from store, falling back to defaults for a
// fresh store, and computes the initial plan.
func NewPlanner(ctx context.Context, store storage.Store, defaults models.Settings, recorder *metrics.Recorder) (*Planner, error) {
	debts, err := store.LoadDebts(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}

	settings, err := store.LoadSettings(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		settings = defaults
	} else if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !calculator.Strategy(settings.Strategy).Valid() {
		slog.Warn("Saved strategy is unknown, using default", "strategy", settings.Strategy, "default", defaults.Strategy)
		settings.Strategy = defaults.Strategy
	}

	p := &Planner{
		store:    store,
		recorder: recorder,
		debts:    debts,
		settings: settings,
	}
	slog.Info("Planner state loaded", "debts", len(debts), "strategy", settings.Strategy, "extra", settings.ExtraContribution)

	p.recompute(p.snapshotLocked())
	return p, nil
}

// Debts returns a copy of the current debt list.
func (p *Planner) Debts() []models.Debt {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.debts)
}

// Settings returns the current settings.
func (p *Planner) Settings() models.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// Plan returns the most recently published plan.
func (p *Planner) Plan() Plan {
	p.planMu.RLock()
	defer p.planMu.RUnlock()
	return p.plan
}

// AddDebt validates in, fills defaults, assigns the next id and saves.
func (p *Planner) AddDebt(ctx context.Context, in DebtInput) (models.Debt, error) {
	debt, err := NewDebt(in)
	if err != nil {
		return models.Debt{}, err
	}

	p.mu.Lock()
	debt.ID = models.NextDebtID(p.debts)
	updated := append(slices.Clone(p.debts), debt)
	if err := p.store.SaveDebts(ctx, updated); err != nil {
		p.mu.Unlock()
		return models.Debt{}, fmt.Errorf("failed to save debts: %w", err)
	}
	p.debts = updated
	run := p.snapshotLocked()
	p.mu.Unlock()

	slog.Info("Debt added", "debt_id", debt.ID, "name", debt.Name, "amount", debt.Amount, "monthly_payment", debt.MonthlyPayment)
	p.recompute(run)
	return debt, nil
}

// RemoveDebt deletes the debt with id and saves.
func (p *Planner) RemoveDebt(ctx context.Context, id int64) error {
	p.mu.Lock()
	idx := slices.IndexFunc(p.debts, func(d models.Debt) bool { return d.ID == id })
	if idx < 0 {
		p.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrDebtNotFound, id)
	}
	updated := slices.Delete(slices.Clone(p.debts), idx, idx+1)
	if err := p.store.SaveDebts(ctx, updated); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to save debts: %w", err)
	}
	p.debts = updated
	run := p.snapshotLocked()
	p.mu.Unlock()

	slog.Info("Debt removed", "debt_id", id, "remaining", len(updated))
	p.recompute(run)
	return nil
}

// UpdateSettings changes strategy and/or extra contribution. Nil fields are
// left as they are.
func (p *Planner) UpdateSettings(ctx context.Context, strategy *string, extra *float64) (models.Settings, error) {
	if strategy != nil && !calculator.Strategy(*strategy).Valid() {
		return models.Settings{}, fmt.Errorf("%w: %q", ErrInvalidStrategy, *strategy)
	}
	if extra != nil && (*extra < 0 || math.IsNaN(*extra) || math.IsInf(*extra, 0)) {
		return models.Settings{}, ErrNegativeExtra
	}

	p.mu.Lock()
	updated := p.settings
	if strategy != nil {
		updated.Strategy = *strategy
	}
	if extra != nil {
		updated.ExtraContribution = *extra
	}
	if updated == p.settings {
		p.mu.Unlock()
		return updated, nil
	}
	if err := p.store.SaveSettings(ctx, updated); err != nil {
		p.mu.Unlock()
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	p.settings = updated
	run := p.snapshotLocked()
	p.mu.Unlock()

	slog.Info("Settings updated", "strategy", updated.Strategy, "extra", updated.ExtraContribution)
	p.recompute(run)
	return updated, nil
}

// Compare runs both strategies over the current debts and extra.
func (p *Planner) Compare(ctx context.Context) (calculator.Comparison, error) {
	p.mu.Lock()
	debts := ToCalculatorDebts(p.debts)
	extra := p.settings.ExtraContribution
	p.mu.Unlock()

	return calculator.Compare(ctx, debts, extra)
}

// runInput is everything one simulation run needs, copied under the lock.
type runInput struct {
	gen      uint64
	debts    []calculator.Debt
	strategy calculator.Strategy
	extra    float64
}

// snapshotLocked copies the inputs and hands out the next generation.
// p.mu must be held.
func (p *Planner) snapshotLocked() runInput {
	p.gen++
	return runInput{
		gen:      p.gen,
		debts:    ToCalculatorDebts(p.debts),
		strategy: calculator.Strategy(p.settings.Strategy),
		extra:    p.settings.ExtraContribution,
	}
}

// recompute simulates in and publishes the result unless a newer
// generation has already been published. Reports whether it published.
func (p *Planner) recompute(in runInput) bool {
	runID := uuid.NewString()
	start := time.Now()

	res := calculator.Simulate(in.debts, in.strategy, in.extra)
	plan := Plan{
		RunID:        runID,
		Generation:   in.gen,
		Strategy:     in.strategy,
		Schedule:     res.Schedule,
		CurrentExtra: res.CurrentExtra,
		Summary:      calculator.Summarize(in.debts, in.extra, res),
	}
	took := time.Since(start)

	if p.recorder != nil {
		p.recorder.ObserveRun(in.strategy, took, plan.Summary)
		p.recorder.SetDebtCount(len(in.debts))
	}

	p.planMu.Lock()
	defer p.planMu.Unlock()
	if in.gen <= p.plan.Generation {
		slog.Debug("Discarding stale plan", "run_id", runID, "generation", in.gen, "published", p.plan.Generation)
		if p.recorder != nil {
			p.recorder.ObserveDiscarded()
		}
		return false
	}
	p.plan = plan

	slog.Debug("Plan published",
		"run_id", runID,
		"generation", in.gen,
		"strategy", in.strategy,
		"months", plan.Summary.TotalMonths,
		"duration_ms", took.Milliseconds(),
	)
	if plan.Summary.HorizonReached {
		slog.Warn("Payoff not reachable within horizon", "run_id", runID, "months", calculator.MaxMonths)
	}
	return true
}

// NewDebt validates in and applies the term and installment defaults.
func NewDebt(in DebtInput) (models.Debt, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return models.Debt{}, fmt.Errorf("%w: name is required", ErrInvalidDebt)
	case !(in.Amount > 0) || math.IsInf(in.Amount, 0):
		return models.Debt{}, fmt.Errorf("%w: amount must be positive", ErrInvalidDebt)
	case !(in.InterestRate >= 0) || math.IsInf(in.InterestRate, 0):
		return models.Debt{}, fmt.Errorf("%w: interest rate must not be negative", ErrInvalidDebt)
	}

	total := in.TotalTerms
	if total <= 0 {
		total = calculator.DefaultTermMonths
	}
	remaining := in.RemainingTerms
	if remaining <= 0 {
		remaining = total
	}
	payment := in.MonthlyPayment
	if !(payment > 0) || math.IsInf(payment, 0) {
		payment = calculator.ComputeMinimumPayment(in.Amount, in.InterestRate, remaining)
	}

	return models.Debt{
		Name:           name,
		Amount:         in.Amount,
		InterestRate:   in.InterestRate,
		TotalTerms:     total,
		RemainingTerms: remaining,
		MonthlyPayment: payment,
	}, nil
}

// ToCalculatorDebts converts stored debts into simulator input.
func ToCalculatorDebts(debts []models.Debt) []calculator.Debt {
	out := make([]calculator.Debt, len(debts))
	for i, d := range debts {
		out[i] = calculator.Debt{
			ID:             d.ID,
			Name:           d.Name,
			Amount:         d.Amount,
			InterestRate:   d.InterestRate,
			TotalTerms:     d.TotalTerms,
			RemainingTerms: d.RemainingTerms,
			MonthlyPayment: d.MonthlyPayment,
		}
	}
	return out
}
