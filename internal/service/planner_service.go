package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/debtplanner/internal/calculator"
	"github.com/mmynk/debtplanner/pkg/rpc"
)

// ServiceName is the Connect service path prefix.
const ServiceName = "debtplanner.v1.PlannerService"

const (
	ListDebtsProcedure      = "/" + ServiceName + "/ListDebts"
	AddDebtProcedure        = "/" + ServiceName + "/AddDebt"
	RemoveDebtProcedure     = "/" + ServiceName + "/RemoveDebt"
	GetSettingsProcedure    = "/" + ServiceName + "/GetSettings"
	UpdateSettingsProcedure = "/" + ServiceName + "/UpdateSettings"
	GetPlanProcedure        = "/" + ServiceName + "/GetPlan"
	ComparePlansProcedure   = "/" + ServiceName + "/ComparePlans"
	ComputePaymentProcedure = "/" + ServiceName + "/ComputePayment"
)

// PlannerService exposes a Planner over Connect.
type PlannerService struct {
	planner *Planner
}

// NewPlannerService creates a new PlannerService backed by planner.
func NewPlannerService(planner *Planner) *PlannerService {
	return &PlannerService{planner: planner}
}

// Handler mounts every procedure and returns the path prefix to register.
func (s *PlannerService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{rpc.WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListDebtsProcedure, connect.NewUnaryHandler(ListDebtsProcedure, s.ListDebts, opts...))
	mux.Handle(AddDebtProcedure, connect.NewUnaryHandler(AddDebtProcedure, s.AddDebt, opts...))
	mux.Handle(RemoveDebtProcedure, connect.NewUnaryHandler(RemoveDebtProcedure, s.RemoveDebt, opts...))
	mux.Handle(GetSettingsProcedure, connect.NewUnaryHandler(GetSettingsProcedure, s.GetSettings, opts...))
	mux.Handle(UpdateSettingsProcedure, connect.NewUnaryHandler(UpdateSettingsProcedure, s.UpdateSettings, opts...))
	mux.Handle(GetPlanProcedure, connect.NewUnaryHandler(GetPlanProcedure, s.GetPlan, opts...))
	mux.Handle(ComparePlansProcedure, connect.NewUnaryHandler(ComparePlansProcedure, s.ComparePlans, opts...))
	mux.Handle(ComputePaymentProcedure, connect.NewUnaryHandler(ComputePaymentProcedure, s.ComputePayment, opts...))
	return "/" + ServiceName + "/", mux
}

// ListDebts returns the stored debts in entry order.
func (s *PlannerService) ListDebts(ctx context.Context, req *connect.Request[ListDebtsRequest]) (*connect.Response[ListDebtsResponse], error) {
	return connect.NewResponse(&ListDebtsResponse{Debts: s.planner.Debts()}), nil
}

// AddDebt creates a debt and recomputes the plan.
func (s *PlannerService) AddDebt(ctx context.Context, req *connect.Request[AddDebtRequest]) (*connect.Response[AddDebtResponse], error) {
	slog.Info("AddDebt request received", "name", req.Msg.Name, "amount", req.Msg.Amount, "interest_rate", req.Msg.InterestRate)

	debt, err := s.planner.AddDebt(ctx, DebtInput{
		Name:           req.Msg.Name,
		Amount:         req.Msg.Amount,
		InterestRate:   req.Msg.InterestRate,
		TotalTerms:     req.Msg.TotalTerms,
		RemainingTerms: req.Msg.RemainingTerms,
		MonthlyPayment: req.Msg.MonthlyPayment,
	})
	if err != nil {
		slog.Error("AddDebt failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&AddDebtResponse{Debt: debt}), nil
}

// RemoveDebt deletes a debt and recomputes the plan.
func (s *PlannerService) RemoveDebt(ctx context.Context, req *connect.Request[RemoveDebtRequest]) (*connect.Response[RemoveDebtResponse], error) {
	if err := s.planner.RemoveDebt(ctx, req.Msg.ID); err != nil {
		slog.Error("RemoveDebt failed", "debt_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RemoveDebtResponse{}), nil
}

// GetSettings returns the current strategy and extra contribution.
func (s *PlannerService) GetSettings(ctx context.Context, req *connect.Request[GetSettingsRequest]) (*connect.Response[GetSettingsResponse], error) {
	return connect.NewResponse(&GetSettingsResponse{Settings: s.planner.Settings()}), nil
}

// UpdateSettings changes strategy and/or extra contribution.
func (s *PlannerService) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	settings, err := s.planner.UpdateSettings(ctx, req.Msg.Strategy, req.Msg.ExtraContribution)
	if err != nil {
		slog.Error("UpdateSettings failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&UpdateSettingsResponse{Settings: settings}), nil
}

// GetPlan returns the latest published amortization schedule and summary.
func (s *PlannerService) GetPlan(ctx context.Context, req *connect.Request[GetPlanRequest]) (*connect.Response[GetPlanResponse], error) {
	plan := s.planner.Plan()
	return connect.NewResponse(&GetPlanResponse{
		RunID:        plan.RunID,
		Strategy:     string(plan.Strategy),
		Months:       toMonthRows(plan.Schedule),
		CurrentExtra: plan.CurrentExtra,
		Summary:      toSummary(plan.Summary),
	}), nil
}

// ComparePlans summarizes both strategies over the current debts.
func (s *PlannerService) ComparePlans(ctx context.Context, req *connect.Request[ComparePlansRequest]) (*connect.Response[ComparePlansResponse], error) {
	c, err := s.planner.Compare(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ComparePlansResponse{
		Avalanche:     toSummary(c.Avalanche),
		Snowball:      toSummary(c.Snowball),
		InterestSaved: c.InterestSaved,
		MonthsSaved:   c.MonthsSaved,
	}), nil
}

// ComputePayment previews the installment for a debt before it is added.
func (s *PlannerService) ComputePayment(ctx context.Context, req *connect.Request[ComputePaymentRequest]) (*connect.Response[ComputePaymentResponse], error) {
	payment := calculator.ComputeMinimumPayment(req.Msg.Principal, req.Msg.InterestRate, req.Msg.TermMonths)
	return connect.NewResponse(&ComputePaymentResponse{MonthlyPayment: payment}), nil
}

// toConnectError maps planner errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidDebt), errors.Is(err, ErrInvalidStrategy), errors.Is(err, ErrNegativeExtra):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrDebtNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
