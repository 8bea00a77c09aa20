package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/debtplanner/internal/auth"
	"github.com/mmynk/debtplanner/internal/middleware"
	"github.com/mmynk/debtplanner/pkg/rpc"
)

// testClients holds one Connect client per procedure.
type testClients struct {
	listDebts      *connect.Client[ListDebtsRequest, ListDebtsResponse]
	addDebt        *connect.Client[AddDebtRequest, AddDebtResponse]
	removeDebt     *connect.Client[RemoveDebtRequest, RemoveDebtResponse]
	getSettings    *connect.Client[GetSettingsRequest, GetSettingsResponse]
	updateSettings *connect.Client[UpdateSettingsRequest, UpdateSettingsResponse]
	getPlan        *connect.Client[GetPlanRequest, GetPlanResponse]
	comparePlans   *connect.Client[ComparePlansRequest, ComparePlansResponse]
	computePayment *connect.Client[ComputePaymentRequest, ComputePaymentResponse]
}

// setupTestServer creates a test server over a temporary SQLite database.
func setupTestServer(t *testing.T, opts ...connect.HandlerOption) *testClients {
	t.Helper()

	svc := NewPlannerService(newTestPlanner(t, newTestStore(t)))
	path, handler := svc.Handler(opts...)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	url := server.URL
	c := &testClients{
		listDebts:      connect.NewClient[ListDebtsRequest, ListDebtsResponse](http.DefaultClient, url+ListDebtsProcedure, rpc.WithJSON()),
		addDebt:        connect.NewClient[AddDebtRequest, AddDebtResponse](http.DefaultClient, url+AddDebtProcedure, rpc.WithJSON()),
		removeDebt:     connect.NewClient[RemoveDebtRequest, RemoveDebtResponse](http.DefaultClient, url+RemoveDebtProcedure, rpc.WithJSON()),
		getSettings:    connect.NewClient[GetSettingsRequest, GetSettingsResponse](http.DefaultClient, url+GetSettingsProcedure, rpc.WithJSON()),
		updateSettings: connect.NewClient[UpdateSettingsRequest, UpdateSettingsResponse](http.DefaultClient, url+UpdateSettingsProcedure, rpc.WithJSON()),
		getPlan:        connect.NewClient[GetPlanRequest, GetPlanResponse](http.DefaultClient, url+GetPlanProcedure, rpc.WithJSON()),
		comparePlans:   connect.NewClient[ComparePlansRequest, ComparePlansResponse](http.DefaultClient, url+ComparePlansProcedure, rpc.WithJSON()),
		computePayment: connect.NewClient[ComputePaymentRequest, ComputePaymentResponse](http.DefaultClient, url+ComputePaymentProcedure, rpc.WithJSON()),
	}
	return c
}

func TestPlannerService(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	t.Run("GetPlan on empty list", func(t *testing.T) {
		resp, err := clients.getPlan.CallUnary(ctx, connect.NewRequest(&GetPlanRequest{}))
		if err != nil {
			t.Fatalf("GetPlan failed: %v", err)
		}
		if len(resp.Msg.Months) != 0 || resp.Msg.CurrentExtra != 5000 {
			t.Errorf("empty plan = %d months / extra %v", len(resp.Msg.Months), resp.Msg.CurrentExtra)
		}
	})

	t.Run("AddDebt and ListDebts", func(t *testing.T) {
		for _, req := range []*AddDebtRequest{
			{Name: "Car", Amount: 5000, InterestRate: 6, MonthlyPayment: 150},
			{Name: "Card", Amount: 800, InterestRate: 18, MonthlyPayment: 40},
		} {
			resp, err := clients.addDebt.CallUnary(ctx, connect.NewRequest(req))
			if err != nil {
				t.Fatalf("AddDebt failed: %v", err)
			}
			if resp.Msg.Debt.ID == 0 {
				t.Error("expected id to be assigned")
			}
		}

		resp, err := clients.listDebts.CallUnary(ctx, connect.NewRequest(&ListDebtsRequest{}))
		if err != nil {
			t.Fatalf("ListDebts failed: %v", err)
		}
		if len(resp.Msg.Debts) != 2 {
			t.Errorf("debt count = %d, want 2", len(resp.Msg.Debts))
		}
	})

	t.Run("AddDebt rejects invalid input", func(t *testing.T) {
		_, err := clients.addDebt.CallUnary(ctx, connect.NewRequest(&AddDebtRequest{Name: "", Amount: 10}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
		}
	})

	t.Run("UpdateSettings then GetPlan", func(t *testing.T) {
		strategy := "snowball"
		extra := 100.0
		resp, err := clients.updateSettings.CallUnary(ctx, connect.NewRequest(&UpdateSettingsRequest{
			Strategy:          &strategy,
			ExtraContribution: &extra,
		}))
		if err != nil {
			t.Fatalf("UpdateSettings failed: %v", err)
		}
		if resp.Msg.Settings.Strategy != "snowball" {
			t.Errorf("strategy = %s, want snowball", resp.Msg.Settings.Strategy)
		}

		plan, err := clients.getPlan.CallUnary(ctx, connect.NewRequest(&GetPlanRequest{}))
		if err != nil {
			t.Fatalf("GetPlan failed: %v", err)
		}
		if plan.Msg.Strategy != "snowball" || plan.Msg.RunID == "" {
			t.Errorf("plan strategy/run = %s/%q", plan.Msg.Strategy, plan.Msg.RunID)
		}
		if plan.Msg.Months[0].Debts[0].Name != "Card" {
			t.Errorf("first debt = %s, want Card", plan.Msg.Months[0].Debts[0].Name)
		}
		var freed *FreedNote
		for _, m := range plan.Msg.Months {
			if m.Message != nil {
				freed = m.Message
			}
		}
		if freed == nil || freed.Amount != 40 || freed.Text == "" {
			t.Errorf("freed message = %+v, want Card releasing 40", freed)
		}
		if plan.Msg.Summary.FreedExtra != 40 || !plan.Msg.Summary.AllPaid {
			t.Errorf("summary = %+v", plan.Msg.Summary)
		}
	})

	t.Run("UpdateSettings rejects unknown strategy", func(t *testing.T) {
		bad := "lottery"
		_, err := clients.updateSettings.CallUnary(ctx, connect.NewRequest(&UpdateSettingsRequest{Strategy: &bad}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
		}
	})

	t.Run("GetSettings", func(t *testing.T) {
		resp, err := clients.getSettings.CallUnary(ctx, connect.NewRequest(&GetSettingsRequest{}))
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if resp.Msg.Settings.ExtraContribution != 100 {
			t.Errorf("extra = %v, want 100", resp.Msg.Settings.ExtraContribution)
		}
	})

	t.Run("ComparePlans", func(t *testing.T) {
		resp, err := clients.comparePlans.CallUnary(ctx, connect.NewRequest(&ComparePlansRequest{}))
		if err != nil {
			t.Fatalf("ComparePlans failed: %v", err)
		}
		if resp.Msg.Avalanche.TotalMonths == 0 || resp.Msg.Snowball.TotalMonths == 0 {
			t.Errorf("comparison = %+v", resp.Msg)
		}
	})

	t.Run("ComputePayment", func(t *testing.T) {
		resp, err := clients.computePayment.CallUnary(ctx, connect.NewRequest(&ComputePaymentRequest{
			Principal: 1200, InterestRate: 0, TermMonths: 12,
		}))
		if err != nil {
			t.Fatalf("ComputePayment failed: %v", err)
		}
		if resp.Msg.MonthlyPayment != 100 {
			t.Errorf("MonthlyPayment = %v, want 100", resp.Msg.MonthlyPayment)
		}
	})

	t.Run("RemoveDebt unknown id", func(t *testing.T) {
		_, err := clients.removeDebt.CallUnary(ctx, connect.NewRequest(&RemoveDebtRequest{ID: 999}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("code = %v, want NotFound", connect.CodeOf(err))
		}
	})
}

func TestPlannerService_RequireAuth(t *testing.T) {
	issuer := auth.NewIssuer("test-secret-key-32-bytes-long!!!", time.Hour)
	clients := setupTestServer(t, connect.WithInterceptors(middleware.RequireAuth(issuer)))
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		_, err := clients.listDebts.CallUnary(ctx, connect.NewRequest(&ListDebtsRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := issuer.Issue("household")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		req := connect.NewRequest(&ListDebtsRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		if _, err := clients.listDebts.CallUnary(ctx, req); err != nil {
			t.Errorf("ListDebts failed: %v", err)
		}
	})
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{ErrInvalidDebt, connect.CodeInvalidArgument},
		{ErrInvalidStrategy, connect.CodeInvalidArgument},
		{ErrNegativeExtra, connect.CodeInvalidArgument},
		{ErrDebtNotFound, connect.CodeNotFound},
		{context.Canceled, connect.CodeCanceled},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		if got := connect.CodeOf(toConnectError(tt.err)); got != tt.want {
			t.Errorf("toConnectError(%v) code = %v, want %v", tt.err, got, tt.want)
		}
	}
}
