package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"esolve-collections/internal/core/domain"

	"github.com/shopspring/decimal"
)

func TestComputeKPIs(t *testing.T) {
	cases := []domain.Case{
		{Status: domain.CaseResolved, PrincipalAmount: decimal.NewFromInt(1000), OutstandingAmount: decimal.NewFromInt(200)},
		{Status: domain.CaseClosed, PrincipalAmount: decimal.NewFromInt(1000), OutstandingAmount: decimal.Zero},
		{Status: domain.CaseOverdue, PrincipalAmount: decimal.NewFromInt(2000), OutstandingAmount: decimal.NewFromInt(1500)},
		{Status: domain.CaseAssigned, PrincipalAmount: decimal.NewFromInt(1000), OutstandingAmount: decimal.NewFromInt(1000)},
	}
	agents := []domain.Agent{
		{Status: domain.AgentActive, RecoveryRate: 80},
		{Status: domain.AgentActive, RecoveryRate: 60},
		{Status: domain.AgentInactive, RecoveryRate: 10},
	}

	kpi := ComputeKPIs(cases, agents)

	if kpi.TotalCases != 4 {
		t.Errorf("TotalCases = %d, want 4", kpi.TotalCases)
	}
	if kpi.ResolvedCases != 2 {
		t.Errorf("ResolvedCases = %d, want 2", kpi.ResolvedCases)
	}
	if kpi.OverduePayments != 1 {
		t.Errorf("OverduePayments = %d, want 1", kpi.OverduePayments)
	}
	if !kpi.PendingAmount.Equal(decimal.NewFromInt(2700)) {
		t.Errorf("PendingAmount = %s, want 2700", kpi.PendingAmount)
	}
	// (800 + 1000) / 5000
	if math.Abs(kpi.RecoveryRate-36) > 1e-9 {
		t.Errorf("RecoveryRate = %v, want 36", kpi.RecoveryRate)
	}
	if math.Abs(kpi.AgentEfficiency-70) > 1e-9 {
		t.Errorf("AgentEfficiency = %v, want 70", kpi.AgentEfficiency)
	}
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpi := ComputeKPIs(nil, nil)

	if kpi.TotalCases != 0 || kpi.RecoveryRate != 0 || kpi.AgentEfficiency != 0 {
		t.Errorf("Expected zero KPIs, got %+v", kpi)
	}
	if !kpi.PendingAmount.IsZero() {
		t.Errorf("PendingAmount = %s, want 0", kpi.PendingAmount)
	}
}

func TestCasesByStatus(t *testing.T) {
	cases := []domain.Case{
		{Status: domain.CaseOverdue},
		{Status: domain.CaseAssigned},
		{Status: domain.CaseOverdue},
	}

	got := CasesByStatus(cases)
	if len(got) != 2 {
		t.Fatalf("Expected 2 points, got %+v", got)
	}
	if got[0].Name != "Assigned" || got[0].Value != 1 {
		t.Errorf("Unexpected first point: %+v", got[0])
	}
	if got[1].Name != "Overdue" || got[1].Value != 2 {
		t.Errorf("Unexpected second point: %+v", got[1])
	}
}

func TestMonthlyRecovery(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	payment := func(y int, m time.Month, amount int64, status domain.PaymentStatus) domain.Payment {
		return domain.Payment{Amount: decimal.NewFromInt(amount), Date: time.Date(y, m, 10, 0, 0, 0, 0, time.UTC), Status: status}
	}

	cases := []domain.Case{
		{PaymentHistory: []domain.Payment{
			payment(2024, time.June, 100, domain.PaymentSuccess),
			payment(2024, time.June, 50, domain.PaymentFailed),
			payment(2024, time.January, 30, domain.PaymentSuccess),
		}},
		{PaymentHistory: []domain.Payment{
			payment(2024, time.June, 25, domain.PaymentSuccess),
			payment(2023, time.December, 999, domain.PaymentSuccess),
		}},
	}

	got := MonthlyRecovery(cases, now)
	if len(got) != 6 {
		t.Fatalf("Expected 6 months, got %d", len(got))
	}

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	if strings.Join(names, ",") != "Jan,Feb,Mar,Apr,May,Jun" {
		t.Errorf("Unexpected months: %v", names)
	}
	if got[0].Value != 30 {
		t.Errorf("January = %v, want 30", got[0].Value)
	}
	if got[5].Value != 125 {
		t.Errorf("June = %v, want 125", got[5].Value)
	}
}

func TestAgentPerformance(t *testing.T) {
	agents := make([]domain.Agent, 7)
	for i := range agents {
		agents[i] = domain.Agent{Name: "Agent Number", RecoveryRate: float64(60 + i)}
	}
	agents[0].Name = "Alex Thompson"

	got := AgentPerformance(agents)
	if len(got) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(got))
	}
	if got[0].Name != "Alex" || got[0].Value != 60 {
		t.Errorf("Unexpected first point: %+v", got[0])
	}
}

func TestDashboardService(t *testing.T) {
	store := newSeededStore(t)
	svc := NewDashboardService(store, func() time.Time { return fixedNow })

	data := svc.GetDashboard()
	if data.KPIs.TotalCases != 2 {
		t.Errorf("TotalCases = %d, want 2", data.KPIs.TotalCases)
	}
	if len(data.RecentActivities) != 1 {
		t.Errorf("Expected the init activity, got %d", len(data.RecentActivities))
	}

	summary := svc.Summary()
	if !strings.Contains(summary, "2 cases") || !strings.Contains(summary, "1 overdue") {
		t.Errorf("Unexpected summary: %q", summary)
	}
}
