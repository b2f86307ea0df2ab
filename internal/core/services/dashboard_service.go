package services

import (
	"fmt"
	"strings"
	"time"

	"esolve-collections/internal/core/domain"

	"github.com/shopspring/decimal"
)

// chartMonths is how many months the recovery chart covers
const chartMonths = 6

// chartAgents is how many agents the performance chart shows
const chartAgents = 5

var hundred = decimal.NewFromInt(100)

// DashboardService derives KPIs and chart series from the data store
type DashboardService struct {
	store *DataStore
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service. A nil clock uses time.Now.
func NewDashboardService(store *DataStore, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{store: store, now: now}
}

// ============================================================
// Dashboard
// ============================================================

// DashboardData is everything the dashboard overview shows
type DashboardData struct {
	KPIs             domain.DashboardKPI `json:"kpis"`
	CasesByStatus    []domain.ChartPoint `json:"cases_by_status"`
	MonthlyRecovery  []domain.ChartPoint `json:"monthly_recovery"`
	AgentPerformance []domain.ChartPoint `json:"agent_performance"`
	RecentActivities []domain.Activity   `json:"recent_activities"`
}

// recentActivityCount is how many activities the overview includes
const recentActivityCount = 10

// GetDashboard computes the overview from one consistent snapshot
func (s *DashboardService) GetDashboard() *DashboardData {
	snap := s.store.Snapshot()

	recent := snap.Activities
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}

	return &DashboardData{
		KPIs:             ComputeKPIs(snap.Cases, snap.Agents),
		CasesByStatus:    CasesByStatus(snap.Cases),
		MonthlyRecovery:  MonthlyRecovery(snap.Cases, s.now()),
		AgentPerformance: AgentPerformance(snap.Agents),
		RecentActivities: recent,
	}
}

// Summary renders the headline KPIs as one line for the activity log
func (s *DashboardService) Summary() string {
	snap := s.store.Snapshot()
	kpi := ComputeKPIs(snap.Cases, snap.Agents)

	return fmt.Sprintf("%d cases, %d resolved, %d overdue, %s pending, recovery rate %.1f%%",
		kpi.TotalCases,
		kpi.ResolvedCases,
		kpi.OverduePayments,
		kpi.PendingAmount.StringFixed(2),
		kpi.RecoveryRate,
	)
}

// ============================================================
// Aggregates
// ============================================================

// ComputeKPIs aggregates the headline figures.
// RecoveryRate is the share of total principal recovered on settled cases,
// in percent; it is 0 when there is no principal.
func ComputeKPIs(cases []domain.Case, agents []domain.Agent) domain.DashboardKPI {
	kpi := domain.DashboardKPI{
		TotalCases:    len(cases),
		PendingAmount: decimal.Zero,
	}

	recovered := decimal.Zero
	principal := decimal.Zero

	for _, c := range cases {
		kpi.PendingAmount = kpi.PendingAmount.Add(c.OutstandingAmount)
		principal = principal.Add(c.PrincipalAmount)

		if c.Status.IsSettled() {
			kpi.ResolvedCases++
			recovered = recovered.Add(c.PrincipalAmount.Sub(c.OutstandingAmount))
		}
		if c.Status == domain.CaseOverdue {
			kpi.OverduePayments++
		}
	}

	if principal.IsPositive() {
		kpi.RecoveryRate = recovered.Mul(hundred).Div(principal).InexactFloat64()
	}
	kpi.AgentEfficiency = agentEfficiency(agents)
	return kpi
}

// agentEfficiency is the mean recovery rate of active agents
func agentEfficiency(agents []domain.Agent) float64 {
	var sum float64
	var n int
	for _, a := range agents {
		if a.Status == domain.AgentActive {
			sum += a.RecoveryRate
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CasesByStatus counts cases per status. Statuses with no cases are left out.
func CasesByStatus(cases []domain.Case) []domain.ChartPoint {
	counts := make(map[domain.CaseStatus]int, len(domain.CaseStatuses))
	for _, c := range cases {
		counts[c.Status]++
	}

	points := make([]domain.ChartPoint, 0, len(counts))
	for _, status := range domain.CaseStatuses {
		if n := counts[status]; n > 0 {
			points = append(points, domain.ChartPoint{
				Name:  statusLabel(status),
				Value: float64(n),
			})
		}
	}
	return points
}

func statusLabel(status domain.CaseStatus) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MonthlyRecovery sums successful payments per calendar month for the six
// months ending with the month of now, oldest first
func MonthlyRecovery(cases []domain.Case, now time.Time) []domain.ChartPoint {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	first := current.AddDate(0, -(chartMonths - 1), 0)

	totals := make([]decimal.Decimal, chartMonths)
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, c := range cases {
		for _, p := range c.PaymentHistory {
			if p.Status != domain.PaymentSuccess {
				continue
			}
			d := p.Date.UTC()
			idx := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
			if idx < 0 || idx >= chartMonths {
				continue
			}
			totals[idx] = totals[idx].Add(p.Amount)
		}
	}

	points := make([]domain.ChartPoint, chartMonths)
	for i := range points {
		points[i] = domain.ChartPoint{
			Name:  first.AddDate(0, i, 0).Format("Jan"),
			Value: totals[i].InexactFloat64(),
		}
	}
	return points
}

// AgentPerformance lists the recovery rate of the first five agents by first name
func AgentPerformance(agents []domain.Agent) []domain.ChartPoint {
	n := len(agents)
	if n > chartAgents {
		n = chartAgents
	}

	points := make([]domain.ChartPoint, 0, n)
	for _, a := range agents[:n] {
		name := a.Name
		if fields := strings.Fields(a.Name); len(fields) > 0 {
			name = fields[0]
		}
		points = append(points, domain.ChartPoint{Name: name, Value: a.RecoveryRate})
	}
	return points
}
