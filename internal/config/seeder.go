package config

import (
	"fmt"
	"math/rand"
	"time"

	"esolve-collections/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var customerNames = []string{
	"John Smith", "Sarah Johnson", "Michael Brown", "Emily Davis",
	"Robert Wilson", "Jessica Martinez", "David Anderson", "Jennifer Taylor",
	"William Thomas", "Lisa Garcia", "James Rodriguez", "Mary Lee",
	"Christopher White", "Patricia Harris", "Daniel Clark", "Nancy Lewis",
}

var agentDirectory = []struct {
	name  string
	email string
}{
	{"Alex Thompson", "alex.thompson@esolve.com"},
	{"Maria Rodriguez", "maria.rodriguez@esolve.com"},
	{"James Wilson", "james.wilson@esolve.com"},
	{"Sarah Chen", "sarah.chen@esolve.com"},
	{"Michael Brown", "michael.brown@esolve.com"},
}

const day = 24 * time.Hour

// Seeder generates the sample population loaded into the data store at startup
type Seeder struct {
	agents int
	cases  int
	rng    *rand.Rand
	now    func() time.Time
}

// NewSeeder creates a seeder from config. A nil clock uses time.Now.
func NewSeeder(cfg SeedConfig, now func() time.Time) *Seeder {
	if now == nil {
		now = time.Now
	}
	return &Seeder{
		agents: cfg.Agents,
		cases:  cfg.Cases,
		rng:    rand.New(rand.NewSource(cfg.RandomSeed)),
		now:    now,
	}
}

// Generate builds the agents and the cases assigned to them.
// Cases need at least one agent; with no agents no cases are generated.
func (s *Seeder) Generate() ([]domain.Agent, []domain.Case) {
	agents := s.generateAgents()
	cases := s.generateCases(agents)

	zap.L().Info("Sample data generated",
		zap.Int("agents", len(agents)),
		zap.Int("cases", len(cases)),
	)
	return agents, cases
}

func (s *Seeder) generateAgents() []domain.Agent {
	agents := make([]domain.Agent, 0, s.agents)
	for i := 0; i < s.agents; i++ {
		info := agentDirectory[i%len(agentDirectory)]
		name, email := info.name, info.email
		if i >= len(agentDirectory) {
			name = fmt.Sprintf("%s %d", info.name, i/len(agentDirectory)+1)
			email = fmt.Sprintf("agent%d@esolve.com", i+1)
		}

		status := domain.AgentActive
		if s.rng.Float64() <= 0.2 {
			status = domain.AgentInactive
		}

		agents = append(agents, domain.Agent{
			ID:             fmt.Sprintf("agent-%d", i+1),
			Name:           name,
			Email:          email,
			Phone:          fmt.Sprintf("+1 555-%04d", i+1),
			AssignedCases:  s.rng.Intn(50) + 10,
			RecoveryRate:   float64(s.rng.Intn(40) + 60),
			TotalRecovered: decimal.NewFromInt(int64(s.rng.Intn(500000) + 100000)),
			Status:         status,
			JoinedDate:     time.Date(2023, time.Month(s.rng.Intn(12)+1), s.rng.Intn(28)+1, 0, 0, 0, 0, time.UTC),
		})
	}
	return agents
}

func (s *Seeder) generateCases(agents []domain.Agent) []domain.Case {
	if len(agents) == 0 {
		if s.cases > 0 {
			zap.L().Warn("Skipping case generation: no agents to assign", zap.Int("requested", s.cases))
		}
		return []domain.Case{}
	}

	now := s.now().UTC()
	cases := make([]domain.Case, 0, s.cases)

	for i := 0; i < s.cases; i++ {
		agent := agents[s.rng.Intn(len(agents))]
		principal := decimal.NewFromInt(int64(s.rng.Intn(50000) + 5000))
		outstanding := principal.Mul(decimal.NewFromFloat(s.rng.Float64()*0.8 + 0.2)).Round(2)
		status := domain.CaseStatuses[s.rng.Intn(len(domain.CaseStatuses))]

		overdue := decimal.Zero
		if status == domain.CaseOverdue {
			overdue = outstanding.Mul(decimal.NewFromFloat(0.3)).Round(2)
		}

		dueDate := now.Add(time.Duration(s.rng.Intn(60)-30) * day)
		createdAt := now.Add(-time.Duration(s.rng.Intn(180)) * day)

		cases = append(cases, domain.Case{
			ID:                fmt.Sprintf("case-%d", i+1),
			LoanID:            fmt.Sprintf("LN%d", 1000+i),
			CustomerName:      customerNames[s.rng.Intn(len(customerNames))],
			CustomerPhone:     fmt.Sprintf("+1 555-%d", s.rng.Intn(9000)+1000),
			CustomerEmail:     fmt.Sprintf("customer%d@example.com", i),
			PrincipalAmount:   principal,
			OutstandingAmount: outstanding,
			OverdueAmount:     overdue,
			DueDate:           dueDate,
			Status:            status,
			Priority:          domain.CasePriorities[s.rng.Intn(len(domain.CasePriorities))],
			AssignedAgent:     agent.Name,
			AssignedAgentID:   agent.ID,
			LastContactDate:   now.Add(-time.Duration(s.rng.Float64() * float64(7*day))),
			NextFollowUpDate:  now.Add(time.Duration(s.rng.Float64() * float64(7*day))),
			CreatedAt:         createdAt,
			Notes:             []domain.CaseNote{},
			PaymentHistory: []domain.Payment{
				{
					ID:     fmt.Sprintf("payment-%d-1", i),
					Amount: principal.Mul(decimal.NewFromFloat(0.2)).Round(2),
					Date:   now.Add(-30 * day),
					Method: "Bank Transfer",
					Status: domain.PaymentSuccess,
				},
			},
			Timeline: []domain.TimelineEvent{
				{
					ID:          fmt.Sprintf("timeline-%d-1", i),
					Title:       "Case Assigned",
					Description: fmt.Sprintf("Case assigned to %s", agent.Name),
					Timestamp:   createdAt,
					Type:        domain.TimelineAssignment,
				},
			},
		})
	}
	return cases
}
