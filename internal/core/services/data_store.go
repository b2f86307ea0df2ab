package services

import (
	"fmt"
	"sync"
	"time"

	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxActivities is how many activity entries the log keeps
const MaxActivities = 100

// SampleGenerator produces the initial population of the data store
type SampleGenerator interface {
	Generate() ([]domain.Agent, []domain.Case)
}

// CaseUpdate holds optional case fields to merge. Nil fields are left as is.
type CaseUpdate struct {
	CustomerName      *string
	CustomerPhone     *string
	CustomerEmail     *string
	PrincipalAmount   *decimal.Decimal
	OutstandingAmount *decimal.Decimal
	OverdueAmount     *decimal.Decimal
	DueDate           *time.Time
	Status            *domain.CaseStatus
	Priority          *domain.CasePriority
	AssignedAgent     *string
	AssignedAgentID   *string
	LastContactDate   *time.Time
	NextFollowUpDate  *time.Time
}

func (u *CaseUpdate) apply(c *domain.Case) {
	if u.CustomerName != nil {
		c.CustomerName = *u.CustomerName
	}
	if u.CustomerPhone != nil {
		c.CustomerPhone = *u.CustomerPhone
	}
	if u.CustomerEmail != nil {
		c.CustomerEmail = *u.CustomerEmail
	}
	if u.PrincipalAmount != nil {
		c.PrincipalAmount = *u.PrincipalAmount
	}
	if u.OutstandingAmount != nil {
		c.OutstandingAmount = *u.OutstandingAmount
	}
	if u.OverdueAmount != nil {
		c.OverdueAmount = *u.OverdueAmount
	}
	if u.DueDate != nil {
		c.DueDate = *u.DueDate
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if u.AssignedAgent != nil {
		c.AssignedAgent = *u.AssignedAgent
	}
	if u.AssignedAgentID != nil {
		c.AssignedAgentID = *u.AssignedAgentID
	}
	if u.LastContactDate != nil {
		c.LastContactDate = *u.LastContactDate
	}
	if u.NextFollowUpDate != nil {
		c.NextFollowUpDate = *u.NextFollowUpDate
	}
}

// AgentInput is a new agent without an id
type AgentInput struct {
	Name           string
	Email          string
	Phone          string
	AssignedCases  int
	RecoveryRate   float64
	TotalRecovered decimal.Decimal
	Status         domain.AgentStatus
	JoinedDate     time.Time
}

// AgentUpdate holds optional agent fields to merge
type AgentUpdate struct {
	Name           *string
	Email          *string
	Phone          *string
	AssignedCases  *int
	RecoveryRate   *float64
	TotalRecovered *decimal.Decimal
	Status         *domain.AgentStatus
	JoinedDate     *time.Time
}

func (u *AgentUpdate) apply(a *domain.Agent) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.Phone != nil {
		a.Phone = *u.Phone
	}
	if u.AssignedCases != nil {
		a.AssignedCases = *u.AssignedCases
	}
	if u.RecoveryRate != nil {
		a.RecoveryRate = *u.RecoveryRate
	}
	if u.TotalRecovered != nil {
		a.TotalRecovered = *u.TotalRecovered
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.JoinedDate != nil {
		a.JoinedDate = *u.JoinedDate
	}
}

// ActivityInput is an activity entry without id and timestamp
type ActivityInput struct {
	UserID   string
	UserName string
	Action   string
	Details  string
	Type     domain.ActivityType
}

// Snapshot is a consistent copy of every collection
type Snapshot struct {
	Cases      []domain.Case
	Agents     []domain.Agent
	Activities []domain.Activity
}

// DataStoreOption configures a DataStore
type DataStoreOption func(*DataStore)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) DataStoreOption {
	return func(s *DataStore) { s.now = now }
}

// DataStore owns the cases, agents and activity log. Every mutator runs
// entirely under the write lock, so readers only observe completed
// mutations. Readers receive copies and cannot change store state.
type DataStore struct {
	mu        sync.RWMutex
	generator SampleGenerator
	metrics   *metrics.Metrics
	now       func() time.Time

	cases       []domain.Case
	agents      []domain.Agent
	activities  []domain.Activity
	initialized bool
}

// NewDataStore creates an empty, uninitialized store
func NewDataStore(generator SampleGenerator, m *metrics.Metrics, opts ...DataStoreOption) *DataStore {
	s := &DataStore{
		generator:  generator,
		metrics:    m,
		now:        time.Now,
		cases:      []domain.Case{},
		agents:     []domain.Agent{},
		activities: []domain.Activity{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the store with sample data. Only the first call has an
// effect; it reports whether seeding happened.
func (s *DataStore) Initialize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return false
	}

	agents, cases := s.generator.Generate()
	if agents == nil {
		agents = []domain.Agent{}
	}
	if cases == nil {
		cases = []domain.Case{}
	}

	s.agents = agents
	s.cases = cases
	s.activities = []domain.Activity{}
	s.initialized = true

	s.addActivityLocked(ActivityInput{
		UserID:   domain.SystemActor.UserID,
		UserName: domain.SystemActor.Name,
		Action:   "System Initialized",
		Details:  "Dashboard system initialized successfully",
		Type:     domain.ActivitySystem,
	})

	zap.L().Info("Data store initialized",
		zap.Int("agents", len(agents)),
		zap.Int("cases", len(cases)),
	)
	return true
}

// IsInitialized reports whether Initialize has run
func (s *DataStore) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// ============================================================
// Readers
// ============================================================

// Cases returns a copy of every case
func (s *DataStore) Cases() []domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCases(s.cases)
}

// Case returns a copy of the case with id
func (s *DataStore) Case(id string) (domain.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.caseIndex(id); i >= 0 {
		return s.cases[i].Clone(), true
	}
	return domain.Case{}, false
}

// Agents returns a copy of every agent
func (s *DataStore) Agents() []domain.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Agent{}, s.agents...)
}

// Agent returns the agent with id
func (s *DataStore) Agent(id string) (domain.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.agentIndex(id); i >= 0 {
		return s.agents[i], true
	}
	return domain.Agent{}, false
}

// Activities returns the activity log, newest first
func (s *DataStore) Activities() []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Activity{}, s.activities...)
}

// Snapshot returns all collections read under one lock
func (s *DataStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Cases:      cloneCases(s.cases),
		Agents:     append([]domain.Agent{}, s.agents...),
		Activities: append([]domain.Activity{}, s.activities...),
	}
}

// ============================================================
// Case mutators
// ============================================================

// UpdateCase merges fields into a case. It records no timeline event and
// no activity. It reports whether the case exists.
func (s *DataStore) UpdateCase(caseID string, update CaseUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(caseID)
	if i < 0 {
		s.metrics.ObserveMutation("update_case", false)
		return false
	}

	update.apply(&s.cases[i])
	s.metrics.ObserveMutation("update_case", true)
	return true
}

// AddCaseNote appends a note and a note timeline event to a case and logs
// a case_update activity. Content is stored as given; callers reject blank
// notes. It reports whether the case exists.
func (s *DataStore) AddCaseNote(caseID, content string, actor domain.Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(caseID)
	if i < 0 {
		s.metrics.ObserveMutation("add_case_note", false)
		return false
	}

	now := s.now()
	c := &s.cases[i]
	c.Notes = append(c.Notes, domain.CaseNote{
		ID:        newID("note"),
		Content:   content,
		CreatedBy: actor.Name,
		CreatedAt: now,
	})
	c.Timeline = append(c.Timeline, domain.TimelineEvent{
		ID:          newID("timeline"),
		Title:       "Note Added",
		Description: content,
		Timestamp:   now,
		Type:        domain.TimelineNote,
	})

	s.addActivityLocked(ActivityInput{
		UserID:   actor.UserID,
		UserName: actor.Name,
		Action:   "Added note to case",
		Details:  fmt.Sprintf("Added note to case %s", caseID),
		Type:     domain.ActivityCaseUpdate,
	})

	s.metrics.ObserveMutation("add_case_note", true)
	return true
}

// UpdateCaseStatus moves a case to status, appending a status_change
// timeline event and a case_update activity. Unknown cases and unchanged
// statuses are ignored. It reports whether the status changed.
func (s *DataStore) UpdateCaseStatus(caseID string, status domain.CaseStatus, actor domain.Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(caseID)
	if i < 0 || s.cases[i].Status == status {
		s.metrics.ObserveMutation("update_case_status", false)
		return false
	}

	c := &s.cases[i]
	previous := c.Status
	c.Status = status
	c.Timeline = append(c.Timeline, domain.TimelineEvent{
		ID:          newID("timeline"),
		Title:       "Status Changed",
		Description: fmt.Sprintf("Status changed from %s to %s", previous, status),
		Timestamp:   s.now(),
		Type:        domain.TimelineStatusChange,
	})

	s.addActivityLocked(ActivityInput{
		UserID:   actor.UserID,
		UserName: actor.Name,
		Action:   "Updated case status",
		Details:  fmt.Sprintf("Updated case %s status to %s", c.LoanID, status),
		Type:     domain.ActivityCaseUpdate,
	})

	s.metrics.ObserveMutation("update_case_status", true)
	return true
}

// ============================================================
// Agent mutators
// ============================================================

// AddAgent stores a new agent under a fresh id and logs an agent_update activity
func (s *DataStore) AddAgent(input AgentInput, actor domain.Actor) domain.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent := domain.Agent{
		ID:             newID("agent"),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		AssignedCases:  input.AssignedCases,
		RecoveryRate:   input.RecoveryRate,
		TotalRecovered: input.TotalRecovered,
		Status:         input.Status,
		JoinedDate:     input.JoinedDate,
	}
	s.agents = append(s.agents, agent)

	s.addActivityLocked(ActivityInput{
		UserID:   actor.UserID,
		UserName: actor.Name,
		Action:   "Added new agent",
		Details:  fmt.Sprintf("Added agent %s", agent.Name),
		Type:     domain.ActivityAgentUpdate,
	})

	s.metrics.ObserveMutation("add_agent", true)
	return agent
}

// UpdateAgent merges fields into an agent. An agent_update activity is
// logged on every call, including when the agent does not exist or nothing
// changed. It reports whether the agent exists.
func (s *DataStore) UpdateAgent(agentID string, update AgentUpdate, actor domain.Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.agentIndex(agentID)
	if i >= 0 {
		update.apply(&s.agents[i])
	}

	s.addActivityLocked(ActivityInput{
		UserID:   actor.UserID,
		UserName: actor.Name,
		Action:   "Updated agent",
		Details:  fmt.Sprintf("Updated agent %s", agentID),
		Type:     domain.ActivityAgentUpdate,
	})

	s.metrics.ObserveMutation("update_agent", i >= 0)
	return i >= 0
}

// DeleteAgent removes an agent and logs an agent_update activity if it
// existed. Cases still referencing the agent keep their assignment.
func (s *DataStore) DeleteAgent(agentID string, actor domain.Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.agentIndex(agentID)
	if i < 0 {
		s.metrics.ObserveMutation("delete_agent", false)
		return false
	}

	removed := s.agents[i]
	agents := make([]domain.Agent, 0, len(s.agents)-1)
	agents = append(agents, s.agents[:i]...)
	agents = append(agents, s.agents[i+1:]...)
	s.agents = agents

	s.addActivityLocked(ActivityInput{
		UserID:   actor.UserID,
		UserName: actor.Name,
		Action:   "Deleted agent",
		Details:  fmt.Sprintf("Deleted agent %s", removed.Name),
		Type:     domain.ActivityAgentUpdate,
	})

	s.metrics.ObserveMutation("delete_agent", true)
	return true
}

// ============================================================
// Activity log
// ============================================================

// AddActivity stamps an entry and puts it at the front of the log,
// dropping the oldest entries beyond MaxActivities
func (s *DataStore) AddActivity(input ActivityInput) domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addActivityLocked(input)
}

func (s *DataStore) addActivityLocked(input ActivityInput) domain.Activity {
	activity := domain.Activity{
		ID:        newID("activity"),
		UserID:    input.UserID,
		UserName:  input.UserName,
		Action:    input.Action,
		Details:   input.Details,
		Timestamp: s.now(),
		Type:      input.Type,
	}

	n := len(s.activities) + 1
	if n > MaxActivities {
		n = MaxActivities
	}
	activities := make([]domain.Activity, 0, n)
	activities = append(activities, activity)
	activities = append(activities, s.activities[:n-1]...)
	s.activities = activities

	s.metrics.SetActivityLogSize(len(s.activities))
	return activity
}

// ============================================================
// Helpers
// ============================================================

func (s *DataStore) caseIndex(id string) int {
	for i := range s.cases {
		if s.cases[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DataStore) agentIndex(id string) int {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneCases(cases []domain.Case) []domain.Case {
	out := make([]domain.Case, len(cases))
	for i := range cases {
		out[i] = cases[i].Clone()
	}
	return out
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
