package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

// User represents a dashboard operator from the account directory
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  Role   `json:"role" yaml:"role"`
	Token string `json:"token,omitempty" yaml:"-"`
}

// Actor identifies who performed a mutation, for the activity log
type Actor struct {
	UserID string
	Name   string
}

// SystemActor is used for mutations not triggered by a signed-in user
var SystemActor = Actor{UserID: "system", Name: "System"}

// ActorFromUser builds an Actor from a directory user
func ActorFromUser(u *User) Actor {
	if u == nil {
		return SystemActor
	}
	return Actor{UserID: u.ID, Name: u.Name}
}

// AgentStatus is the employment status of a collection agent
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

// Valid reports whether s is a known agent status
func (s AgentStatus) Valid() bool {
	return s == AgentActive || s == AgentInactive
}

// Agent represents a collection staff member.
// Cases reference agents by ID without referential integrity: deleting an
// agent leaves AssignedAgentID on existing cases untouched.
type Agent struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AssignedCases  int             `json:"assigned_cases"`
	RecoveryRate   float64         `json:"recovery_rate"`
	TotalRecovered decimal.Decimal `json:"total_recovered"`
	Status         AgentStatus     `json:"status"`
	JoinedDate     time.Time       `json:"joined_date"`
}

// CaseStatus is the collection stage of a case
type CaseStatus string

const (
	CaseAssigned CaseStatus = "assigned"
	CaseFollowUp CaseStatus = "follow-up"
	CaseResolved CaseStatus = "resolved"
	CaseClosed   CaseStatus = "closed"
	CaseOverdue  CaseStatus = "overdue"
)

// CaseStatuses lists every case status in display order
var CaseStatuses = []CaseStatus{CaseAssigned, CaseFollowUp, CaseResolved, CaseClosed, CaseOverdue}

// Valid reports whether s is a known case status
func (s CaseStatus) Valid() bool {
	for _, v := range CaseStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsSettled returns true for resolved or closed cases
func (s CaseStatus) IsSettled() bool {
	return s == CaseResolved || s == CaseClosed
}

// CasePriority is the urgency of a case
type CasePriority string

const (
	PriorityLow      CasePriority = "low"
	PriorityMedium   CasePriority = "medium"
	PriorityHigh     CasePriority = "high"
	PriorityCritical CasePriority = "critical"
)

// CasePriorities lists every priority from lowest to highest
var CasePriorities = []CasePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid reports whether p is a known priority
func (p CasePriority) Valid() bool {
	return p.Rank() >= 0
}

// Rank returns the position of p in CasePriorities, or -1
func (p CasePriority) Rank() int {
	for i, v := range CasePriorities {
		if p == v {
			return i
		}
	}
	return -1
}

// Case represents a debt-collection record tied to one loan and one customer.
// OutstandingAmount <= PrincipalAmount is expected but not enforced.
type Case struct {
	ID                string          `json:"id"`
	LoanID            string          `json:"loan_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	CustomerEmail     string          `json:"customer_email"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	OverdueAmount     decimal.Decimal `json:"overdue_amount"`
	DueDate           time.Time       `json:"due_date"`
	Status            CaseStatus      `json:"status"`
	Priority          CasePriority    `json:"priority"`
	AssignedAgent     string          `json:"assigned_agent"`
	AssignedAgentID   string          `json:"assigned_agent_id"`
	LastContactDate   time.Time       `json:"last_contact_date"`
	NextFollowUpDate  time.Time       `json:"next_follow_up_date"`
	CreatedAt         time.Time       `json:"created_at"`
	Notes             []CaseNote      `json:"notes"`
	PaymentHistory    []Payment       `json:"payment_history"`
	Timeline          []TimelineEvent `json:"timeline"`
}

// Clone returns a copy of the case that shares no slices with c
func (c Case) Clone() Case {
	out := c
	out.Notes = append(make([]CaseNote, 0, len(c.Notes)), c.Notes...)
	out.PaymentHistory = append(make([]Payment, 0, len(c.PaymentHistory)), c.PaymentHistory...)
	out.Timeline = append(make([]TimelineEvent, 0, len(c.Timeline)), c.Timeline...)
	return out
}

// CaseNote is an append-only note on a case
type CaseNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is a seeded, read-only payment record
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Method string          `json:"method"`
	Status PaymentStatus   `json:"status"`
}

// TimelineEventType classifies a per-case timeline entry
type TimelineEventType string

const (
	TimelineAssignment   TimelineEventType = "assignment"
	TimelineContact      TimelineEventType = "contact"
	TimelinePayment      TimelineEventType = "payment"
	TimelineStatusChange TimelineEventType = "status_change"
	TimelineNote         TimelineEventType = "note"
)

// TimelineEvent is an append-only per-case audit entry, oldest first
type TimelineEvent struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
	Type        TimelineEventType `json:"type"`
}

// ActivityType classifies a global activity log entry
type ActivityType string

const (
	ActivityCaseUpdate  ActivityType = "case_update"
	ActivityAgentUpdate ActivityType = "agent_update"
	ActivityLogin       ActivityType = "login"
	ActivityLogout      ActivityType = "logout"
	ActivitySystem      ActivityType = "system"
)

// Activity is a global audit-log entry, kept newest first
type Activity struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	UserName  string       `json:"user_name"`
	Action    string       `json:"action"`
	Details   string       `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
	Type      ActivityType `json:"type"`
}

// DashboardKPI holds the headline dashboard figures
type DashboardKPI struct {
	TotalCases      int             `json:"total_cases"`
	ResolvedCases   int             `json:"resolved_cases"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	AgentEfficiency float64         `json:"agent_efficiency"`
	OverduePayments int             `json:"overdue_payments"`
	RecoveryRate    float64         `json:"recovery_rate"`
}

// ChartPoint is one named value of a dashboard chart series
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
