package services

import (
	"sort"
	"strings"

	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/pkg/pagination"
)

// CasePageSize is the fixed number of cases per page
const CasePageSize = 20

// FilterAll disables a status or priority filter
const FilterAll = "all"

// CaseFilter narrows a case list. Empty fields and "all" match everything.
type CaseFilter struct {
	Query    string
	Status   string
	Priority string
}

// SortField names a sortable case column
type SortField string

const (
	SortLoanID            SortField = "loanId"
	SortCustomerName      SortField = "customerName"
	SortCustomerEmail     SortField = "customerEmail"
	SortOutstandingAmount SortField = "outstandingAmount"
	SortPrincipalAmount   SortField = "principalAmount"
	SortOverdueAmount     SortField = "overdueAmount"
	SortDueDate           SortField = "dueDate"
	SortCreatedAt         SortField = "createdAt"
	SortLastContactDate   SortField = "lastContactDate"
	SortNextFollowUpDate  SortField = "nextFollowUpDate"
	SortStatus            SortField = "status"
	SortPriority          SortField = "priority"
	SortAssignedAgent     SortField = "assignedAgent"
)

// SortDirection is ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// caseComparators returns <0, 0, >0 like strings.Compare
var caseComparators = map[SortField]func(a, b *domain.Case) int{
	SortLoanID:            func(a, b *domain.Case) int { return strings.Compare(a.LoanID, b.LoanID) },
	SortCustomerName:      func(a, b *domain.Case) int { return strings.Compare(a.CustomerName, b.CustomerName) },
	SortCustomerEmail:     func(a, b *domain.Case) int { return strings.Compare(a.CustomerEmail, b.CustomerEmail) },
	SortOutstandingAmount: func(a, b *domain.Case) int { return a.OutstandingAmount.Cmp(b.OutstandingAmount) },
	SortPrincipalAmount:   func(a, b *domain.Case) int { return a.PrincipalAmount.Cmp(b.PrincipalAmount) },
	SortOverdueAmount:     func(a, b *domain.Case) int { return a.OverdueAmount.Cmp(b.OverdueAmount) },
	SortDueDate:           func(a, b *domain.Case) int { return a.DueDate.Compare(b.DueDate) },
	SortCreatedAt:         func(a, b *domain.Case) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortLastContactDate:   func(a, b *domain.Case) int { return a.LastContactDate.Compare(b.LastContactDate) },
	SortNextFollowUpDate:  func(a, b *domain.Case) int { return a.NextFollowUpDate.Compare(b.NextFollowUpDate) },
	SortStatus:            func(a, b *domain.Case) int { return strings.Compare(string(a.Status), string(b.Status)) },
	SortPriority:          func(a, b *domain.Case) int { return strings.Compare(string(a.Priority), string(b.Priority)) },
	SortAssignedAgent:     func(a, b *domain.Case) int { return strings.Compare(a.AssignedAgent, b.AssignedAgent) },
}

// Valid reports whether f is a sortable field
func (f SortField) Valid() bool {
	_, ok := caseComparators[f]
	return ok
}

// CaseSort selects the sort column and direction
type CaseSort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultCaseSort lists the newest cases first
var DefaultCaseSort = CaseSort{Field: SortCreatedAt, Direction: SortDesc}

// Toggle returns the sort after a click on field: the same field flips
// direction, a new field starts ascending
func (s CaseSort) Toggle(field SortField) CaseSort {
	if s.Field == field {
		if s.Direction == SortAsc {
			return CaseSort{Field: field, Direction: SortDesc}
		}
		return CaseSort{Field: field, Direction: SortAsc}
	}
	return CaseSort{Field: field, Direction: SortAsc}
}

// CaseQuery combines filter, sort and a 1-based page
type CaseQuery struct {
	Filter CaseFilter
	Sort   CaseSort
	Page   int
}

// FilterCases returns the cases matching every part of filter, in input order
func FilterCases(cases []domain.Case, filter CaseFilter) []domain.Case {
	query := strings.ToLower(filter.Query)
	out := make([]domain.Case, 0, len(cases))

	for _, c := range cases {
		if query != "" &&
			!strings.Contains(strings.ToLower(c.CustomerName), query) &&
			!strings.Contains(strings.ToLower(c.LoanID), query) &&
			!strings.Contains(strings.ToLower(c.CustomerEmail), query) {
			continue
		}
		if !matchesOption(filter.Status, string(c.Status)) {
			continue
		}
		if !matchesOption(filter.Priority, string(c.Priority)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesOption(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// SortCases returns a sorted copy of cases. Equal keys are ordered by case
// id, so a descending sort is the exact reverse of the ascending one.
// An unknown field falls back to DefaultCaseSort.
func SortCases(cases []domain.Case, s CaseSort) []domain.Case {
	cmp, ok := caseComparators[s.Field]
	if !ok {
		s = DefaultCaseSort
		cmp = caseComparators[s.Field]
	}

	out := append([]domain.Case{}, cases...)
	sort.SliceStable(out, func(i, j int) bool {
		r := cmp(&out[i], &out[j])
		if r == 0 {
			r = strings.Compare(out[i].ID, out[j].ID)
		}
		if s.Direction == SortDesc {
			return r > 0
		}
		return r < 0
	})
	return out
}

// QueryCases filters, sorts and pages cases. The page is not clamped; a
// page past the end returns no cases with the meta still describing the
// full result.
func QueryCases(cases []domain.Case, q CaseQuery) ([]domain.Case, *pagination.Meta) {
	filtered := FilterCases(cases, q.Filter)
	sorted := SortCases(filtered, q.Sort)

	params := pagination.NewParams(q.Page, CasePageSize)
	return pagination.Slice(sorted, params), pagination.GetMeta(params, len(sorted))
}
