package services

import (
	"fmt"
	"testing"
	"time"

	"esolve-collections/internal/core/domain"

	"github.com/shopspring/decimal"
)

func makeCases(n int) []domain.Case {
	statuses := domain.CaseStatuses
	priorities := domain.CasePriorities
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := make([]domain.Case, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, domain.Case{
			ID:                fmt.Sprintf("case-%d", i+1),
			LoanID:            fmt.Sprintf("LN%d", 1000+i),
			CustomerName:      fmt.Sprintf("Customer %d", i%7),
			CustomerEmail:     fmt.Sprintf("customer%d@example.com", i),
			OutstandingAmount: decimal.NewFromInt(int64((i * 37) % 11 * 1000)),
			PrincipalAmount:   decimal.NewFromInt(20000),
			Status:            statuses[i%len(statuses)],
			Priority:          priorities[i%len(priorities)],
			CreatedAt:         base.Add(time.Duration(i%5) * 24 * time.Hour),
		})
	}
	return cases
}

func ids(cases []domain.Case) []string {
	out := make([]string, len(cases))
	for i, c := range cases {
		out[i] = c.ID
	}
	return out
}

func TestFilterCases(t *testing.T) {
	cases := makeCases(30)

	tests := []struct {
		name   string
		filter CaseFilter
		check  func(domain.Case) bool
	}{
		{"empty filter", CaseFilter{}, func(domain.Case) bool { return true }},
		{"all options", CaseFilter{Status: "all", Priority: "all"}, func(domain.Case) bool { return true }},
		{"status", CaseFilter{Status: "overdue"}, func(c domain.Case) bool { return c.Status == domain.CaseOverdue }},
		{"priority", CaseFilter{Priority: "critical"}, func(c domain.Case) bool { return c.Priority == domain.PriorityCritical }},
		{"single space matches names with a space", CaseFilter{Query: " "}, func(domain.Case) bool { return true }},
		{"whitespace is not trimmed", CaseFilter{Query: "  "}, func(domain.Case) bool { return false }},
		{"case-insensitive name", CaseFilter{Query: "CUSTOMER 3"}, func(c domain.Case) bool { return c.CustomerName == "Customer 3" }},
		{
			"combined",
			CaseFilter{Query: "customer 1", Status: "assigned"},
			func(c domain.Case) bool { return c.CustomerName == "Customer 1" && c.Status == domain.CaseAssigned },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCases(cases, tt.filter)

			want := 0
			for _, c := range cases {
				if tt.check(c) {
					want++
				}
			}
			if len(got) != want {
				t.Fatalf("Got %d cases, want %d", len(got), want)
			}
			for _, c := range got {
				if !tt.check(c) {
					t.Errorf("Case %s should not match", c.ID)
				}
			}
		})
	}
}

func TestFilterCases_ByLoanID(t *testing.T) {
	cases := makeCases(30)

	got := FilterCases(cases, CaseFilter{Query: "ln1017"})
	if len(got) != 1 || got[0].LoanID != "LN1017" {
		t.Errorf("Expected exactly LN1017, got %v", ids(got))
	}
}

func TestSortCases_DoubleReversal(t *testing.T) {
	cases := makeCases(45)

	asc := SortCases(cases, CaseSort{Field: SortOutstandingAmount, Direction: SortAsc})
	desc := SortCases(cases, CaseSort{Field: SortOutstandingAmount, Direction: SortDesc})

	if len(asc) != len(desc) {
		t.Fatal("Length mismatch")
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("Descending is not the reverse of ascending at %d", i)
		}
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1].OutstandingAmount.GreaterThan(asc[i].OutstandingAmount) {
			t.Fatalf("Ascending order broken at %d", i)
		}
	}
}

func TestSortCases_TimestampsAsInstants(t *testing.T) {
	utc := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	// 09:00 UTC expressed in a +05:00 zone formats as a later-looking string
	offset := time.Date(2024, time.March, 1, 14, 0, 0, 0, time.FixedZone("PKT", 5*60*60))

	cases := []domain.Case{
		{ID: "a", CreatedAt: utc},
		{ID: "b", CreatedAt: offset},
	}

	got := SortCases(cases, CaseSort{Field: SortCreatedAt, Direction: SortAsc})
	if got[0].ID != "b" {
		t.Errorf("Expected the earlier instant first, got %v", ids(got))
	}
}

func TestSortCases_DoesNotMutateInput(t *testing.T) {
	cases := makeCases(10)
	before := ids(cases)

	SortCases(cases, CaseSort{Field: SortLoanID, Direction: SortDesc})

	for i, id := range ids(cases) {
		if id != before[i] {
			t.Fatal("Input slice was reordered")
		}
	}
}

func TestSortCases_UnknownFieldUsesDefault(t *testing.T) {
	cases := makeCases(12)

	got := SortCases(cases, CaseSort{Field: "bogus", Direction: SortAsc})
	want := SortCases(cases, DefaultCaseSort)

	for i := range got {
		if got[i].ID != want[i].ID {
			t.Fatalf("Unknown field should sort like the default at %d", i)
		}
	}
}

func TestCaseSort_Toggle(t *testing.T) {
	s := CaseSort{Field: SortLoanID, Direction: SortAsc}

	s = s.Toggle(SortLoanID)
	if s.Direction != SortDesc {
		t.Errorf("Same field should flip to desc, got %s", s.Direction)
	}
	s = s.Toggle(SortLoanID)
	if s.Direction != SortAsc {
		t.Errorf("Same field should flip back to asc, got %s", s.Direction)
	}

	s = CaseSort{Field: SortLoanID, Direction: SortDesc}.Toggle(SortDueDate)
	if s.Field != SortDueDate || s.Direction != SortAsc {
		t.Errorf("New field should reset to asc, got %+v", s)
	}
}

func TestQueryCases_Pagination(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 45, 60} {
		t.Run(fmt.Sprintf("%d cases", n), func(t *testing.T) {
			cases := makeCases(n)
			q := CaseQuery{Sort: CaseSort{Field: SortLoanID, Direction: SortAsc}, Page: 1}

			_, meta := QueryCases(cases, q)
			wantPages := (n + CasePageSize - 1) / CasePageSize
			if meta.TotalPages != wantPages {
				t.Fatalf("TotalPages = %d, want %d", meta.TotalPages, wantPages)
			}

			var all []domain.Case
			for page := 1; page <= meta.TotalPages; page++ {
				q.Page = page
				items, _ := QueryCases(cases, q)
				if len(items) > CasePageSize {
					t.Fatalf("Page %d has %d items", page, len(items))
				}
				all = append(all, items...)
			}

			full := SortCases(cases, q.Sort)
			if len(all) != len(full) {
				t.Fatalf("Concatenated pages have %d cases, want %d", len(all), len(full))
			}
			seen := make(map[string]bool)
			for i := range all {
				if all[i].ID != full[i].ID {
					t.Fatalf("Page order differs at %d", i)
				}
				if seen[all[i].ID] {
					t.Fatalf("Duplicate case %s", all[i].ID)
				}
				seen[all[i].ID] = true
			}
		})
	}
}

func TestQueryCases_PageOutOfRange(t *testing.T) {
	cases := makeCases(25)

	items, meta := QueryCases(cases, CaseQuery{Sort: DefaultCaseSort, Page: 5})
	if len(items) != 0 {
		t.Errorf("Expected no items past the end, got %d", len(items))
	}
	if meta.Total != 25 || meta.TotalPages != 2 {
		t.Errorf("Unexpected meta: %+v", meta)
	}
}
