package handlers

import (
	"testing"

	"esolve-collections/internal/core/services"
)

func TestParseCaseSort(t *testing.T) {
	tests := []struct {
		field, order string
		want         services.CaseSort
		wantErr      bool
	}{
		{"", "", services.DefaultCaseSort, false},
		{"loanId", "", services.CaseSort{Field: services.SortLoanID, Direction: services.SortAsc}, false},
		{"dueDate", "DESC", services.CaseSort{Field: services.SortDueDate, Direction: services.SortDesc}, false},
		{"", "asc", services.CaseSort{Field: services.SortCreatedAt, Direction: services.SortAsc}, false},
		{"balance", "", services.CaseSort{}, true},
		{"loanId", "up", services.CaseSort{}, true},
	}

	for _, tt := range tests {
		got, err := parseCaseSort(tt.field, tt.order)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseCaseSort(%q, %q) expected error", tt.field, tt.order)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCaseSort(%q, %q) unexpected error: %v", tt.field, tt.order, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCaseSort(%q, %q) = %+v, want %+v", tt.field, tt.order, got, tt.want)
		}
	}
}
