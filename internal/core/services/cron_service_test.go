package services

import (
	"strings"
	"testing"
	"time"

	"esolve-collections/internal/core/domain"
)

func TestNewCronService_InvalidSchedule(t *testing.T) {
	store := newSeededStore(t)
	dash := NewDashboardService(store, nil)

	if _, err := NewCronService(CronSchedules{DailySummary: "not a schedule"}, store, dash, nil); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

func TestCronService_Schedules(t *testing.T) {
	store := newSeededStore(t)
	dash := NewDashboardService(store, nil)

	svc, err := NewCronService(CronSchedules{DailySummary: "0 18 * * *", SessionCheck: "@every 1m"}, store, dash, nil)
	if err != nil {
		t.Fatalf("NewCronService failed: %v", err)
	}
	if got := len(svc.cron.Entries()); got != 2 {
		t.Errorf("Entries = %d, want 2", got)
	}

	disabled, err := NewCronService(CronSchedules{}, store, dash, nil)
	if err != nil {
		t.Fatalf("NewCronService failed: %v", err)
	}
	if got := len(disabled.cron.Entries()); got != 0 {
		t.Errorf("Entries = %d, want 0", got)
	}

	svc.Start()
	svc.Stop()
}

func TestCronService_RecordDailySummary(t *testing.T) {
	store := newSeededStore(t)
	dash := NewDashboardService(store, func() time.Time { return fixedNow })

	svc, err := NewCronService(CronSchedules{}, store, dash, nil)
	if err != nil {
		t.Fatalf("NewCronService failed: %v", err)
	}

	svc.RecordDailySummary()

	act := store.Activities()[0]
	if act.Type != domain.ActivitySystem || act.Action != "Daily Summary" {
		t.Errorf("Unexpected activity: %+v", act)
	}
	if !strings.Contains(act.Details, "2 cases") {
		t.Errorf("Details = %q", act.Details)
	}
}
