package services

import (
	"context"
	"fmt"
	"time"

	"esolve-collections/internal/core/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single background job run
const jobTimeout = 30 * time.Second

// CronSchedules holds the cron expressions of the background jobs.
// An empty expression disables that job.
type CronSchedules struct {
	DailySummary string
	SessionCheck string
}

// CronService runs the periodic background jobs
type CronService struct {
	cron      *cron.Cron
	store     *DataStore
	dashboard *DashboardService
	session   *SessionService
}

// NewCronService registers the jobs without starting them
func NewCronService(
	schedules CronSchedules,
	store *DataStore,
	dashboard *DashboardService,
	session *SessionService,
) (*CronService, error) {
	s := &CronService{
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		store:     store,
		dashboard: dashboard,
		session:   session,
	}

	if schedules.DailySummary != "" {
		if _, err := s.cron.AddFunc(schedules.DailySummary, s.RecordDailySummary); err != nil {
			return nil, fmt.Errorf("invalid daily summary schedule %q: %w", schedules.DailySummary, err)
		}
	}
	if schedules.SessionCheck != "" {
		if _, err := s.cron.AddFunc(schedules.SessionCheck, s.CheckSession); err != nil {
			return nil, fmt.Errorf("invalid session check schedule %q: %w", schedules.SessionCheck, err)
		}
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	zap.L().Info("Cron service started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	zap.L().Info("Cron service stopped")
}

// RecordDailySummary appends the portfolio KPIs to the activity log
func (s *CronService) RecordDailySummary() {
	summary := s.dashboard.Summary()
	s.store.AddActivity(ActivityInput{
		UserID:   domain.SystemActor.UserID,
		UserName: domain.SystemActor.Name,
		Action:   "Daily Summary",
		Details:  summary,
		Type:     domain.ActivitySystem,
	})
	zap.L().Info("Daily summary recorded", zap.String("summary", summary))
}

// CheckSession signs the session out once its credential has expired
func (s *CronService) CheckSession() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.session.Revalidate(ctx)
}
