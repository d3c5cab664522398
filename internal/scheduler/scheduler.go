// Package scheduler runs the background jobs that keep player data and the bankroll day current.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/metrics"
)

var (
	ErrRunning   = errors.New("scheduler is running")
	ErrNoJobs    = errors.New("no jobs scheduled")
	ErrNoPlayers = errors.New("no players to refresh")
)

// CacheRefresher reloads cached player profiles
type CacheRefresher interface {
	Refresh(ctx context.Context, names []string) (int, error)
}

// DayResetter starts a new bankroll day
type DayResetter interface {
	ResetDay(at time.Time)
}

// Scheduler manages scheduled background jobs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
	now             func() time.Time
}

// NewScheduler creates a new scheduler. Jobs run in UTC.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      time.Minute,
		gracefulTimeout: 30 * time.Second,
		now:             time.Now,
	}
}

// ScheduleCacheRefresh refreshes the watched players' profiles on a cron schedule
func (s *Scheduler) ScheduleCacheRefresh(cronExpression string, refresher CacheRefresher, players []string) (cron.EntryID, error) {
	if len(players) == 0 {
		return 0, ErrNoPlayers
	}
	names := append([]string(nil), players...)
	return s.add(cronExpression, "cache_refresh", func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.RefreshNow(ctx, refresher, names)
	})
}

// RefreshNow runs one cache refresh and records the outcome
func (s *Scheduler) RefreshNow(ctx context.Context, refresher CacheRefresher, players []string) (int, error) {
	refreshed, err := refresher.Refresh(ctx, players)
	fields := logrus.Fields{
		"job":       "cache_refresh",
		"players":   len(players),
		"refreshed": refreshed,
	}
	switch {
	case err == nil:
		metrics.RecordCacheRefresh("success")
		s.logger.WithFields(fields).Info("Player cache refreshed")
	case refreshed > 0:
		metrics.RecordCacheRefresh("partial")
		s.logger.WithFields(fields).WithError(err).Warn("Player cache partially refreshed")
	default:
		metrics.RecordCacheRefresh("failure")
		s.logger.WithFields(fields).WithError(err).Error("Player cache refresh failed")
	}
	return refreshed, err
}

// ScheduleDailyReset zeroes the tracked daily P&L on a cron schedule
func (s *Scheduler) ScheduleDailyReset(cronExpression string, resetter DayResetter) (cron.EntryID, error) {
	return s.add(cronExpression, "daily_reset", func() {
		at := s.now().UTC()
		resetter.ResetDay(at)
		s.logger.WithFields(logrus.Fields{"job": "daily_reset", "at": at}).Info("Bankroll day reset")
	})
}

func (s *Scheduler) add(cronExpression, name string, job func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return 0, fmt.Errorf("cannot schedule %s: %w", name, ErrRunning)
	}

	entryID, err := s.cron.AddFunc(cronExpression, job)
	if err != nil {
		return 0, fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{"job": name, "cron": cronExpression}).Info("Scheduled job")

	return entryID, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrRunning
	}
	if len(s.jobIDs) == 0 {
		return ErrNoJobs
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs to finish, up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	done := s.cron.Stop().Done()
	s.isRunning = false

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler jobs still running after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(jobID cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job: %w", ErrRunning)
	}

	s.cron.Remove(jobID)
	for i, id := range s.jobIDs {
		if id == jobID {
			s.jobIDs = append(s.jobIDs[:i], s.jobIDs[i+1:]...)
			break
		}
	}
	s.logger.WithField("job_id", jobID).Info("Removed job")

	return nil
}
