package scheduler

import (
	"fmt"
	"sync"
	"time"

	"pin_share_backend/config"
	"pin_share_backend/logger"
	"pin_share_backend/repository"
)

// validateHourMinute clamps an invalid schedule time to midnight.
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("invalid hour value", "hour", hour)
		hour = 0
	}
	if minute < 0 || minute > 59 {
		logger.Warn("invalid minute value", "minute", minute)
		minute = 0
	}
	return hour, minute
}

// getNextTimePoint computes the next daily occurrence of hour:minute.
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

type TaskType int

const (
	TaskInterestDecay TaskType = iota
)

type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

type Scheduler struct {
	cfg   *config.Config
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start launches the scheduler loop. With no decay configured there is
// nothing to schedule and the loop is not started.
func Start(cfg *config.Config) {
	if cfg.Decay.Factor <= 0 || cfg.Decay.Factor >= 1 {
		logger.Info("interest decay disabled", "factor", cfg.Decay.Factor)
		return
	}

	scheduler := NewScheduler(cfg)
	scheduler.initTasks()
	go scheduler.run()

	logger.Info("scheduler started", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
}

func (s *Scheduler) initTasks() {
	now := time.Now()

	hour, minute := validateHourMinute(s.cfg.Scheduler.DecayHour, s.cfg.Scheduler.DecayMinute)
	nextRun := getNextTimePoint(now, hour, minute)

	s.tasks[TaskInterestDecay] = &TaskStatus{
		LastRun:     nextRun.Add(-24 * time.Hour),
		NextRun:     nextRun,
		Description: fmt.Sprintf("interest decay (%02d:%02d, factor %.2f)", hour, minute, s.cfg.Decay.Factor),
	}

	logger.Info("scheduled tasks initialized", "task_count", len(s.tasks))
}

func (s *Scheduler) run() {
	interval := s.cfg.Scheduler.CheckIntervalSec
	if interval <= 0 {
		interval = 60
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning || status.NextRun.IsZero() {
			continue
		}
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		switch taskType {
		case TaskInterestDecay:
			hour, minute := validateHourMinute(s.cfg.Scheduler.DecayHour, s.cfg.Scheduler.DecayMinute)
			status.NextRun = getNextTimePoint(now, hour, minute)
		}

		logger.Info("task finished", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskInterestDecay:
		// Decay runs entirely apart from the increment path: scores only
		// ever grow from interactions, this batch is the one place they
		// shrink.
		affected, err := repository.DecayInterests(s.cfg.Decay.Factor, s.cfg.Decay.Floor)
		if err != nil {
			logger.Error("interest decay failed", "error", err)
			return
		}
		logger.Info("interest decay applied", "factor", s.cfg.Decay.Factor, "floor", s.cfg.Decay.Floor, "rows", affected)
	}
}
