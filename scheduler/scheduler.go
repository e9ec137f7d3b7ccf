// Package scheduler implements background job scheduling
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"
	"skycast.app/config"
	"skycast.app/repository"
)

// Scheduler manages periodic tasks for the application
type Scheduler struct {
	db        *gorm.DB
	config    *config.Config
	resetRepo *repository.PasswordResetRepository
	stopCh    chan struct{}
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(db *gorm.DB, config *config.Config) *Scheduler {
	return &Scheduler{
		db:        db,
		config:    config,
		resetRepo: repository.NewPasswordResetRepository(db),
		stopCh:    make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	interval := time.Duration(s.config.Scheduler.ResetCleanupInterval) * time.Minute
	go s.scheduleInterval(interval, s.cleanupExpiredResets)
}

// Stop halts all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) cleanupExpiredResets() {
	if err := s.resetRepo.DeleteExpired(); err != nil {
		log.Printf("Error cleaning up expired password reset codes: %v\n", err)
	}
}
