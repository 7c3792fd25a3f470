// Package scheduler wraps gocron for the combined runner's interval mode.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler repeatedly runs one ETL job on a fixed interval. The job runs
// sequentially; a tick that arrives while the previous run is still going
// is skipped rather than overlapped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       func()
}

// New creates a Scheduler around the given job.
func New(interval time.Duration, job func()) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		job:       job,
	}
}

// Start schedules the job and blocks, running it forever. The first run
// fires immediately.
func (s *Scheduler) Start() error {
	log.Printf("INFO: scheduling ETL every %v", s.interval)

	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		log.Println("INFO: scheduler: running ETL job")
		s.job()
		log.Println("INFO: scheduler: completed ETL job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartBlocking()
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
