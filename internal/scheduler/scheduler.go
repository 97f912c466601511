package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops expired notifications.
type Pruner interface {
	PruneExpired(now time.Time) int
}

// Refresher re-runs the dashboard's current search.
type Refresher interface {
	Refresh() (uint64, error)
}

// Scheduler runs the periodic housekeeping jobs.
type Scheduler struct {
	scheduler       *gocron.Scheduler
	pruner          Pruner
	pruneInterval   time.Duration
	refresher       Refresher
	refreshInterval time.Duration
}

// New creates a new Scheduler. A zero interval disables the matching job.
func New(pruner Pruner, pruneInterval time.Duration, refresher Refresher, refreshInterval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:       s,
		pruner:          pruner,
		pruneInterval:   pruneInterval,
		refresher:       refresher,
		refreshInterval: refreshInterval,
	}
}

// Start schedules the enabled jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	jobs := 0

	if s.pruner != nil && s.pruneInterval > 0 {
		_, err := s.scheduler.Every(s.pruneInterval).SingletonMode().Do(s.prune)
		if err != nil {
			return err
		}
		jobs++
	}

	if s.refresher != nil && s.refreshInterval > 0 {
		// The initial search is issued at startup; wait a full interval.
		_, err := s.scheduler.Every(s.refreshInterval).WaitForSchedule().SingletonMode().Do(s.refresh)
		if err != nil {
			return err
		}
		jobs++
	}

	if jobs == 0 {
		log.Println("scheduler: no jobs enabled; nothing to schedule")
		return nil
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) prune() {
	if n := s.pruner.PruneExpired(time.Now()); n > 0 {
		log.Printf("scheduler: pruned %d expired notifications", n)
	}
}

func (s *Scheduler) refresh() {
	gen, err := s.refresher.Refresh()
	if err != nil {
		log.Printf("scheduler: dashboard refresh failed: %v", err)
		return
	}
	if gen > 0 {
		log.Printf("scheduler: dashboard refresh started (search %d)", gen)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
