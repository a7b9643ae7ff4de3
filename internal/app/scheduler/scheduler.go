// Package scheduler runs refresh cycles on a recurring schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cycle is one refresh loop driven by the scheduler.
type Cycle struct {
	Name string
	// InFlight reports whether a cycle is already running; firings are skipped while true.
	InFlight func() bool
	// Run executes a full cycle.
	Run func(ctx context.Context)
	// Startup, when set, runs once on Start (typically a pass over items without a price).
	Startup func(ctx context.Context)
}

// Scheduler manages the recurring refresh entries.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	cycles []Cycle
	wg     sync.WaitGroup
}

// New creates a Scheduler firing on cronSpec, or every interval when cronSpec is empty.
func New(interval time.Duration, cronSpec string) (*Scheduler, error) {
	spec := cronSpec
	if spec == "" {
		if interval < time.Second {
			return nil, fmt.Errorf("schedule interval must be at least 1s, got %s", interval)
		}
		spec = "@every " + interval.String()
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		spec: spec,
	}, nil
}

// Register adds a recurring entry for c.
func (s *Scheduler) Register(c Cycle) error {
	if c.Run == nil {
		return fmt.Errorf("register %s: Run is required", c.Name)
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.fire(c) }); err != nil {
		return fmt.Errorf("register %s: %w", c.Name, err)
	}
	s.cycles = append(s.cycles, c)
	return nil
}

// Start runs the startup pass of every cycle in the background and arms the recurring entries.
func (s *Scheduler) Start() {
	for _, c := range s.cycles {
		if c.Startup == nil {
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			log.Printf("[INFO] %s: startup pass", c.Name)
			c.Startup(context.Background())
		}()
	}
	s.cron.Start()
	log.Printf("[INFO] scheduler started (%s)", s.spec)
}

// Stop cancels pending firings and waits for running jobs and startup passes to return.
// In-flight fetches are not cancelled.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) fire(c Cycle) {
	if c.InFlight != nil && c.InFlight() {
		log.Printf("[INFO] %s: refresh already in flight, skipping", c.Name)
		return
	}
	c.Run(context.Background())
}
