// Package cycle runs refresh cycles: a batch of independent price jobs
// executed under a concurrency policy, with at most one cycle in flight.
package cycle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Mode selects how the jobs of a cycle are executed.
type Mode string

const (
	ModeParallel   Mode = "parallel"
	ModeSequential Mode = "sequential"
)

// ParseMode parses a configured mode. An empty string selects ModeParallel.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeParallel:
		return ModeParallel, nil
	case ModeSequential:
		return ModeSequential, nil
	default:
		return "", fmt.Errorf("unknown refresh mode %q", s)
	}
}

// Policy は1サイクル内のジョブ実行方法です。
// MaxParallel が 0 以下の場合、並列モードでは同時実行数を制限しません。
type Policy struct {
	Mode        Mode
	MaxParallel int
}

// Outcome is the result of one job.
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
	Skipped
)

// Job fetches and applies one price. It must not panic and reports its own outcome.
type Job func(ctx context.Context) Outcome

// Summary aggregates the outcomes of one cycle.
type Summary struct {
	Succeeded  int
	Failed     int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Status は利用者向けの集計メッセージを返します。
func (s Summary) Status() string {
	switch {
	case s.Failed == 0:
		return "Prices refreshed."
	case s.Failed == 1:
		return "Prices refreshed with 1 issue (check API key, symbol, or rate limits)."
	default:
		return fmt.Sprintf("Prices refreshed with %d issues (check API key, symbol, or rate limits).", s.Failed)
	}
}

// Total returns the number of jobs that ran.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

func (s *Summary) add(o Outcome) {
	switch o {
	case Succeeded:
		s.Succeeded++
	case Failed:
		s.Failed++
	default:
		s.Skipped++
	}
}

// Runner executes cycles under a Policy and guarantees that at most one
// cycle per Runner is in flight.
type Runner struct {
	policy  Policy
	running atomic.Bool
}

// NewRunner creates a Runner.
func NewRunner(p Policy) *Runner {
	if p.Mode == "" {
		p.Mode = ModeParallel
	}
	return &Runner{policy: p}
}

// Policy returns the runner's policy.
func (r *Runner) Policy() Policy {
	return r.policy
}

// InFlight reports whether a cycle is currently running.
func (r *Runner) InFlight() bool {
	return r.running.Load()
}

// Run starts a cycle unless one is already in flight, in which case it returns
// immediately with started == false. prepare is called after the in-flight flag
// is set and before any job runs; it returns the jobs of this cycle.
// The flag is cleared after the last job has finished.
// Jobs receive ctx without its cancellation: a cancelled caller never aborts
// fetches already scheduled in the cycle. Per-fetch timeouts still apply.
func (r *Runner) Run(ctx context.Context, prepare func() []Job) (summary Summary, started bool) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, false
	}
	defer r.running.Store(false)
	ctx = context.WithoutCancel(ctx)

	summary.StartedAt = time.Now()
	jobs := prepare()

	switch r.policy.Mode {
	case ModeSequential:
		for _, job := range jobs {
			summary.add(job(ctx))
		}
	default:
		var (
			mu sync.Mutex
			g  errgroup.Group
		)
		if r.policy.MaxParallel > 0 {
			g.SetLimit(r.policy.MaxParallel)
		}
		for _, job := range jobs {
			g.Go(func() error {
				o := job(ctx)
				mu.Lock()
				summary.add(o)
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	summary.FinishedAt = time.Now()
	return summary, true
}
