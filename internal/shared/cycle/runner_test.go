package cycle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeParallel, false},
		{"parallel", ModeParallel, false},
		{" Sequential ", ModeSequential, false},
		{"batch", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummary_Status(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Prices refreshed.", Summary{Succeeded: 3}.Status())
	assert.Equal(t, "Prices refreshed with 1 issue (check API key, symbol, or rate limits).", Summary{Succeeded: 2, Failed: 1}.Status())
	assert.Equal(t, "Prices refreshed with 4 issues (check API key, symbol, or rate limits).", Summary{Failed: 4}.Status())
	assert.Equal(t, "Prices refreshed.", Summary{Skipped: 2}.Status(), "skips are not issues")
}

func outcomes(os ...Outcome) []Job {
	jobs := make([]Job, 0, len(os))
	for _, o := range os {
		jobs = append(jobs, func(context.Context) Outcome { return o })
	}
	return jobs
}

func TestRunner_Run_CountsOutcomes(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeParallel, ModeSequential} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			r := NewRunner(Policy{Mode: mode, MaxParallel: 2})
			s, started := r.Run(context.Background(), func() []Job {
				return outcomes(Succeeded, Failed, Succeeded, Skipped, Failed)
			})

			require.True(t, started)
			assert.Equal(t, 2, s.Succeeded)
			assert.Equal(t, 2, s.Failed)
			assert.Equal(t, 1, s.Skipped)
			assert.Equal(t, 5, s.Total())
			assert.False(t, s.FinishedAt.Before(s.StartedAt))
			assert.False(t, r.InFlight())
		})
	}
}

func TestRunner_Run_EmptyCycle(t *testing.T) {
	t.Parallel()

	r := NewRunner(Policy{})
	s, started := r.Run(context.Background(), func() []Job { return nil })

	assert.True(t, started)
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, "Prices refreshed.", s.Status())
	assert.Equal(t, ModeParallel, r.Policy().Mode)
}

func TestRunner_Run_SecondCallWhileInFlightIsNoop(t *testing.T) {
	t.Parallel()

	r := NewRunner(Policy{Mode: ModeParallel})
	release := make(chan struct{})
	entered := make(chan struct{})

	var firstSummary Summary
	done := make(chan struct{})
	go func() {
		defer close(done)
		firstSummary, _ = r.Run(context.Background(), func() []Job {
			return []Job{func(context.Context) Outcome {
				close(entered)
				<-release
				return Succeeded
			}}
		})
	}()

	<-entered
	assert.True(t, r.InFlight())

	prepared := false
	_, started := r.Run(context.Background(), func() []Job {
		prepared = true
		return nil
	})
	assert.False(t, started)
	assert.False(t, prepared, "prepare must not run for a rejected cycle")

	close(release)
	<-done
	assert.Equal(t, 1, firstSummary.Succeeded)
	assert.False(t, r.InFlight())

	_, started = r.Run(context.Background(), func() []Job { return nil })
	assert.True(t, started, "a new cycle may start once the previous one finished")
}

func TestRunner_Run_FlagSetBeforePrepare(t *testing.T) {
	t.Parallel()

	r := NewRunner(Policy{})
	var inFlightDuringPrepare bool
	r.Run(context.Background(), func() []Job {
		inFlightDuringPrepare = r.InFlight()
		return nil
	})
	assert.True(t, inFlightDuringPrepare)
}

func TestRunner_Run_ParallelRespectsLimit(t *testing.T) {
	t.Parallel()

	r := NewRunner(Policy{Mode: ModeParallel, MaxParallel: 2})

	var (
		current atomic.Int32
		peak    atomic.Int32
	)
	job := func(context.Context) Outcome {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		current.Add(-1)
		return Succeeded
	}

	s, _ := r.Run(context.Background(), func() []Job {
		return []Job{job, job, job, job, job, job}
	})

	assert.Equal(t, 6, s.Succeeded)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunner_Run_SequentialRunsInOrder(t *testing.T) {
	t.Parallel()

	r := NewRunner(Policy{Mode: ModeSequential})

	var (
		mu    sync.Mutex
		order []int
	)
	mk := func(i int) Job {
		return func(context.Context) Outcome {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return Succeeded
		}
	}

	r.Run(context.Background(), func() []Job { return []Job{mk(1), mk(2), mk(3)} })
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRunner_Run_CallerCancellationDoesNotReachJobs(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeParallel, ModeSequential} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			r := NewRunner(Policy{Mode: mode})
			s, started := r.Run(ctx, func() []Job {
				job := func(ctx context.Context) Outcome {
					if ctx.Err() != nil {
						return Failed
					}
					return Succeeded
				}
				return []Job{job, job}
			})

			require.True(t, started)
			assert.Equal(t, 2, s.Succeeded)
			assert.Zero(t, s.Failed)
		})
	}
}
