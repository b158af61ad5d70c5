// Package pool runs exchange calls off the caller's goroutine with a bound on
// how many are in flight.
package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"picostocks/pkg/core"
)

// Task is one blocking exchange call.
type Task func(ctx context.Context) (*core.Result, error)

// Pool bounds concurrent Tasks with a semaphore of fixed size.
type Pool struct {
	sem     chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	logger  zerolog.Logger
	metrics *Metrics
}

// Metrics tracks statistics about pool usage.
type Metrics struct {
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	canceled  atomic.Int64
	running   atomic.Int32
}

// New creates a Pool running at most size tasks at once. size < 1 is treated as 1.
func New(size int, logger zerolog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:     make(chan struct{}, size),
		logger:  logger,
		metrics: &Metrics{},
	}
}

// Size returns the maximum number of tasks run concurrently.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Submit schedules task and returns a channel that receives exactly one
// Outcome and is then closed. A task still waiting for a slot when ctx ends
// reports ctx.Err() without running.
func (p *Pool) Submit(ctx context.Context, task Task) <-chan core.Outcome {
	out := make(chan core.Outcome, 1)

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		out <- core.Outcome{Err: core.ErrClientClosed}
		close(out)
		return out
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	p.metrics.submitted.Add(1)

	go func() {
		defer p.wg.Done()
		defer close(out)

		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			p.metrics.canceled.Add(1)
			out <- core.Outcome{Err: ctx.Err()}
			return
		}

		p.metrics.running.Add(1)
		result, err := task(ctx)
		p.metrics.running.Add(-1)
		<-p.sem

		if err != nil {
			p.metrics.failed.Add(1)
			p.logger.Debug().Err(err).Msg("pooled call failed")
		} else {
			p.metrics.completed.Add(1)
		}
		out <- core.Outcome{Result: result, Err: err}
	}()

	return out
}

// Close stops accepting tasks and waits for submitted ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

// Metrics returns a snapshot of the current pool statistics.
func (p *Pool) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		Submitted: p.metrics.submitted.Load(),
		Completed: p.metrics.completed.Load(),
		Failed:    p.metrics.failed.Load(),
		Canceled:  p.metrics.canceled.Load(),
		Running:   p.metrics.running.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of pool statistics.
type MetricsSnapshot struct {
	Submitted int64
	Completed int64
	Failed    int64
	Canceled  int64
	Running   int32
}
