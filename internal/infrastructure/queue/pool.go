package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/metrics"
)

const channelBuffer = 256

// ErrPoolStopped is returned by Run once the pool's context has been cancelled.
var ErrPoolStopped = errors.New("worker pool stopped")

type job struct {
	fn   func()
	err  error
	done chan struct{}
}

// Pool runs CPU-bound jobs (password hashing) on a fixed set of workers so
// that a burst of logins cannot occupy every request goroutine at once.
type Pool struct {
	jobs    chan *job
	workers int
	stopped chan struct{}
	log     zerolog.Logger
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewPool(numWorkers int, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{
		jobs:    make(chan *job, channelBuffer),
		workers: numWorkers,
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.stopped)
	}()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }

// Run queues fn and blocks until a worker has executed it, ctx is done or the
// pool stops. fn must not be relied upon to have run when Run returns an error.
func (p *Pool) Run(ctx context.Context, fn func()) error {
	j := &job{fn: fn, done: make(chan struct{})}

	metrics.HashPoolQueueDepth.Inc()
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		metrics.HashPoolQueueDepth.Dec()
		return ctx.Err()
	case <-p.stopped:
		metrics.HashPoolQueueDepth.Dec()
		return ErrPoolStopped
	}

	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashPoolQueueDepth.Dec()
			p.execute(id, j)
		}
	}
}

func (p *Pool) execute(id int, j *job) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("worker %d: job panicked: %v", id, r)
			p.log.Error().Int("worker_id", id).Interface("panic", r).Msg("hash job panicked")
		}
	}()
	j.fn()
}
