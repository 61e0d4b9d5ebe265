// Package worker provides a generic worker pool. The game controller uses
// a single-worker pool to run searches in the background; batch analysis
// uses several workers, one board per job.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Job is one unit of work.
type Job[In any] struct {
	Value In
	Index int // Submission index for tracking
}

// Result is the outcome of one job.
type Result[Out any] struct {
	Value Out
	Index int
	Err   error
}

// ProcessFunc handles a job. ctx is cancelled when the pool is stopped.
type ProcessFunc[In, Out any] func(ctx context.Context, job Job[In]) (Out, error)

// Pool runs jobs on a fixed set of goroutines.
type Pool[In, Out any] struct {
	numWorkers  int
	bufferSize  int
	workChan    chan Job[In]
	resultChan  chan Result[Out]
	processFunc ProcessFunc[In, Out]
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

type settings struct {
	numWorkers int
	bufferSize int
}

// Option configures a Pool.
type Option func(*settings)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(s *settings) {
		if size >= 1 {
			s.bufferSize = size
		}
	}
}

// NewPool creates a pool. processFunc is required; by default the pool
// has 1 worker and a buffer of 10.
func NewPool[In, Out any](processFunc ProcessFunc[In, Out], opts ...Option) *Pool[In, Out] {
	s := settings{numWorkers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&s)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool[In, Out]{
		numWorkers:  s.numWorkers,
		bufferSize:  s.bufferSize,
		workChan:    make(chan Job[In], s.bufferSize),
		resultChan:  make(chan Result[Out], s.bufferSize),
		processFunc: processFunc,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the worker goroutines.
func (p *Pool[In, Out]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes jobs from the work channel until it is closed.
func (p *Pool[In, Out]) worker() {
	defer p.wg.Done()

	for job := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		out, err := p.processFunc(p.ctx, job)
		p.resultChan <- Result[Out]{Value: out, Index: job.Index, Err: err}
	}
}

// Submit queues a job. This may block if the work channel buffer is full.
func (p *Pool[In, Out]) Submit(job Job[In]) {
	p.workChan <- job
}

// TrySubmit queues a job without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool[In, Out]) TrySubmit(job Job[In]) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- job:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new jobs and cancels the context
// seen by jobs in flight. Queued jobs are drained but not processed.
func (p *Pool[In, Out]) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
	p.cancel()
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool[In, Out]) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish, then
// closes the result channel. Results must be drained concurrently or the
// workers can block. Close is idempotent.
func (p *Pool[In, Out]) Close() {
	p.closeOnce.Do(func() {
		close(p.workChan)
		p.wg.Wait()
		close(p.resultChan)
		p.cancel()
	})
}

// Results returns the result channel for reading processed results.
func (p *Pool[In, Out]) Results() <-chan Result[Out] {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool[In, Out]) NumWorkers() int {
	return p.numWorkers
}
