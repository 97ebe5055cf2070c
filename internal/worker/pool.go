package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vytor/roster/internal/logger"
)

var (
	ErrQueueFull   = errors.New("worker: queue is full")
	ErrPoolStopped = errors.New("worker: pool is stopped")
	ErrJobPanicked = errors.New("worker: job panicked")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Discarder is implemented by jobs that must be told when the pool drops
// them without running, or when their Run panics.
type Discarder interface {
	Discard(err error)
}

// Pool runs submitted jobs on a fixed number of goroutines.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger

	mu      sync.RWMutex
	stopped bool
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i+1)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	workerLog := p.log.WithField("worker_id", id)
	workerLog.Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			workerLog.Debug("worker shutting down (context cancelled)")
			return
		case job, ok := <-p.jobs:
			if !ok {
				workerLog.Debug("worker shutting down (queue closed)")
				return
			}
			p.run(ctx, workerLog, job)
		}
	}
}

func (p *Pool) run(ctx context.Context, workerLog *logger.Logger, job Job) {
	jobLog := workerLog.WithField("job", job.Name())
	jobLog.Debug("starting job")
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			jobLog.Error("job panicked after %v: %v", time.Since(start), rec)
			if d, ok := job.(Discarder); ok {
				d.Discard(fmt.Errorf("%w: %v", ErrJobPanicked, rec))
			}
		}
	}()

	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Info("job completed in %v", time.Since(start))
}

// Stop cancels running jobs, drops queued ones and waits for workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	dropped := 0
	for job := range p.jobs {
		if d, ok := job.(Discarder); ok {
			d.Discard(ErrPoolStopped)
		}
		dropped++
	}
	p.log.Info("worker pool stopped, %d queued jobs dropped", dropped)
}

// Submit queues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		p.log.Warn("queue full, rejecting job: %s", job.Name())
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
