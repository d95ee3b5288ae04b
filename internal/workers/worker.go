package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrAlreadyRunning is returned by Start on a running worker
	ErrAlreadyRunning = errors.New("worker already running")
	// ErrStopped is returned by Start on a worker that has been stopped
	ErrStopped = errors.New("worker already stopped")
	// ErrDrainTimeout is returned by Stop when queued work could not be
	// flushed within the shutdown timeout
	ErrDrainTimeout = errors.New("timed out draining queue")
)

// Worker is a background component owned by the server lifecycle
type Worker interface {
	Name() string

	// Start begins processing in the background
	Start(ctx context.Context) error

	// Stop flushes queued work and shuts the worker down
	Stop(ctx context.Context) error

	IsRunning() bool
	Stats() WorkerStats
}

// WorkerStats counts the batches a worker has written
type WorkerStats struct {
	WorkerName       string        `json:"worker_name"`
	Batches          int64         `json:"batches"`
	FailedBatches    int64         `json:"failed_batches"`
	Written          int64         `json:"written"`
	Failed           int64         `json:"failed"`
	Dropped          int64         `json:"dropped"`
	AverageBatchTime time.Duration `json:"average_batch_time"`
	LastBatch        time.Time     `json:"last_batch,omitempty"`
	Uptime           time.Duration `json:"uptime"`
	Running          bool          `json:"running"`
}

// WorkerConfig holds configuration for workers
type WorkerConfig struct {
	WorkerName string

	// FlushInterval is the longest time an item waits in a partial batch
	FlushInterval time.Duration

	// ShutdownTimeout bounds the final drain on Stop
	ShutdownTimeout time.Duration

	// EnableRecovery turns a panic while writing a batch into a failed batch
	EnableRecovery bool
}

// DefaultWorkerConfig returns the configuration used by the server
func DefaultWorkerConfig(workerName string) WorkerConfig {
	return WorkerConfig{
		WorkerName:      workerName,
		FlushInterval:   2 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		EnableRecovery:  true,
	}
}

// BaseWorker tracks the running state and batch counters shared by
// every worker. Embed it and call the record methods from the batch loop.
type BaseWorker struct {
	config  WorkerConfig
	running atomic.Bool

	mu        sync.Mutex
	startedAt time.Time
	counters  WorkerStats
	busy      time.Duration
}

// NewBaseWorker creates a new base worker
func NewBaseWorker(config WorkerConfig) *BaseWorker {
	return &BaseWorker{config: config}
}

func (w *BaseWorker) Name() string {
	return w.config.WorkerName
}

func (w *BaseWorker) IsRunning() bool {
	return w.running.Load()
}

// Config returns the worker configuration
func (w *BaseWorker) Config() WorkerConfig {
	return w.config
}

// setRunning flips the running flag and reports whether it changed
func (w *BaseWorker) setRunning(running bool) bool {
	if !w.running.CompareAndSwap(!running, running) {
		return false
	}
	if running {
		w.mu.Lock()
		w.startedAt = time.Now()
		w.mu.Unlock()
	}
	return true
}

// Stats returns a copy of the counters
func (w *BaseWorker) Stats() WorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.counters
	s.WorkerName = w.config.WorkerName
	s.Running = w.running.Load()
	if s.Batches > 0 {
		s.AverageBatchTime = w.busy / time.Duration(s.Batches)
	}
	if !w.startedAt.IsZero() {
		s.Uptime = time.Since(w.startedAt)
	}
	return s
}

// recordBatch accounts for one batch of n items started at began
func (w *BaseWorker) recordBatch(began time.Time, n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.counters.Batches++
	if err != nil {
		w.counters.FailedBatches++
		w.counters.Failed += int64(n)
	} else {
		w.counters.Written += int64(n)
	}
	w.busy += time.Since(began)
	w.counters.LastBatch = time.Now()
}

// recordDropped accounts for an item rejected before it was queued
func (w *BaseWorker) recordDropped() {
	w.mu.Lock()
	w.counters.Dropped++
	w.mu.Unlock()
}

// WorkerPool starts and stops a fixed set of workers together
type WorkerPool struct {
	mu      sync.RWMutex
	workers []Worker
}

// NewWorkerPool creates an empty pool
func NewWorkerPool() *WorkerPool {
	return &WorkerPool{}
}

// AddWorker adds a worker to the pool
func (p *WorkerPool) AddWorker(worker Worker) {
	p.mu.Lock()
	p.workers = append(p.workers, worker)
	p.mu.Unlock()
}

// StartAll starts the workers in the order they were added. When one
// fails the workers already started are stopped again.
func (p *WorkerPool) StartAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for i, worker := range p.workers {
		if err := worker.Start(ctx); err != nil {
			for _, started := range p.workers[:i] {
				_ = started.Stop(ctx)
			}
			return NewWorkerError(worker.Name(), "start", err)
		}
	}
	return nil
}

// StopAll stops every worker concurrently and joins their errors
func (p *WorkerPool) StopAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	errs := make([]error, len(p.workers))
	var wg sync.WaitGroup
	for i, worker := range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Stop(ctx); err != nil {
				errs[i] = NewWorkerError(worker.Name(), "stop", err)
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Stats returns the counters of every worker
func (p *WorkerPool) Stats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]WorkerStats, 0, len(p.workers))
	for _, worker := range p.workers {
		out = append(out, worker.Stats())
	}
	return out
}

// Count returns the number of workers in the pool
func (p *WorkerPool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.workers)
}

// safeCall runs fn and turns a panic into a *PanicError
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}

// WorkerError ties a lifecycle failure to the worker and operation
type WorkerError struct {
	Worker    string
	Operation string
	Err       error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Worker, e.Operation, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// NewWorkerError creates a new worker error
func NewWorkerError(worker, operation string, err error) *WorkerError {
	return &WorkerError{Worker: worker, Operation: operation, Err: err}
}

// PanicError is a panic recovered while writing a batch
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Logger is the leveled logger workers write to
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// StdLogger adapts a *log.Logger to Logger by prefixing the level
type StdLogger struct {
	logger *log.Logger
}

// NewStdLogger wraps logger
func NewStdLogger(logger *log.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

func (l *StdLogger) Info(msg string, args ...any)  { l.printf("INFO", msg, args) }
func (l *StdLogger) Warn(msg string, args ...any)  { l.printf("WARN", msg, args) }
func (l *StdLogger) Error(msg string, args ...any) { l.printf("ERROR", msg, args) }
func (l *StdLogger) Debug(msg string, args ...any) { l.printf("DEBUG", msg, args) }

func (l *StdLogger) printf(level, msg string, args []any) {
	l.logger.Printf("["+level+"] "+msg, args...)
}
