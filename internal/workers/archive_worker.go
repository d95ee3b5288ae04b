package workers

import (
	"context"
	"sync"
	"time"

	"chat-relay/internal/models"
	"chat-relay/internal/repositories"
)

// ArchiveWorkerConfig holds configuration for the archive worker
type ArchiveWorkerConfig struct {
	WorkerConfig WorkerConfig
	Archive      repositories.ConversationArchive
	// QueueSize bounds the records waiting to be written
	QueueSize int
	// BatchSize triggers a flush as soon as this many records are pending
	BatchSize int
	Logger    Logger
}

// ArchiveWorker writes committed conversation records to the archive in
// the background so chat sessions never wait on storage
type ArchiveWorker struct {
	*BaseWorker
	archive   repositories.ConversationArchive
	queue     chan models.ConversationRecord
	batchSize int
	logger    Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewArchiveWorker creates a new archive worker
func NewArchiveWorker(config ArchiveWorkerConfig) *ArchiveWorker {
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}
	if config.WorkerConfig.FlushInterval <= 0 {
		config.WorkerConfig.FlushInterval = 2 * time.Second
	}
	if config.WorkerConfig.ShutdownTimeout <= 0 {
		config.WorkerConfig.ShutdownTimeout = 10 * time.Second
	}

	return &ArchiveWorker{
		BaseWorker: NewBaseWorker(config.WorkerConfig),
		archive:    config.Archive,
		queue:      make(chan models.ConversationRecord, config.QueueSize),
		batchSize:  config.BatchSize,
		logger:     config.Logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Enqueue offers a record for archiving without blocking. It returns
// false when the queue is full and the record was dropped.
func (w *ArchiveWorker) Enqueue(record models.ConversationRecord) bool {
	select {
	case w.queue <- record:
		return true
	default:
		w.recordDropped()
		w.logger.Warn("Archive queue full (%d), dropping record", cap(w.queue))
		return false
	}
}

// Pending returns the number of queued records
func (w *ArchiveWorker) Pending() int {
	return len(w.queue)
}

// Start begins draining the queue
func (w *ArchiveWorker) Start(ctx context.Context) error {
	select {
	case <-w.stop:
		return ErrStopped
	default:
	}
	if !w.setRunning(true) {
		return ErrAlreadyRunning
	}

	w.logger.Info("Starting archive worker: %s (batch=%d, queue=%d, interval=%v)",
		w.Name(), w.batchSize, cap(w.queue), w.config.FlushInterval)

	go w.run(ctx)
	return nil
}

// Stop flushes the queued records and shuts the worker down
func (w *ArchiveWorker) Stop(ctx context.Context) error {
	if !w.IsRunning() {
		return nil
	}

	w.logger.Info("Stopping archive worker: %s (%d pending)", w.Name(), w.Pending())
	w.stopOnce.Do(func() { close(w.stop) })

	timeout := time.NewTimer(w.config.ShutdownTimeout)
	defer timeout.Stop()

	select {
	case <-w.done:
	case <-timeout.C:
		return ErrDrainTimeout
	case <-ctx.Done():
		return ctx.Err()
	}

	w.logger.Info("Archive worker stopped: %s", w.Name())
	return nil
}

func (w *ArchiveWorker) run(ctx context.Context) {
	defer close(w.done)
	defer w.setRunning(false)

	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]models.ConversationRecord, 0, w.batchSize)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		w.writeBatch(ctx, batch)
		batch = make([]models.ConversationRecord, 0, w.batchSize)
	}

	for {
		select {
		case rec := <-w.queue:
			batch = append(batch, rec)
			if len(batch) >= w.batchSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)

		case <-w.stop:
			w.drain(&batch)
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.config.ShutdownTimeout)
			flush(drainCtx)
			cancel()
			return

		case <-ctx.Done():
			w.drain(&batch)
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.config.ShutdownTimeout)
			flush(drainCtx)
			cancel()
			return
		}
	}
}

// drain moves every queued record into batch
func (w *ArchiveWorker) drain(batch *[]models.ConversationRecord) {
	for {
		select {
		case rec := <-w.queue:
			*batch = append(*batch, rec)
		default:
			return
		}
	}
}

func (w *ArchiveWorker) writeBatch(ctx context.Context, batch []models.ConversationRecord) {
	began := time.Now()

	write := func() error { return w.archive.Append(ctx, batch...) }
	var err error
	if w.config.EnableRecovery {
		err = safeCall(write)
	} else {
		err = write()
	}
	w.recordBatch(began, len(batch), err)

	if err != nil {
		w.logger.Error("Failed to archive %d records: %v", len(batch), err)
		return
	}
	w.logger.Debug("Archived %d records in %v", len(batch), time.Since(began))
}
