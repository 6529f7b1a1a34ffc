package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize = 1000
	exportTimeout    = 10 * time.Second
)

var (
	ErrQueueFull     = errors.New("export queue is full, dropping test record")
	ErrWorkerStopped = errors.New("export worker is stopped")
)

type Exporter interface {
	Name() string
	Export(ctx context.Context, rec record.TestRecord) error
}

// Worker hands test records to the exporters from background goroutines so
// a slow broker never delays a test run.
//
//go:generate mockery --name=Worker --dir=. --output=./mocks --filename=worker_mock.go --case=underscore --with-expecter
type Worker interface {
	StartWorkers(n int)
	Export(ctx context.Context, rec record.TestRecord) error
	Shutdown()
}

type worker struct {
	logger    *logrus.Logger
	exporters []Exporter
	taskChan  chan record.TestRecord

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewWorker(logger *logrus.Logger, queueSize int, exporters ...Exporter) Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &worker{
		logger:    logger,
		exporters: exporters,
		taskChan:  make(chan record.TestRecord, queueSize),
	}
}

func (w *worker) StartWorkers(n int) {
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for rec := range w.taskChan {
				w.process(rec)
			}
		}()
	}
}

// Export queues rec; it never waits for the exporters.
func (w *worker) Export(_ context.Context, rec record.TestRecord) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWorkerStopped
	}
	select {
	case w.taskChan <- rec:
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *worker) process(rec record.TestRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()
	for _, exporter := range w.exporters {
		if err := exporter.Export(ctx, rec); err != nil {
			w.logger.WithError(err).WithFields(logrus.Fields{
				"exporter":   exporter.Name(),
				"message_id": rec.MessageID,
			}).Warn("failed to export test record")
		}
	}
}

// Shutdown stops accepting records and waits until the queue is drained.
func (w *worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.taskChan)
	w.mu.Unlock()

	w.logger.Info("shutting down export workers")
	w.wg.Wait()
	w.logger.Info("export workers stopped")
}
