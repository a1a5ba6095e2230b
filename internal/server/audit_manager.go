package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
)

const publishTimeout = 5 * time.Second

// AuditManager batches access entries and publishes them from a worker pool.
// Entries that cannot be queued or published are written to the log instead.
type AuditManager struct {
	producer    kafka.Producer
	topic       string
	workerCount int
	batchSize   int
	timeout     time.Duration
	logger      *zap.Logger

	inputChan  chan AuditLogEntry
	batchChan  chan []AuditLogEntry
	shutdownCh chan struct{}
	once       sync.Once
	startOnce  sync.Once

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewAuditManager(producer kafka.Producer, topic string, workerCount, batchSize int, timeout time.Duration, logger *zap.Logger) *AuditManager {
	workerCount = max(workerCount, 1)
	batchSize = max(batchSize, 1)
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &AuditManager{
		producer:    producer,
		topic:       topic,
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		logger:      logger.With(zap.String("component", "audit")),
		inputChan:   make(chan AuditLogEntry, workerCount*batchSize*2),
		batchChan:   make(chan []AuditLogEntry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.logger.Info("Starting AuditManager", zap.Int("workers", m.workerCount), zap.String("topic", m.topic))
		m.wg.Add(1)
		go m.runAggregator(ctx)

		for i := 0; i < m.workerCount; i++ {
			m.wg.Add(1)
			go m.runWorker(i)
		}
	})
}

func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		m.logger.Info("Initiating AuditManager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("AuditManager shutdown completed", zap.Int("pending", m.Pending()))
		case <-ctx.Done():
			m.logger.Warn("AuditManager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

// LogEntry queues entry without blocking the request on a full queue.
func (m *AuditManager) LogEntry(entry AuditLogEntry) {
	m.updatePendingCount(1)

	select {
	case <-m.shutdownCh:
		m.emergencyLog(entry)
		return
	default:
	}

	select {
	case m.inputChan <- entry:
	default:
		m.emergencyLog(entry)
	}
}

func (m *AuditManager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}

func (m *AuditManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []AuditLogEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	flush := func() {
		if timer != nil {
			timer.Stop()
		}
		timeoutC = nil
		if len(batch) > 0 {
			m.dispatchBatch(batch)
			batch = nil
		}
	}

	defer func() {
		// Drain whatever was queued before shutdown.
		for drained := false; !drained; {
			select {
			case entry := <-m.inputChan:
				batch = append(batch, entry)
				if len(batch) >= m.batchSize {
					flush()
				}
			default:
				drained = true
			}
		}
		flush()
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				flush()
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			flush()

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditLogEntry) {
	batchCopy := make([]AuditLogEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.publishBatch(-1, batchCopy)
	}
}

func (m *AuditManager) runWorker(id int) {
	defer m.wg.Done()
	for batch := range m.batchChan {
		m.publishBatch(id, batch)
	}
}

func (m *AuditManager) publishBatch(workerID int, batch []AuditLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	for _, entry := range batch {
		value, err := json.Marshal(entry)
		if err != nil {
			m.logger.Error("Failed to marshal audit entry", zap.Error(err))
			m.updatePendingCount(-1)
			continue
		}
		if err := m.producer.SendMessage(ctx, m.topic, []byte(entry.Handler), value); err != nil {
			metrics.OperationErrorsTotal.WithLabelValues("audit_publish").Inc()
			m.logger.Error("Failed to publish audit entry",
				zap.Int("worker", workerID), zap.ByteString("entry", value), zap.Error(err))
		}
		m.updatePendingCount(-1)
	}
}

func (m *AuditManager) emergencyLog(entry AuditLogEntry) {
	m.logger.Warn("Audit queue unavailable, logging entry directly",
		zap.String("handler", entry.Handler),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status_code", entry.StatusCode),
	)
	m.updatePendingCount(-1)
}

func (m *AuditManager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}
