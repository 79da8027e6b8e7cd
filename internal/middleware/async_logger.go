package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/logger"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/service"
)

// AsyncLoggerConfig holds configuration for the batching log writer.
type AsyncLoggerConfig struct {
	// BufferSize bounds the entries waiting to be written. Entries beyond it are dropped.
	BufferSize int
	// BatchSize is the largest number of entries written in one call.
	BatchSize int
	// FlushInterval is how long a partial batch may wait before it is written.
	FlushInterval time.Duration
	// WriteTimeout bounds a single batch write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the defaults used when nothing is configured.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

func (c AsyncLoggerConfig) withDefaults() AsyncLoggerConfig {
	d := DefaultAsyncLoggerConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = d.FlushInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}

// AsyncLogger persists request and audit log entries off the request path.
// A single writer drains the buffer and stores entries in batches.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	done           chan struct{}
	stopOnce       sync.Once

	enqueued int64
	dropped  int64
	written  int64
	failed   int64
}

// NewAsyncLogger starts a writer over loggingService. It returns nil when
// loggingService is nil.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	cfg = cfg.withDefaults()

	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		done:           make(chan struct{}),
	}
	go al.run()
	return al
}

func (al *AsyncLogger) run() {
	defer close(al.done)

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		al.write(batch)
		batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
	}

	for {
		select {
		case entry := <-al.entryCh:
			batch = append(batch, entry)
			if len(batch) >= al.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					batch = append(batch, entry)
					if len(batch) >= al.cfg.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) write(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := len(batch)
	var err error
	if n == 1 {
		err = al.loggingService.CreateLog(ctx, batch[0])
	} else {
		err = al.loggingService.CreateLogs(ctx, batch)
	}
	if err != nil {
		atomic.AddInt64(&al.failed, int64(n))
		metrics.RecordLogEntries("failed", n)
		log := logger.Logger()
		log.Warn().Err(err).Int("entries", n).Msg("Failed to persist log entries")
		return
	}
	atomic.AddInt64(&al.written, int64(n))
	metrics.RecordLogEntries("written", n)
}

// Log enqueues entry. It returns false when the buffer is full or the
// writer has stopped, in which case the entry is dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case <-al.stopCh:
		al.drop()
		return false
	default:
	}

	select {
	case al.entryCh <- entry:
		atomic.AddInt64(&al.enqueued, 1)
		metrics.RecordLogEntries("enqueued", 1)
		return true
	default:
		al.drop()
		return false
	}
}

func (al *AsyncLogger) drop() {
	atomic.AddInt64(&al.dropped, 1)
	metrics.RecordLogEntries("dropped", 1)
}

// Stop writes everything still buffered and waits for the writer to exit.
// It is safe to call more than once.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() { close(al.stopCh) })
	<-al.done
}

// Stats returns enqueued, dropped, written and failed entry counts.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, failed int64) {
	return atomic.LoadInt64(&al.enqueued),
		atomic.LoadInt64(&al.dropped),
		atomic.LoadInt64(&al.written),
		atomic.LoadInt64(&al.failed)
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger starts the process-wide writer used by RequestLogger and
// AuditLog, replacing and flushing any previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the process-wide writer, or nil.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and removes the process-wide writer.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
