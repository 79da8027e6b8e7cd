package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log query paging bounds.
const (
	defaultLogQueryLimit = 50
	maxLogQueryLimit     = 500
)

// LoggingService stores request logs and operator audit entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	// CreateLogs stores entries in one bulk write.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	// QueryLogs returns matching entries, newest first, one page at a time.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService over the logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo, now: time.Now}
}

// CreateLog stores a single entry. A missing ID or timestamp is filled in.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, s.toDocument(entry))
}

// CreateLogs stores entries in bulk. Nil entries are skipped.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		docs = append(docs, s.toDocument(entry))
	}
	if len(docs) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, docs)
}

// QueryLogs pages through entries matching opts. Limit defaults to 50 and
// is capped at 500.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, repositoryQuery(opts, true))
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromLogDocument(doc))
	}
	return entries, nil
}

// CountLogs counts every entry matching opts, ignoring paging.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repositoryQuery(opts, false))
}

func repositoryQuery(opts model.LogQueryOptions, paged bool) repository.LogQueryOptions {
	q := repository.LogQueryOptions{
		RequestID:  opts.RequestID,
		Operator:   opts.Operator,
		ActionType: string(opts.ActionType),
		Method:     strings.ToUpper(opts.Method),
		Path:       opts.Path,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
	}
	if opts.Level != "" {
		q.Level = normalizeLevel(opts.Level)
	}
	if !paged {
		return q
	}

	q.Limit = opts.Limit
	switch {
	case q.Limit <= 0:
		q.Limit = defaultLogQueryLimit
	case q.Limit > maxLogQueryLimit:
		q.Limit = maxLogQueryLimit
	}
	if opts.Skip > 0 {
		q.Skip = opts.Skip
	}
	return q
}

// normalizeLevel lowercases level and maps empty to info.
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return "info"
	case "warning":
		return "warn"
	default:
		return level
	}
}

func (s *LoggingServiceImpl) toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
	entry.Level = normalizeLevel(entry.Level)

	return &repository.LogEntryDocument{
		ID:         entry.ID,
		Timestamp:  entry.Timestamp,
		Level:      entry.Level,
		Message:    entry.Message,
		RequestID:  entry.RequestID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		Duration:   entry.Duration,
		IP:         entry.IP,
		UserAgent:  entry.UserAgent,
		Error:      entry.Error,
		Operator:   entry.Operator,
		Role:       entry.Role,
		ActionType: string(entry.ActionType),
		Fields:     entry.Fields,
	}
}

func fromLogDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp.UTC(),
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		StatusCode: doc.StatusCode,
		Duration:   doc.Duration,
		IP:         doc.IP,
		UserAgent:  doc.UserAgent,
		Error:      doc.Error,
		Operator:   doc.Operator,
		Role:       doc.Role,
		ActionType: model.ActionType(doc.ActionType),
		Fields:     doc.Fields,
	}
}
