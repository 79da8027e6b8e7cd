//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockLogsRepository struct {
	mock.Mock
}

func (m *mockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockLogsRepository) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	docs, _ := args.Get(0).([]*repository.LogEntryDocument)
	return docs, args.Error(1)
}

func (m *mockLogsRepository) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

var logClock = time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CST", 8*3600))

func newTestLoggingService(repo *mockLogsRepository) *LoggingServiceImpl {
	svc := NewLoggingService(repo).(*LoggingServiceImpl)
	svc.now = func() time.Time { return logClock }
	return svc
}

func TestLoggingService_CreateLog(t *testing.T) {
	fixedID := primitive.NewObjectID()
	stamped := time.Date(2026, 2, 14, 18, 0, 0, 0, time.FixedZone("MSK", 3*3600))

	tests := []struct {
		name      string
		entry     *model.LogEntry
		repoErr   error
		wantLevel string
		wantTime  time.Time
		wantID    primitive.ObjectID
		wantErr   bool
	}{
		{
			name:      "request entry gets id and utc timestamp",
			entry:     &model.LogEntry{Level: "info", Message: "HTTP request", Method: "POST", Path: "/api/quote", StatusCode: 200},
			wantLevel: "info",
			wantTime:  logClock.UTC(),
		},
		{
			name:      "existing id and timestamp kept",
			entry:     &model.LogEntry{ID: fixedID, Timestamp: stamped, Level: "WARN", Message: "HTTP request"},
			wantLevel: "warn",
			wantTime:  stamped.UTC(),
			wantID:    fixedID,
		},
		{
			name:      "audit entry without level",
			entry:     &model.LogEntry{Message: "Tariff tables imported", Operator: "anna", Role: "admin", ActionType: model.ActionTariffImport},
			wantLevel: "info",
			wantTime:  logClock.UTC(),
		},
		{
			name:      "warning alias",
			entry:     &model.LogEntry{Level: " Warning ", Message: "HTTP request"},
			wantLevel: "warn",
			wantTime:  logClock.UTC(),
		},
		{
			name:    "store error",
			entry:   &model.LogEntry{Level: "error", Message: "HTTP request"},
			repoErr: errors.New("mongodb unavailable"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			var stored *repository.LogEntryDocument
			repo.On("Create", mock.Anything, mock.AnythingOfType("*repository.LogEntryDocument")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*repository.LogEntryDocument) }).
				Return(tt.repoErr)

			err := newTestLoggingService(repo).CreateLog(context.Background(), tt.entry)

			repo.AssertExpectations(t)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.False(t, stored.ID.IsZero())
			if !tt.wantID.IsZero() {
				assert.Equal(t, tt.wantID, stored.ID)
			}
			assert.Equal(t, tt.wantLevel, stored.Level)
			assert.True(t, tt.wantTime.Equal(stored.Timestamp))
			assert.Equal(t, time.UTC, stored.Timestamp.Location())
			assert.Equal(t, string(tt.entry.ActionType), stored.ActionType)
			assert.Equal(t, tt.entry.Operator, stored.Operator)
		})
	}
}

func TestLoggingService_CreateLogs(t *testing.T) {
	tests := []struct {
		name      string
		entries   []*model.LogEntry
		repoErr   error
		wantStore int
		wantErr   bool
	}{
		{
			name: "batch stored in one write",
			entries: []*model.LogEntry{
				{Level: "info", Message: "HTTP request", Path: "/api/quote"},
				{Level: "warn", Message: "HTTP request", Path: "/api/quote", StatusCode: 422},
				{Message: "Exchange rate recorded", ActionType: model.ActionRateRecorded},
			},
			wantStore: 3,
		},
		{
			name:      "nil entries skipped",
			entries:   []*model.LogEntry{nil, {Level: "info", Message: "HTTP request"}, nil},
			wantStore: 1,
		},
		{name: "empty batch", entries: nil},
		{name: "only nil entries", entries: []*model.LogEntry{nil}},
		{
			name:      "store error",
			entries:   []*model.LogEntry{{Level: "info", Message: "HTTP request"}},
			repoErr:   errors.New("bulk write failed"),
			wantStore: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			if tt.wantStore > 0 {
				repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(docs []*repository.LogEntryDocument) bool {
					return len(docs) == tt.wantStore
				})).Return(tt.repoErr)
			}

			err := newTestLoggingService(repo).CreateLogs(context.Background(), tt.entries)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			if tt.wantStore == 0 {
				repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLoggingService_QueryLogs(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		opts model.LogQueryOptions
		want repository.LogQueryOptions
	}{
		{
			name: "default page",
			opts: model.LogQueryOptions{},
			want: repository.LogQueryOptions{Limit: defaultLogQueryLimit},
		},
		{
			name: "limit capped",
			opts: model.LogQueryOptions{Limit: 10_000, Skip: 20},
			want: repository.LogQueryOptions{Limit: maxLogQueryLimit, Skip: 20},
		},
		{
			name: "negative skip ignored",
			opts: model.LogQueryOptions{Limit: 5, Skip: -3},
			want: repository.LogQueryOptions{Limit: 5},
		},
		{
			name: "filters normalized",
			opts: model.LogQueryOptions{
				RequestID:  "req-1",
				Level:      "ERROR",
				Operator:   "anna",
				ActionType: model.ActionTariffImport,
				Method:     "put",
				Path:       "/api/tariffs",
				StartTime:  &start,
				EndTime:    &end,
				Limit:      20,
			},
			want: repository.LogQueryOptions{
				RequestID:  "req-1",
				Level:      "error",
				Operator:   "anna",
				ActionType: "tariff_import",
				Method:     "PUT",
				Path:       "/api/tariffs",
				StartTime:  &start,
				EndTime:    &end,
				Limit:      20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			repo.On("Query", mock.Anything, tt.want).Return([]*repository.LogEntryDocument{}, nil)

			entries, err := newTestLoggingService(repo).QueryLogs(context.Background(), tt.opts)

			require.NoError(t, err)
			assert.Empty(t, entries)
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_QueryLogs_ConvertsDocuments(t *testing.T) {
	id := primitive.NewObjectID()
	stored := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	repo := new(mockLogsRepository)
	repo.On("Query", mock.Anything, mock.Anything).Return([]*repository.LogEntryDocument{
		{
			ID:         id,
			Timestamp:  stored,
			Level:      "info",
			Message:    "Tariff tables imported",
			Operator:   "anna",
			Role:       "admin",
			ActionType: "tariff_import",
			Fields:     map[string]interface{}{"version": int32(4)},
		},
	}, nil)

	entries, err := newTestLoggingService(repo).QueryLogs(context.Background(), model.LogQueryOptions{Operator: "anna"})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, model.ActionTariffImport, entries[0].ActionType)
	assert.Equal(t, time.UTC, entries[0].Timestamp.Location())
	assert.True(t, stored.Equal(entries[0].Timestamp))
	assert.Equal(t, int32(4), entries[0].Fields["version"])
}

func TestLoggingService_QueryLogs_Error(t *testing.T) {
	repo := new(mockLogsRepository)
	repo.On("Query", mock.Anything, mock.Anything).Return(nil, repository.ErrGatewayUnavailable)

	entries, err := newTestLoggingService(repo).QueryLogs(context.Background(), model.LogQueryOptions{})

	assert.ErrorIs(t, err, repository.ErrGatewayUnavailable)
	assert.Nil(t, entries)
}

func TestLoggingService_CountLogs(t *testing.T) {
	tests := []struct {
		name    string
		opts    model.LogQueryOptions
		want    repository.LogQueryOptions
		count   int64
		repoErr error
	}{
		{
			name:  "paging ignored",
			opts:  model.LogQueryOptions{Operator: "anna", Limit: 5, Skip: 10},
			want:  repository.LogQueryOptions{Operator: "anna"},
			count: 42,
		},
		{
			name:  "level normalized",
			opts:  model.LogQueryOptions{Level: "Warning"},
			want:  repository.LogQueryOptions{Level: "warn"},
			count: 3,
		},
		{
			name:    "store error",
			opts:    model.LogQueryOptions{},
			want:    repository.LogQueryOptions{},
			repoErr: errors.New("count failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			repo.On("Count", mock.Anything, tt.want).Return(tt.count, tt.repoErr)

			count, err := newTestLoggingService(repo).CountLogs(context.Background(), tt.opts)

			if tt.repoErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.count, count)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "info"},
		{"INFO", "info"},
		{" warn ", "warn"},
		{"warning", "warn"},
		{"Error", "error"},
		{"debug", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLevel(tt.in))
		})
	}
}
