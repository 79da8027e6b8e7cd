package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is a request or audit log document.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Operator   string                 `bson:"operator,omitempty" json:"operator,omitempty"`
	Role       string                 `bson:"role,omitempty" json:"role,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// LogsRepository stores request and audit log documents.
type LogsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs, now: time.Now}
}

// prepare assigns an ID and a UTC timestamp where they are missing.
func (r *LogsRepository) prepare(entry *LogEntryDocument) *LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}
	return entry
}

// Create inserts a new log entry document.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	_, err := r.collection.InsertOne(ctx, r.prepare(entry))
	return err
}

// CreateMany inserts entries in one round trip. Unordered, so later
// documents are inserted even if one is rejected.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, r.prepare(entry))
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// LogQueryOptions filters log queries. Path matches as a prefix; the time
// range is inclusive.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Operator   string
	ActionType string
	Method     string
	Path       string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}

func (o LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	for field, value := range map[string]string{
		"request_id":  o.RequestID,
		"level":       o.Level,
		"operator":    o.Operator,
		"action_type": o.ActionType,
		"method":      o.Method,
	} {
		if value != "" {
			filter[field] = value
		}
	}

	if o.Path != "" {
		filter["path"] = bson.M{"$regex": "^" + regexp.QuoteMeta(o.Path)}
	}

	timeRange := bson.M{}
	if o.StartTime != nil {
		timeRange["$gte"] = *o.StartTime
	}
	if o.EndTime != nil {
		timeRange["$lte"] = *o.EndTime
	}
	if len(timeRange) > 0 {
		filter["timestamp"] = timeRange
	}
	return filter
}

// Query returns log documents matching opts, newest first. Entries with
// the same timestamp keep insertion order reversed so pages do not overlap.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	// All closes the cursor.
	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of log documents matching opts.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
