package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is applied when a collection request carries no positive
// limit.
const DefaultPageSize = 20

// CollectionOptions carries the paging window requested by a caller.
type CollectionOptions struct {
	Offset int
	Limit  int
}

// Normalize returns the options with the default page size applied.
func (o CollectionOptions) Normalize() CollectionOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	return o
}

// PersonPage is a window over a resolved person collection.
type PersonPage struct {
	People  []Person `json:"people"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Total   int      `json:"totalResults"`
	HasMore bool     `json:"hasMore"`
}

// DataCollection maps person ids to the (possibly projected) key/value data
// stored for them.
type DataCollection map[string]map[string]string

// AppDataEvent is emitted after a person's application data changes.
type AppDataEvent struct {
	PersonID   string
	AppID      string
	Action     string
	Keys       []string
	OccurredAt time.Time
}

// ActivityEvent is emitted after activities are created or removed.
type ActivityEvent struct {
	PersonID    string
	AppID       string
	Action      string
	ActivityIDs []string
	OccurredAt  time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterAppDataChange  func(context.Context, AppDataEvent)
	AfterActivityChange func(context.Context, ActivityEvent)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator produces row identifiers for persisted records.
type IDGenerator interface {
	UUID() uuid.UUID
}

// UUIDGenerator uses google/uuid.
type UUIDGenerator struct{}

// UUID implements IDGenerator.
func (UUIDGenerator) UUID() uuid.UUID {
	return uuid.New()
}

// Logger is the minimal logging contract used across the module.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
