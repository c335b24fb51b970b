// Package journal records listener delivery failures for post-run
// diagnostics.
//
// The journal stores failure records only — which listener failed, on
// which method, and why. Event payloads are never persisted. A registry
// configured without a journal simply logs failures and moves on;
// journal write errors never interrupt event delivery.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// MethodConstruct is the pseudo-method recorded for failures that
// happen while taking a listener into use, before any event reaches it.
const MethodConstruct = "construct"

// Failure is one recorded listener failure.
type Failure struct {
	// ID uniquely identifies this record.
	ID string

	// Listener is the display name of the failing listener.
	Listener string

	// Method is the listener method that failed, or MethodConstruct.
	Method string

	// Message is the short failure description.
	Message string

	// Details carries the full failure detail, typically a stack trace.
	Details string

	// OccurredAt is when the failure was recorded, in UTC.
	OccurredAt time.Time
}

// NewFailure creates a failure record with a fresh ID and timestamp.
func NewFailure(listener, method, message, details string) *Failure {
	return &Failure{
		ID:         uuid.NewString(),
		Listener:   listener,
		Method:     method,
		Message:    message,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}
}

// Store persists listener failure records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Record stores one failure.
	Record(ctx context.Context, f *Failure) error

	// List returns recorded failures in insertion order. An empty
	// listener name returns every record; otherwise only records for
	// that listener.
	List(ctx context.Context, listener string) ([]*Failure, error)

	// Count returns the total number of recorded failures.
	Count(ctx context.Context) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the journal has been closed.
	ErrStoreClosed = errors.New("failure journal closed")
)
