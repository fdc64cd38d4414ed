// Package reqctx carries per-request identity through a context.
package reqctx

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

type ctxKey struct{}

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

// maxIDLength bounds client supplied request IDs
const maxIDLength = 128

// RequestContext identifies one admin API request
type RequestContext struct {
	RequestID string
	StartTime time.Time
}

// Elapsed returns the time since the request started
func (rc *RequestContext) Elapsed() time.Duration {
	return time.Since(rc.StartTime)
}

// WithRequestContext attaches a RequestContext to ctx. An empty or unusable
// id (too long, or with characters outside printable ASCII) gets a fresh UUID.
func WithRequestContext(ctx context.Context, id string) context.Context {
	if !validID(id) {
		id = uuid.Must(uuid.NewV4()).String()
	}
	return context.WithValue(ctx, ctxKey{}, &RequestContext{
		RequestID: id,
		StartTime: time.Now(),
	})
}

// GetRequestContext returns the RequestContext of ctx, or one with ID
// "unknown" when ctx carries none.
func GetRequestContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(ctxKey{}).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{RequestID: "unknown", StartTime: time.Now()}
}

func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// RequestError ties an error to the request that produced it
type RequestError struct {
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.RequestID, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError wraps err with the request ID found in ctx
func NewRequestError(ctx context.Context, err error) error {
	return &RequestError{RequestID: GetRequestContext(ctx).RequestID, Err: err}
}
