package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds ordinary database queries.
const DefaultQueryTimeout = 30 * time.Second

// SlowQueryTimeout is for multi-row transactional work.
const SlowQueryTimeout = 60 * time.Second

// QueryContext derives a timeout context for database work. A nil parent
// falls back to context.Background().
func QueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// DefaultQueryContext derives a context with the default query timeout.
func DefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return QueryContext(parentCtx, DefaultQueryTimeout)
}

// SlowQueryContext derives a context with the transactional timeout.
func SlowQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return QueryContext(parentCtx, SlowQueryTimeout)
}
