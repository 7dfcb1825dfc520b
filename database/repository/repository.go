package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

const (
	// SingleTimeout bounds single-document operations.
	SingleTimeout = 5 * time.Second
	// ScanTimeout bounds list, count and aggregate operations.
	ScanTimeout = 10 * time.Second
)

// WithTimeout derives a bounded context for one repository call.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
