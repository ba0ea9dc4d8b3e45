package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrUnavailable wraps a storage fault that survived the bounded retry.
// Callers surface it as a generic 503; nothing else is retried here —
// in particular lifecycle writes, which must never be applied twice.
var ErrUnavailable = errors.New("storage unavailable")

const maxRetries = 3

func newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx)
}

// retryRead runs a read-only storage operation, retrying transient
// connection faults with exponential backoff.
func retryRead(ctx context.Context, op func() error) error {
	err := backoff.Retry(func() error {
		if err := op(); err != nil {
			if isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, newBackOff(ctx))

	if err != nil && isTransient(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
