package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/infographic/internal/extract"
)

// IsRetryable reports whether a parse failure came from a throttled or
// failing upstream. Input, schema and configuration errors are final.
func IsRetryable(err error) bool {
	var retryErr *extract.RetryableError
	return errors.As(err, &retryErr)
}

// RetryPolicy bounds parse attempts. Delays double from Base up to Max with up
// to 50% jitter added.
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
}

// DefaultRetryPolicy is three attempts starting at one second.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Base: time.Second, Max: 30 * time.Second}

// Backoff returns the delay after attempt n (0-indexed).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.Base <= 0 {
		return 0
	}
	base := p.Base << uint(min(attempt, 16))
	if base > p.Max || base <= 0 {
		base = p.Max
	}
	if half := int64(base) / 2; half > 0 {
		base += time.Duration(rand.Int64N(half))
	}
	return base
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}
