package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy is the single retry policy applied to remote calls.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// None performs every operation exactly once.
var None = Policy{MaxAttempts: 1}

// Do runs op until it succeeds, returns a Permanent error, the attempts are
// used up or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, op func() error) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(p.attempts()-1)),
		ctx,
	)
	return backoff.Retry(op, b)
}

// WithMinAttempts returns a copy allowing at least n attempts.
func (p Policy) WithMinAttempts(n int) Policy {
	if p.attempts() < n {
		p.MaxAttempts = n
	}
	return p
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
