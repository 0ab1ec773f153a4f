package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errFlaky = errors.New("flaky")

func TestPolicy_Do_SucceedsFirstTry(t *testing.T) {
	calls := 0

	err := Policy{MaxAttempts: 3}.Do(context.Background(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Do_RetriesUpToMaxAttempts(t *testing.T) {
	calls := 0

	err := Policy{MaxAttempts: 3, Delay: time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return errFlaky
	})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 3, calls)
}

func TestPolicy_Do_RecoversAfterFailure(t *testing.T) {
	calls := 0

	err := Policy{MaxAttempts: 3}.Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errFlaky
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPolicy_Do_ZeroValueRunsOnce(t *testing.T) {
	calls := 0

	err := Policy{}.Do(context.Background(), func() error {
		calls++
		return errFlaky
	})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Do_PermanentStops(t *testing.T) {
	calls := 0

	err := Policy{MaxAttempts: 5}.Do(context.Background(), func() error {
		calls++
		return Permanent(errFlaky)
	})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Do_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Policy{MaxAttempts: 5, Delay: time.Hour}.Do(ctx, func() error {
		calls++
		cancel()
		return errFlaky
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicy_WithMinAttempts(t *testing.T) {
	assert.Equal(t, 2, None.WithMinAttempts(2).MaxAttempts)
	assert.Equal(t, 4, Policy{MaxAttempts: 4}.WithMinAttempts(2).MaxAttempts)
	assert.Equal(t, 1, None.MaxAttempts)
}
