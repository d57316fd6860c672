package concurrent

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitFor(t *testing.T) {
	t.Parallel()

	calls := 0
	res, err := WaitFor(context.Background(), time.Second, time.Millisecond, func(context.Context) (int, bool, error) {
		calls++
		return calls, calls == 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res)
}

func TestWaitFor_Error(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	_, err := WaitFor(context.Background(), time.Second, time.Millisecond, func(context.Context) (int, bool, error) {
		return 0, false, errStop
	})
	require.ErrorIs(t, err, errStop)
}

func TestWaitFor_Timeout(t *testing.T) {
	t.Parallel()

	_, err := WaitFor(context.Background(), 20*time.Millisecond, time.Millisecond, func(context.Context) (int, bool, error) {
		return 0, false, nil
	})
	require.ErrorIs(t, err, ErrWaitTimeout)
}

func TestWaitFor_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WaitFor(ctx, 0, time.Millisecond, func(context.Context) (int, bool, error) {
		return 0, false, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOnSignal_ContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	OnSignal(ctx, func() { called = true }, os.Interrupt)
	assert.False(t, called)
}
