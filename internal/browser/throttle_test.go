package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThrottler_NilAllowsImmediately(t *testing.T) {
	tr := newThrottler(0)
	require.Nil(t, tr)

	// A nil throttler must still be safe to wait on.
	require.NoError(t, tr.Wait(context.Background()))
}

func TestThrottler_SpacesWaiters(t *testing.T) {
	interval := 50 * time.Millisecond
	tr := newThrottler(interval)

	start := time.Now()
	require.NoError(t, tr.Wait(context.Background()))
	require.NoError(t, tr.Wait(context.Background()))
	require.NoError(t, tr.Wait(context.Background()))

	// First slot is immediate, the next two are spaced by the interval.
	require.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestThrottler_CanceledContext(t *testing.T) {
	tr := newThrottler(time.Minute)

	require.NoError(t, tr.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Wait(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
