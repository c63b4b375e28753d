package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialIsCapped(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	ctx := context.Background()
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.Equal(3, b.Count())
	b.Reset()
	req.Equal(0, b.Count())
}

func TestPoll(t *testing.T) {
	req := require.New(t)
	calls := 0
	err := NewConstant(time.Millisecond).Poll(context.Background(), 0, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	err = NewConstant(time.Millisecond).Poll(context.Background(), 2, func() (bool, error) {
		return false, nil
	})
	req.Equal(ErrPollLimit, err)

	boom := errors.New("boom")
	err = NewConstant(time.Millisecond).Poll(context.Background(), 0, func() (bool, error) {
		return false, boom
	})
	req.Equal(boom, err)
}

func TestPollStopsOnCancel(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewConstant(time.Hour).Poll(ctx, 0, func() (bool, error) {
		return false, nil
	})
	req.Equal(context.Canceled, err)
}
