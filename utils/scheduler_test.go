package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler()
	var runs, failures atomic.Int32

	require.NoError(t, s.Every("count", time.Second, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))
	require.NoError(t, s.Every("fail", time.Second, func(ctx context.Context) error {
		failures.Add(1)
		return errors.New("boom")
	}))

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 && failures.Load() >= 1 }, 4*time.Second, 50*time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestRevoker_Sweep(t *testing.T) {
	r := NewRevoker(nil)
	ctx := context.Background()

	r.Revoke(ctx, "live", time.Now().Add(time.Hour))
	r.Revoke(ctx, "soon", time.Now().Add(20*time.Millisecond))
	assert.True(t, r.IsRevoked(ctx, "soon"))

	time.Sleep(40 * time.Millisecond)
	assert.False(t, r.IsRevoked(ctx, "soon"))
	assert.Equal(t, 1, r.Sweep())
	assert.True(t, r.IsRevoked(ctx, "live"))
}
