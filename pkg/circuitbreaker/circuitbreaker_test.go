package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func TestExecute_PassesResultThrough(t *testing.T) {
	b := New(DefaultConfig("test"), nil)

	v, err := Execute(b, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestExecute_OpensAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 3
	cfg.OpenTimeout = time.Minute
	b := New(cfg, nil)

	for i := 0; i < 3; i++ {
		_, err := Execute(b, func() (struct{}, error) { return struct{}{}, errBackend })
		assert.ErrorIs(t, err, errBackend)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	called := false
	_, err := Execute(b, func() (struct{}, error) {
		called = true
		return struct{}{}, nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestExecute_CancelledContextDoesNotTrip(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 1
	b := New(cfg, nil)

	for i := 0; i < 3; i++ {
		_, err := Execute(b, func() (int, error) { return 0, context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestExecute_HalfOpenRecovers(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 1
	cfg.OpenTimeout = 20 * time.Millisecond
	b := New(cfg, nil)

	_, _ = Execute(b, func() (int, error) { return 0, errBackend })
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(40 * time.Millisecond)

	v, err := Execute(b, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
