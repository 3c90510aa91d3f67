package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type failingStore struct {
	m     sync.Mutex
	err   error
	calls int
}

func (f *failingStore) Load(context.Context, string) (domain.SessionState, error) {
	f.m.Lock()
	defer f.m.Unlock()
	f.calls++
	if f.err != nil {
		return domain.SessionState{}, f.err
	}
	return domain.NewSessionState(), nil
}

func (f *failingStore) Save(context.Context, string, domain.SessionState) error {
	f.m.Lock()
	defer f.m.Unlock()
	f.calls++
	return f.err
}

func (f *failingStore) Delete(context.Context, string) error {
	f.m.Lock()
	defer f.m.Unlock()
	f.calls++
	return f.err
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	next := &failingStore{}
	store := NewBreakerStore(next, circuitbreaker.New(circuitbreaker.DefaultConfig("sessions"), nil))
	ctx := context.Background()

	state, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.NotNil(t, state.Ratings)
	require.NoError(t, store.Save(ctx, "abc", state))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.Equal(t, 3, next.calls)
}

func TestBreakerStore_OpensOnRepeatedFailures(t *testing.T) {
	next := &failingStore{err: errStoreDown}
	cfg := circuitbreaker.DefaultConfig("sessions")
	cfg.ConsecutiveFailures = 2
	cfg.OpenTimeout = time.Minute
	store := NewBreakerStore(next, circuitbreaker.New(cfg, nil))
	ctx := context.Background()

	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, errStoreDown)
	assert.ErrorIs(t, store.Save(ctx, "abc", domain.NewSessionState()), errStoreDown)

	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 2, next.calls)
}
