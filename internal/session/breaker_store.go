package session

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/pkg/circuitbreaker"
)

// BreakerStore fails fast with circuitbreaker.ErrOpen while the wrapped
// store keeps failing.
type BreakerStore struct {
	next    Store
	breaker *circuitbreaker.Breaker
}

func NewBreakerStore(next Store, breaker *circuitbreaker.Breaker) *BreakerStore {
	return &BreakerStore{next: next, breaker: breaker}
}

func (b *BreakerStore) Load(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return circuitbreaker.Execute(b.breaker, func() (domain.SessionState, error) {
		return b.next.Load(ctx, sessionID)
	})
}

func (b *BreakerStore) Save(ctx context.Context, sessionID string, state domain.SessionState) error {
	_, err := circuitbreaker.Execute(b.breaker, func() (struct{}, error) {
		return struct{}{}, b.next.Save(ctx, sessionID, state)
	})
	return err
}

func (b *BreakerStore) Delete(ctx context.Context, sessionID string) error {
	_, err := circuitbreaker.Execute(b.breaker, func() (struct{}, error) {
		return struct{}{}, b.next.Delete(ctx, sessionID)
	})
	return err
}
