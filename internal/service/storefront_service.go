package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/enquiry"
	"github.com/fjod/go_cart/storefront/internal/session"
	"github.com/fjod/go_cart/storefront/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// sharedLoadTimeout bounds a coalesced load, which outlives any single caller.
const sharedLoadTimeout = 5 * time.Second

// Mutation is the result of a state-changing operation.
type Mutation struct {
	State   domain.SessionState
	Outcome domain.Outcome
	Cart    domain.CartView
}

type StorefrontService struct {
	catalog *catalog.Catalog
	engine  *cart.Engine
	store   session.Store
	locks   *session.Locker
	shop    domain.ShopInfo
	log     *zap.Logger
	sfg     singleflight.Group // coalesces concurrent reads of one session
}

func NewStorefrontService(c *catalog.Catalog, store session.Store, shop domain.ShopInfo, log *zap.Logger) *StorefrontService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StorefrontService{
		catalog: c,
		engine:  cart.NewEngine(c),
		store:   store,
		locks:   session.NewLocker(),
		shop:    shop,
		log:     log,
	}
}

func (s *StorefrontService) Shop() domain.ShopInfo {
	return s.shop
}

// ListProducts searches the catalog and overlays the visitor's ratings.
func (s *StorefrontService) ListProducts(ctx context.Context, sessionID, query string) ([]domain.RatedProduct, error) {
	state, err := s.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	products := s.catalog.Search(query)
	out := make([]domain.RatedProduct, len(products))
	for i, p := range products {
		out[i] = domain.RatedProduct{Product: p, Rating: s.engine.Rating(state, p.ID)}
	}
	return out, nil
}

func (s *StorefrontService) GetProduct(ctx context.Context, sessionID string, productID int64) (domain.RatedProduct, error) {
	p, ok := s.catalog.FindByID(productID)
	if !ok {
		return domain.RatedProduct{}, ErrProductNotFound
	}
	state, err := s.read(ctx, sessionID)
	if err != nil {
		return domain.RatedProduct{}, err
	}
	return domain.RatedProduct{Product: p, Rating: s.engine.Rating(state, p.ID)}, nil
}

func (s *StorefrontService) ViewCart(ctx context.Context, sessionID string) (domain.CartView, error) {
	state, err := s.read(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}
	return s.engine.RenderCart(state), nil
}

// Checkout returns the read-only order summary. No order is placed.
func (s *StorefrontService) Checkout(ctx context.Context, sessionID string) (domain.CartView, error) {
	return s.ViewCart(ctx, sessionID)
}

func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, productID int64) (Mutation, error) {
	return s.mutate(ctx, sessionID, "add_to_cart", func(st domain.SessionState) (domain.SessionState, domain.Outcome) {
		return s.engine.AddToCart(st, productID)
	}, zap.Int64("product_id", productID))
}

func (s *StorefrontService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Mutation, error) {
	return s.mutate(ctx, sessionID, "update_quantity", func(st domain.SessionState) (domain.SessionState, domain.Outcome) {
		return s.engine.UpdateQuantity(st, productID, quantity)
	}, zap.Int64("product_id", productID), zap.Int("quantity", quantity))
}

func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (Mutation, error) {
	return s.mutate(ctx, sessionID, "remove_from_cart", func(st domain.SessionState) (domain.SessionState, domain.Outcome) {
		return s.engine.RemoveFromCart(st, productID)
	}, zap.Int64("product_id", productID))
}

func (s *StorefrontService) RateProduct(ctx context.Context, sessionID string, productID int64, rating int) (Mutation, error) {
	return s.mutate(ctx, sessionID, "rate_product", func(st domain.SessionState) (domain.SessionState, domain.Outcome) {
		return s.engine.RateProduct(st, productID, rating)
	}, zap.Int64("product_id", productID), zap.Int("rating", rating))
}

// SubmitEnquiry validates a contact form submission. Nothing is stored.
func (s *StorefrontService) SubmitEnquiry(ctx context.Context, sub domain.Enquiry) enquiry.Result {
	res := enquiry.Validate(sub)
	log := logger.WithContext(ctx, s.log)
	if !res.Valid() {
		log.Info("enquiry rejected", zap.Strings("errors", res.Messages()))
		return res
	}
	log.Info("enquiry accepted", zap.Int("message_length", len(res.Input.Message)))
	return res
}

// EndSession discards the visitor's state.
func (s *StorefrontService) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	s.sfg.Forget(sessionID)
	logger.WithContext(ctx, s.log).Info("session ended", logger.SessionField(sessionID))
	return nil
}

// read loads state without the session lock. Store.Load creates atomically,
// so a read can never overwrite a concurrent mutation. The shared load is
// detached from the first caller's cancellation; each caller still stops
// waiting when its own ctx ends.
func (s *StorefrontService) read(ctx context.Context, sessionID string) (domain.SessionState, error) {
	ch := s.sfg.DoChan(sessionID, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return s.store.Load(loadCtx, sessionID)
	})

	select {
	case <-ctx.Done():
		return domain.SessionState{}, fmt.Errorf("failed to load session: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			logger.WithContext(ctx, s.log).Error("session load failed", logger.SessionField(sessionID), zap.Error(res.Err))
			return domain.SessionState{}, fmt.Errorf("failed to load session: %w", res.Err)
		}
		return res.Val.(domain.SessionState), nil
	}
}

func (s *StorefrontService) mutate(
	ctx context.Context,
	sessionID, op string,
	apply func(domain.SessionState) (domain.SessionState, domain.Outcome),
	fields ...zap.Field,
) (Mutation, error) {
	log := logger.WithContext(ctx, s.log).With(append(fields, zap.String("op", op), logger.SessionField(sessionID))...)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Error("session load failed", zap.Error(err))
		return Mutation{}, fmt.Errorf("failed to load session: %w", err)
	}

	next, outcome := apply(state)
	if outcome.Changed() {
		if err := s.store.Save(ctx, sessionID, next); err != nil {
			log.Error("session save failed", zap.Error(err))
			return Mutation{}, fmt.Errorf("failed to save session: %w", err)
		}
		// reads starting from now must not join a load begun before the save
		s.sfg.Forget(sessionID)
	}
	log.Debug("session updated", zap.String("outcome", string(outcome)))

	return Mutation{
		State:   next,
		Outcome: outcome,
		Cart:    s.engine.RenderCart(next),
	}, nil
}
