package http

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/enquiry"
	"github.com/fjod/go_cart/storefront/internal/service"
)

// Storefront is the core the handlers drive.
type Storefront interface {
	Shop() domain.ShopInfo
	ListProducts(ctx context.Context, sessionID, query string) ([]domain.RatedProduct, error)
	GetProduct(ctx context.Context, sessionID string, productID int64) (domain.RatedProduct, error)
	RateProduct(ctx context.Context, sessionID string, productID int64, rating int) (service.Mutation, error)
	ViewCart(ctx context.Context, sessionID string) (domain.CartView, error)
	Checkout(ctx context.Context, sessionID string) (domain.CartView, error)
	AddToCart(ctx context.Context, sessionID string, productID int64) (service.Mutation, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (service.Mutation, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int64) (service.Mutation, error)
	SubmitEnquiry(ctx context.Context, sub domain.Enquiry) enquiry.Result
	EndSession(ctx context.Context, sessionID string) error
}
