// Package cart implements the cart and rating operations over a visitor's
// SessionState. Every operation returns a new state; the input is never
// modified, so callers decide whether to persist the result.
package cart

import (
	"github.com/fjod/go_cart/storefront/internal/domain"
)

// ProductFinder is the catalog lookup the engine joins against.
type ProductFinder interface {
	FindByID(id int64) (domain.Product, bool)
}

type Engine struct {
	catalog ProductFinder
}

func NewEngine(catalog ProductFinder) *Engine {
	return &Engine{catalog: catalog}
}

// AddToCart increments the quantity of productID by one (absent counts as 0).
// Ids missing from the catalog are still stored; see OutcomeAcceptedUnlisted.
// An entry already at MaxQuantity is left as is.
func (e *Engine) AddToCart(state domain.SessionState, productID int64) (domain.SessionState, domain.Outcome) {
	if state.Cart.Quantity(productID) >= domain.MaxQuantity {
		return state.Clone(), domain.OutcomeIgnoredOutOfRange
	}
	next := state.Clone()
	next.Cart.Set(productID, next.Cart.Quantity(productID)+1)
	return next, e.acceptOutcome(productID)
}

// UpdateQuantity sets the absolute quantity. quantity <= 0 removes the entry;
// quantity above MaxQuantity is ignored.
func (e *Engine) UpdateQuantity(state domain.SessionState, productID int64, quantity int) (domain.SessionState, domain.Outcome) {
	if quantity <= 0 {
		return e.RemoveFromCart(state, productID)
	}
	if quantity > domain.MaxQuantity {
		return state.Clone(), domain.OutcomeIgnoredOutOfRange
	}
	next := state.Clone()
	next.Cart.Set(productID, quantity)
	return next, e.acceptOutcome(productID)
}

func (e *Engine) RemoveFromCart(state domain.SessionState, productID int64) (domain.SessionState, domain.Outcome) {
	if !state.Cart.Has(productID) {
		return state.Clone(), domain.OutcomeNoOp
	}
	next := state.Clone()
	next.Cart.Delete(productID)
	return next, domain.OutcomeRemoved
}

// RateProduct overwrites the rating for productID. Ratings outside 1..5 are
// dropped without touching the state.
func (e *Engine) RateProduct(state domain.SessionState, productID int64, rating int) (domain.SessionState, domain.Outcome) {
	if !domain.ValidRating(rating) {
		return state.Clone(), domain.OutcomeIgnoredOutOfRange
	}
	next := state.Clone()
	next.Ratings[productID] = rating
	return next, domain.OutcomeApplied
}

// RenderCart joins the cart against the catalog in cart order. Entries whose
// product is unknown are left out of the lines and listed in Omitted.
func (e *Engine) RenderCart(state domain.SessionState) domain.CartView {
	view := domain.CartView{Lines: make([]domain.CartLine, 0, state.Cart.Len())}
	for _, item := range state.Cart.Items() {
		product, ok := e.catalog.FindByID(item.ProductID)
		if !ok {
			view.Omitted = append(view.Omitted, item.ProductID)
			continue
		}
		subtotal := product.Price * int64(item.Quantity)
		view.Lines = append(view.Lines, domain.CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
		view.ItemCount += item.Quantity
	}
	return view
}

// Rating returns the visitor's rating for productID, 0 when unrated.
func (e *Engine) Rating(state domain.SessionState, productID int64) int {
	return state.Ratings[productID]
}

func (e *Engine) acceptOutcome(productID int64) domain.Outcome {
	if _, ok := e.catalog.FindByID(productID); !ok {
		return domain.OutcomeAcceptedUnlisted
	}
	return domain.OutcomeApplied
}
