package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/service"
)

type CartHandler struct {
	svc     Storefront
	timeout time.Duration
}

func NewCartHandler(svc Storefront, timeout time.Duration) *CartHandler {
	return &CartHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Outcome domain.Outcome  `json:"outcome,omitempty"`
	Cart    domain.CartView `json:"cart"`
}

type CheckoutResponse struct {
	Shop        domain.ShopInfo `json:"shop"`
	Cart        domain.CartView `json:"cart"`
	OrderPlaced bool            `json:"order_placed"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.ViewCart(ctx, getSessionIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &CartResponse{Cart: view})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	res, err := h.svc.AddToCart(ctx, getSessionIDFromContext(r.Context()), req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondMutation(w, http.StatusCreated, res)
}

// UpdateQuantity sets the absolute quantity; zero or negative removes the item.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > domain.MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity",
			fmt.Sprintf("quantity must not exceed %d", domain.MaxQuantity))
		return
	}

	res, err := h.svc.UpdateQuantity(ctx, getSessionIDFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondMutation(w, http.StatusOK, res)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	res, err := h.svc.RemoveFromCart(ctx, getSessionIDFromContext(r.Context()), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondMutation(w, http.StatusOK, res)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.Checkout(ctx, getSessionIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &CheckoutResponse{Shop: h.svc.Shop(), Cart: view})
}

func respondMutation(w http.ResponseWriter, status int, res service.Mutation) {
	respondJSON(w, status, &CartResponse{Outcome: res.Outcome, Cart: res.Cart})
}
