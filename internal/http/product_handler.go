package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type ProductHandler struct {
	svc     Storefront
	timeout time.Duration
}

func NewProductHandler(svc Storefront, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.RatedProduct `json:"products"`
	Search   string                `json:"search,omitempty"`
}

type RateRequestDTO struct {
	Rating int `json:"rating"`
}

type RateResponse struct {
	ProductID int64          `json:"product_id"`
	Rating    int            `json:"rating"`
	Outcome   domain.Outcome `json:"outcome"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	search := r.URL.Query().Get("search")
	products, err := h.svc.ListProducts(ctx, getSessionIDFromContext(r.Context()), search)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products, Search: search})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.svc.GetProduct(ctx, getSessionIDFromContext(r.Context()), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Rate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req RateRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// out-of-range ratings are a no-op in the core, reported via the outcome
	res, err := h.svc.RateProduct(ctx, getSessionIDFromContext(r.Context()), productID, req.Rating)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &RateResponse{
		ProductID: productID,
		Rating:    res.State.Ratings[productID],
		Outcome:   res.Outcome,
	})
}
