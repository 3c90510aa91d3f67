package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/enquiry"
)

type EnquiryHandler struct {
	svc     Storefront
	timeout time.Duration
}

func NewEnquiryHandler(svc Storefront, timeout time.Duration) *EnquiryHandler {
	return &EnquiryHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type EnquiryResponse struct {
	Enquiry domain.Enquiry `json:"enquiry"`
}

// EnquiryErrorResponse carries the submitted values back so the form can be
// redisplayed pre-filled.
type EnquiryErrorResponse struct {
	Errors []enquiry.FieldError `json:"errors"`
	Values domain.Enquiry       `json:"values"`
}

func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.Enquiry
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res := h.svc.SubmitEnquiry(ctx, req)
	if !res.Valid() {
		respondJSON(w, http.StatusUnprocessableEntity, &EnquiryErrorResponse{
			Errors: res.Errors,
			Values: res.Input,
		})
		return
	}

	respondJSON(w, http.StatusOK, &EnquiryResponse{Enquiry: *res.Sanitized})
}
