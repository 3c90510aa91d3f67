package http

import (
	"context"
	"net/http"
	"time"
)

type SessionHandler struct {
	svc        Storefront
	cookieName string
	timeout    time.Duration
}

func NewSessionHandler(svc Storefront, cookieName string, timeout time.Duration) *SessionHandler {
	return &SessionHandler{
		svc:        svc,
		cookieName: cookieName,
		timeout:    timeout,
	}
}

func (h *SessionHandler) Shop(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Shop())
}

// End discards the visitor's cart and ratings and expires the cookie.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.EndSession(ctx, getSessionIDFromContext(r.Context())); err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
