package controllers

import (
	"net/http"
	"time"

	"github.com/sastaease/storefront-backend/api/middleware"
	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/internal/session"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

type sessionResponse struct {
	SignedIn  bool       `json:"signed_in"`
	UserID    string     `json:"user_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SessionCurrent reports the caller's session state. Anonymous callers get a
// signed-out body, not an error.
func SessionCurrent(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteSuccess(w, sessionResponse{SignedIn: false})
			return
		}

		resp := sessionResponse{
			SignedIn: true,
			UserID:   sess.UserID.String(),
			Email:    sess.Email,
		}
		if !sess.ExpiresAt.IsZero() {
			expires := sess.ExpiresAt
			resp.ExpiresAt = &expires
		}
		responses.WriteSuccess(w, resp)
	}
}

// SessionSignOut revokes the caller's session with the auth service. Signing
// out while already signed out succeeds.
func SessionSignOut(reader *session.Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if err := reader.SignOut(r.Context(), sess); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
