package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sastaease/storefront-backend/pkg/logger"
)

const (
	visitorCookieName = "se_visitor"
	visitorCookieAge  = 365 * 24 * time.Hour
)

// Visitor assigns each browser a stable anonymous identifier. The shop view
// state is keyed on it, so it must survive across requests.
func Visitor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if cookie, err := r.Cookie(visitorCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					visitorID = parsed.String()
				}
			}

			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookieName,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(visitorCookieAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			ctx = WithVisitorID(ctx, visitorID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
