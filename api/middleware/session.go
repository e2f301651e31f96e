package middleware

import (
	"net/http"
	"strings"

	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/internal/session"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

const bearerPrefix = "Bearer "

// ResolveSession resolves the caller's session from the Authorization header
// and stores it on the context. Anonymous requests pass through with a nil
// session; only auth service transport trouble fails the request.
func ResolveSession(reader *session.Reader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := reader.Current(ctx, bearerToken(r))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			if sess != nil && logg != nil {
				ctx = logg.WithUserID(ctx, sess.UserID.String())
			}
			ctx = WithSession(ctx, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with a sign-in redirect hint.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				err := pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to continue").
					WithDetails(map[string]any{"redirect": "/auth"})
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
