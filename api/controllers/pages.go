package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/internal/pages"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

// StaticPage serves the slug-addressed info pages.
func StaticPage(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pages service unavailable"))
			return
		}

		slug := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "slug")))
		page, err := svc.Get(slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
