package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sastaease/storefront-backend/api/middleware"
	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/api/validators"
	"github.com/sastaease/storefront-backend/internal/catalog"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

// maxPage bounds the page query parameter; the computed page is clamped to the
// real page count anyway.
const maxPage = 10000

// ShopBrowse serves the catalog page. Parameters that are absent from the
// query string leave the visitor's stored view state untouched; parameters
// that change a filter reset the page server-side.
func ShopBrowse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		visitorID := middleware.VisitorIDFromContext(r.Context())
		if visitorID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visitor context missing"))
			return
		}

		req, err := browseRequestFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Browse(r.Context(), visitorID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductDetail serves a single product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func browseRequestFromQuery(r *http.Request) (catalog.BrowseRequest, error) {
	var req catalog.BrowseRequest

	if raw, ok := validators.QueryString(r, "q"); ok {
		req.Query = &raw
	}

	if raw, ok := validators.QueryString(r, "category"); ok {
		category, err := catalog.ParseCategory(raw)
		if err != nil {
			return catalog.BrowseRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		req.Category = &category
	}

	if raw, ok := validators.QueryString(r, "sort"); ok {
		sortKey, err := catalog.ParseSortKey(raw)
		if err != nil {
			return catalog.BrowseRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key")
		}
		req.Sort = &sortKey
	}

	if r.URL.Query().Has("page") {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
		if err != nil {
			return catalog.BrowseRequest{}, err
		}
		req.Page = &page
	}

	return req, nil
}
