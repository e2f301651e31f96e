package controllers

import (
	"net/http"

	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/internal/catalog"
	"github.com/sastaease/storefront-backend/internal/pages"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

type homeResponse struct {
	HeroSlides []pages.HeroSlide `json:"hero_slides"`
	Features   []pages.Feature   `json:"features"`
	Featured   []catalog.Product `json:"featured"`
	Footer     pages.Footer      `json:"footer"`
}

// Home assembles the home page: carousel, selling points, and the featured
// product rail.
func Home(catalogSvc catalog.Service, pagesSvc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil || pagesSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "home service unavailable"))
			return
		}

		featured, err := catalogSvc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, homeResponse{
			HeroSlides: pagesSvc.HeroSlides(),
			Features:   pagesSvc.HomeFeatures(),
			Featured:   featured,
			Footer:     pagesSvc.Footer(),
		})
	}
}
