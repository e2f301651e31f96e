package pages

import (
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
)

// Service serves the storefront's static content: the home page furniture and
// the slug-addressed info pages. Content ships with the binary; there is no
// remote read behind it.
type Service interface {
	HeroSlides() []HeroSlide
	HomeFeatures() []Feature
	Footer() Footer
	Get(slug string) (*Page, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) HeroSlides() []HeroSlide {
	return heroSlides
}

func (s *service) HomeFeatures() []Feature {
	return homeFeatures
}

func (s *service) Footer() Footer {
	return siteFooter
}

func (s *service) Get(slug string) (*Page, error) {
	page, ok := staticPages[slug]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found").
			WithDetails(map[string]any{"redirect": "/"})
	}
	return &page, nil
}
