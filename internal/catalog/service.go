package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/config"
	"github.com/sastaease/storefront-backend/pkg/logger"
	"github.com/sastaease/storefront-backend/pkg/redis"
)

const productsCacheName = "products"

// Service exposes the catalog view-state operations.
type Service interface {
	// Browse folds the request into the visitor's stored view state and
	// recomputes the shop page against the full catalog.
	Browse(ctx context.Context, visitorID string, req BrowseRequest) (*ShopPage, error)
	// Featured returns the newest featured products for the home page.
	Featured(ctx context.Context) ([]Product, error)
	// Get returns a single product; unknown ids carry a /shop redirect.
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogCacheKey(name string) string
}

type service struct {
	repo  Repository
	cache cache
	views *ViewStateStore
	cfg   config.CatalogConfig
	logg  *logger.Logger
}

// ServiceParams wires the catalog service dependencies.
type ServiceParams struct {
	Repo      Repository
	Cache     cache
	ViewStore *ViewStateStore
	Config    config.CatalogConfig
	Logger    *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{
		repo:  params.Repo,
		cache: params.Cache,
		views: params.ViewStore,
		cfg:   params.Config,
		logg:  params.Logger,
	}
}

func (s *service) Browse(ctx context.Context, visitorID string, req BrowseRequest) (*ShopPage, error) {
	state, err := s.views.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	state = state.Apply(req)

	products, err := s.fullCatalog(ctx)
	if err != nil {
		return nil, err
	}

	page := ComputePage(products, state)

	if err := s.views.Save(ctx, visitorID, page.State); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *service) Featured(ctx context.Context) ([]Product, error) {
	limit := s.cfg.FeaturedLimit
	if limit <= 0 {
		limit = 6
	}
	rows, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return fromRecords(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	row, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product := fromRecord(*row)
	return &product, nil
}

// fullCatalog serves the product set from cache when fresh; cache trouble
// falls back to a direct read rather than failing the request.
func (s *service) fullCatalog(ctx context.Context) ([]Product, error) {
	key := s.cache.CatalogCacheKey(productsCacheName)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached []Product
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	} else if !redis.IsNotFound(err) && s.logg != nil {
		s.logg.Warn(ctx, "catalog cache read failed")
	}

	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := fromRecords(rows)

	if encoded, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cfg.CacheTTL); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache write failed")
		}
	}
	return products, nil
}
