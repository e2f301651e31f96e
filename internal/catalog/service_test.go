package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/sastaease/storefront-backend/pkg/config"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	values map[string]string
	failed bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	if f.failed {
		return "", errors.New("store down")
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.failed {
		return errors.New("store down")
	}
	f.values[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeStore) CatalogCacheKey(name string) string {
	return "se:catalog:" + name
}

func (f *fakeStore) ShopViewKey(visitorID string) string {
	return "se:shop_view:" + visitorID
}

type stubRepository struct {
	products []backend.Product
	calls    int
	err      error
}

func (s *stubRepository) ListProducts(ctx context.Context) ([]backend.Product, error) {
	s.calls++
	return s.products, s.err
}

func (s *stubRepository) ListFeatured(ctx context.Context, limit int) ([]backend.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []backend.Product{}
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepository) GetProduct(ctx context.Context, id uuid.UUID) (*backend.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func buildRecords(count int) []backend.Product {
	records := make([]backend.Product, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, backend.Product{
			ID:            uuid.New(),
			Name:          fmt.Sprintf("Product %02d", i),
			Price:         decimal.NewFromInt(int64(10 + i)),
			Category:      Categories[i%len(Categories)],
			StockQuantity: 5,
			Featured:      i < 8,
		})
	}
	return records
}

func newTestService(repo Repository, store *fakeStore) Service {
	return NewService(ServiceParams{
		Repo:      repo,
		Cache:     store,
		ViewStore: NewViewStateStore(store, time.Minute),
		Config:    config.CatalogConfig{CacheTTL: time.Minute, FeaturedLimit: 6},
	})
}

func TestBrowseServesFromCacheAfterFirstRead(t *testing.T) {
	repo := &stubRepository{products: buildRecords(30)}
	store := newFakeStore()
	svc := newTestService(repo, store)

	if _, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected single backend read got %d", repo.calls)
	}
}

func TestBrowsePersistsViewStateAcrossRequests(t *testing.T) {
	repo := &stubRepository{products: buildRecords(30)}
	store := newFakeStore()
	svc := newTestService(repo, store)

	page, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{Page: intPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 3 {
		t.Fatalf("expected page 3 got %d", page.Page)
	}

	// Next request sends nothing; the stored state keeps the page.
	page, err = svc.Browse(context.Background(), "visitor-1", BrowseRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 3 {
		t.Fatalf("expected stored page 3 got %d", page.Page)
	}
}

func TestBrowseFilterChangeResetsStoredPage(t *testing.T) {
	repo := &stubRepository{products: buildRecords(60)}
	store := newFakeStore()
	svc := newTestService(repo, store)

	if _, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{Page: intPtr(3)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	category := "Watches"
	page, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{Category: &category, Page: intPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("expected page reset to 1 got %d", page.Page)
	}
	if page.State.Category != "Watches" {
		t.Fatalf("expected category applied got %q", page.State.Category)
	}
}

func TestBrowseIsolatesVisitors(t *testing.T) {
	repo := &stubRepository{products: buildRecords(30)}
	store := newFakeStore()
	svc := newTestService(repo, store)

	if _, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{Page: intPtr(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page, err := svc.Browse(context.Background(), "visitor-2", BrowseRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("expected fresh visitor on page 1 got %d", page.Page)
	}
}

func TestBrowseCorruptViewStateRecreated(t *testing.T) {
	repo := &stubRepository{products: buildRecords(10)}
	store := newFakeStore()
	store.values[store.ShopViewKey("visitor-1")] = "{not json"
	svc := newTestService(repo, store)

	page, err := svc.Browse(context.Background(), "visitor-1", BrowseRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.State.Category != CategoryAll {
		t.Fatalf("expected default state got %+v", page.State)
	}
}

func TestFeaturedMapsRecords(t *testing.T) {
	repo := &stubRepository{products: buildRecords(12)}
	svc := newTestService(repo, newFakeStore())

	featured, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(featured) != 6 {
		t.Fatalf("expected 6 featured got %d", len(featured))
	}
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("expected featured product got %+v", p)
		}
		if p.ImageURL == "" {
			t.Fatal("expected placeholder image for product without image")
		}
		if !p.CompareAtPrice.GreaterThan(p.Price) {
			t.Fatalf("expected compare-at above price: %s vs %s", p.CompareAtPrice, p.Price)
		}
	}
}
