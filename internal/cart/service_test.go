package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/internal/session"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/sastaease/storefront-backend/pkg/config"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type stubRepository struct {
	items    []backend.CartItem
	products map[uuid.UUID]backend.Product

	upserts []backend.CartItemUpsert
	updates map[uuid.UUID]int
	deletes []uuid.UUID
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		products: map[uuid.UUID]backend.Product{},
		updates:  map[uuid.UUID]int{},
	}
}

func (s *stubRepository) ListItems(ctx context.Context, token string, userID uuid.UUID) ([]backend.CartItem, error) {
	return s.items, nil
}

func (s *stubRepository) UpsertItem(ctx context.Context, token string, item backend.CartItemUpsert) error {
	s.upserts = append(s.upserts, item)
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID && s.items[i].UserID == item.UserID {
			s.items[i].Quantity = item.Quantity
			return nil
		}
	}
	product, ok := s.products[item.ProductID]
	row := backend.CartItem{
		ID:        uuid.New(),
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if ok {
		row.Product = &product
	}
	s.items = append(s.items, row)
	return nil
}

func (s *stubRepository) UpdateQuantity(ctx context.Context, token string, itemID uuid.UUID, quantity int) error {
	s.updates[itemID] = quantity
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
		}
	}
	return nil
}

func (s *stubRepository) DeleteItem(ctx context.Context, token string, itemID uuid.UUID) error {
	s.deletes = append(s.deletes, itemID)
	kept := s.items[:0]
	for _, row := range s.items {
		if row.ID != itemID {
			kept = append(kept, row)
		}
	}
	s.items = kept
	return nil
}

func (s *stubRepository) GetProduct(ctx context.Context, token string, id uuid.UUID) (*backend.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &product, nil
}

type stubLocker struct {
	held     map[string]bool
	released []string
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: map[string]bool{}}
}

func (l *stubLocker) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *stubLocker) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(l.held, key)
		l.released = append(l.released, key)
	}
	return nil
}

func (l *stubLocker) CartItemLockKey(itemID string) string {
	return "se:cart_lock:" + itemID
}

func testSession() *session.Session {
	return &session.Session{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Token:  "token",
	}
}

func addProduct(repo *stubRepository, price string, stock int) backend.Product {
	product := backend.Product{
		ID:            uuid.New(),
		Name:          "Test Product",
		Price:         decimal.RequireFromString(price),
		Category:      "Watches",
		StockQuantity: stock,
	}
	repo.products[product.ID] = product
	return product
}

func newTestService(repo Repository, locks locker) Service {
	return NewService(ServiceParams{
		Repo:   repo,
		Locks:  locks,
		Config: config.CartConfig{ItemLockTTL: time.Second},
	})
}

func TestAddItemRequiresSession(t *testing.T) {
	svc := newTestService(newStubRepository(), newStubLocker())

	_, err := svc.AddItem(context.Background(), nil, uuid.New(), 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestAddItemRejectsOverStock(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 3)
	svc := newTestService(repo, newStubLocker())

	_, err := svc.AddItem(context.Background(), testSession(), product.ID, 5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Fatal("expected no remote write on stock rejection")
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newTestService(newStubRepository(), newStubLocker())

	_, err := svc.AddItem(context.Background(), testSession(), uuid.New(), 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestAddItemRepeatedAddOverwritesQuantity(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 10)
	svc := newTestService(repo, newStubLocker())
	sess := testSession()

	if _, err := svc.AddItem(context.Background(), sess, product.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(context.Background(), sess, product.ID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected single line got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity overwritten to 5 got %d", cart.Items[0].Quantity)
	}
	if len(repo.upserts) != 2 {
		t.Fatalf("expected 2 upserts got %d", len(repo.upserts))
	}
}

func TestUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 10)
	svc := newTestService(repo, newStubLocker())
	sess := testSession()

	cart, err := svc.AddItem(context.Background(), sess, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateQuantity(context.Background(), sess, itemID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity unchanged got %d", cart.Items[0].Quantity)
	}
	if len(repo.updates) != 0 {
		t.Fatal("expected no remote update for no-op")
	}
}

func TestUpdateQuantityRejectsOverStock(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 4)
	svc := newTestService(repo, newStubLocker())
	sess := testSession()

	cart, err := svc.AddItem(context.Background(), sess, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	itemID := cart.Items[0].ID

	_, err = svc.UpdateQuantity(context.Background(), sess, itemID, 9)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatal("expected no remote update on stock rejection")
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	repo := newStubRepository()
	svc := newTestService(repo, newStubLocker())

	_, err := svc.UpdateQuantity(context.Background(), testSession(), uuid.New(), 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestUpdateQuantityConflictsWhenLocked(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 10)
	locks := newStubLocker()
	svc := newTestService(repo, locks)
	sess := testSession()

	cart, err := svc.AddItem(context.Background(), sess, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	itemID := cart.Items[0].ID

	locks.held[locks.CartItemLockKey(itemID.String())] = true

	_, err = svc.UpdateQuantity(context.Background(), sess, itemID, 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict got %v", err)
	}
}

func TestUpdateQuantityReleasesLock(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 10)
	locks := newStubLocker()
	svc := newTestService(repo, locks)
	sess := testSession()

	cart, err := svc.AddItem(context.Background(), sess, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	itemID := cart.Items[0].ID

	if _, err := svc.UpdateQuantity(context.Background(), sess, itemID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locks.held[locks.CartItemLockKey(itemID.String())] {
		t.Fatal("expected lock released after update")
	}
}

func TestRemoveItemDeletesAndReloads(t *testing.T) {
	repo := newStubRepository()
	product := addProduct(repo, "20.00", 10)
	svc := newTestService(repo, newStubLocker())
	sess := testSession()

	cart, err := svc.AddItem(context.Background(), sess, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = svc.RemoveItem(context.Background(), sess, itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart got %d items", len(cart.Items))
	}
	if len(repo.deletes) != 1 || repo.deletes[0] != itemID {
		t.Fatalf("expected delete of %s got %v", itemID, repo.deletes)
	}
}

func TestGetCartComputesTotals(t *testing.T) {
	repo := newStubRepository()
	a := addProduct(repo, "20.00", 10)
	b := addProduct(repo, "15.00", 10)
	svc := newTestService(repo, newStubLocker())
	sess := testSession()

	if _, err := svc.AddItem(context.Background(), sess, a.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(context.Background(), sess, b.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cart.Totals.Subtotal.StringFixed(2); got != "55.00" {
		t.Fatalf("subtotal: expected 55.00 got %s", got)
	}
	if !cart.Totals.Shipping.IsZero() {
		t.Fatalf("shipping: expected 0 got %s", cart.Totals.Shipping)
	}
	if got := cart.Totals.Total.StringFixed(2); got != "59.40" {
		t.Fatalf("total: expected 59.40 got %s", got)
	}
	if cart.Count() != 3 {
		t.Fatalf("count: expected 3 got %d", cart.Count())
	}
}
