package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/internal/session"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/sastaease/storefront-backend/pkg/config"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

// Service exposes the cart operations. Every mutation is pessimistic: the
// remote write must succeed before the cart is re-read and returned, so the
// response always reflects persisted state.
type Service interface {
	GetCart(ctx context.Context, sess *session.Session) (*Cart, error)
	CountItems(ctx context.Context, sess *session.Session) (int, error)
	AddItem(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (*Cart, error)
	UpdateQuantity(ctx context.Context, sess *session.Session, itemID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sess *session.Session, itemID uuid.UUID) (*Cart, error)
}

type locker interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	CartItemLockKey(itemID string) string
}

type service struct {
	repo  Repository
	locks locker
	cfg   config.CartConfig
	logg  *logger.Logger
}

// ServiceParams wires the cart service dependencies.
type ServiceParams struct {
	Repo   Repository
	Locks  locker
	Config config.CartConfig
	Logger *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{
		repo:  params.Repo,
		locks: params.Locks,
		cfg:   params.Config,
		logg:  params.Logger,
	}
}

func (s *service) GetCart(ctx context.Context, sess *session.Session) (*Cart, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, sess)
}

func (s *service) CountItems(ctx context.Context, sess *session.Session) (int, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	cart, err := s.loadCart(ctx, sess)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

// AddItem writes the requested quantity for (user, product). A repeated add
// overwrites the stored quantity rather than incrementing it.
func (s *service) AddItem(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (*Cart, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.repo.GetProduct(ctx, sess.Token, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.StockQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"available": product.StockQuantity})
	}

	upsert := backend.CartItemUpsert{
		UserID:    sess.UserID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.UpsertItem(ctx, sess.Token, upsert); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, sess)
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are a no-op that
// returns the current cart; removal is its own operation.
func (s *service) UpdateQuantity(ctx context.Context, sess *session.Session, itemID uuid.UUID, quantity int) (*Cart, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return s.loadCart(ctx, sess)
	}

	release, err := s.lockItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	defer release()

	item, err := s.findItem(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	if item.Product != nil && quantity > item.Product.StockQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"available": item.Product.StockQuantity})
	}

	if err := s.repo.UpdateQuantity(ctx, sess.Token, itemID, quantity); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, sess)
}

func (s *service) RemoveItem(ctx context.Context, sess *session.Session, itemID uuid.UUID) (*Cart, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	release, err := s.lockItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.findItem(ctx, sess, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, sess.Token, itemID); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, sess)
}

func (s *service) loadCart(ctx context.Context, sess *session.Session) (*Cart, error) {
	rows, err := s.repo.ListItems(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	items := fromRecords(rows)
	return &Cart{
		Items:  items,
		Totals: ComputeTotals(items),
	}, nil
}

// findItem resolves one of the caller's cart rows by primary key. The listing
// is already scoped to the session user, so a missing row covers both unknown
// ids and rows owned by someone else.
func (s *service) findItem(ctx context.Context, sess *session.Session, itemID uuid.UUID) (*backend.CartItem, error) {
	rows, err := s.repo.ListItems(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == itemID {
			return &rows[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// lockItem takes the per-item mutation lock. The TTL bounds how long a lock
// can outlive a crashed request.
func (s *service) lockItem(ctx context.Context, itemID uuid.UUID) (func(), error) {
	ttl := s.cfg.ItemLockTTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	key := s.locks.CartItemLockKey(itemID.String())

	acquired, err := s.locks.SetNX(ctx, key, "1", ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart item lock")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart item is already being updated")
	}

	release := func() {
		if err := s.locks.Del(ctx, key); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "release cart item lock failed")
		}
	}
	return release, nil
}

func requireSession(sess *session.Session) error {
	if sess == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to manage your cart").
			WithDetails(map[string]any{"redirect": "/auth"})
	}
	return nil
}
