package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/backend"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
)

// cartItemSelect joins each line with its product row in one read.
const cartItemSelect = "*,product:products(*)"

// Repository moves cart rows through the external records API. Every call
// carries the caller's token: row-level security on the other side scopes
// reads and writes to the owning user.
type Repository interface {
	ListItems(ctx context.Context, token string, userID uuid.UUID) ([]backend.CartItem, error)
	UpsertItem(ctx context.Context, token string, item backend.CartItemUpsert) error
	UpdateQuantity(ctx context.Context, token string, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, token string, itemID uuid.UUID) error
	GetProduct(ctx context.Context, token string, id uuid.UUID) (*backend.Product, error)
}

type backendRepository struct {
	client *backend.Client
}

// NewRepository builds the cart repository over the backend client.
func NewRepository(client *backend.Client) Repository {
	return &backendRepository{client: client}
}

func (r *backendRepository) ListItems(ctx context.Context, token string, userID uuid.UUID) ([]backend.CartItem, error) {
	var rows []backend.CartItem
	err := r.client.From(backend.CartItemsCollection).
		Select(cartItemSelect).
		Eq("user_id", userID).
		OrderDesc("created_at").
		Fetch(ctx, token, &rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return rows, nil
}

func (r *backendRepository) UpsertItem(ctx context.Context, token string, item backend.CartItemUpsert) error {
	err := r.client.Upsert(ctx, token, backend.CartItemsCollection, item, backend.CartItemConflictKey)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
	}
	return nil
}

func (r *backendRepository) UpdateQuantity(ctx context.Context, token string, itemID uuid.UUID, quantity int) error {
	patch := backend.QuantityPatch{Quantity: quantity}
	if err := r.client.Update(ctx, token, backend.CartItemsCollection, itemID, patch); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item quantity")
	}
	return nil
}

func (r *backendRepository) DeleteItem(ctx context.Context, token string, itemID uuid.UUID) error {
	if err := r.client.Delete(ctx, token, backend.CartItemsCollection, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	return nil
}

func (r *backendRepository) GetProduct(ctx context.Context, token string, id uuid.UUID) (*backend.Product, error) {
	var row backend.Product
	err := r.client.From(backend.ProductsCollection).
		Eq("id", id).
		Single().
		Fetch(ctx, token, &row)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found").
				WithDetails(map[string]any{"redirect": "/shop"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch product")
	}
	return &row, nil
}
