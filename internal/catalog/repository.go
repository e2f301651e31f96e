package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/backend"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
)

// Repository reads catalog records from the external service. Catalog reads
// are anonymous: product rows are world-readable.
type Repository interface {
	ListProducts(ctx context.Context) ([]backend.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]backend.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*backend.Product, error)
}

type backendRepository struct {
	client *backend.Client
}

// NewRepository builds the catalog repository over the backend client.
func NewRepository(client *backend.Client) Repository {
	return &backendRepository{client: client}
}

func (r *backendRepository) ListProducts(ctx context.Context) ([]backend.Product, error) {
	var rows []backend.Product
	err := r.client.From(backend.ProductsCollection).
		OrderDesc("created_at").
		Fetch(ctx, "", &rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (r *backendRepository) ListFeatured(ctx context.Context, limit int) ([]backend.Product, error) {
	var rows []backend.Product
	err := r.client.From(backend.ProductsCollection).
		Eq("featured", true).
		OrderDesc("created_at").
		Limit(limit).
		Fetch(ctx, "", &rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return rows, nil
}

func (r *backendRepository) GetProduct(ctx context.Context, id uuid.UUID) (*backend.Product, error) {
	var row backend.Product
	err := r.client.From(backend.ProductsCollection).
		Eq("id", id).
		Single().
		Fetch(ctx, "", &row)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found").
				WithDetails(map[string]any{"redirect": "/shop"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch product")
	}
	return &row, nil
}
