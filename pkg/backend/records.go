package backend

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection names on the external records API.
const (
	ProductsCollection  = "products"
	CartItemsCollection = "cart_items"
)

// Product mirrors a row of the products collection.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      *string         `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	Featured      bool            `json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CartItem mirrors a row of the cart_items collection. Product is populated
// when the read joins the related products collection.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	Product   *Product  `json:"product,omitempty"`
}

// CartItemUpsert is the write payload for adds; the conflict key is
// (user_id, product_id), so a repeated add overwrites the existing row.
type CartItemUpsert struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CartItemConflictKey is the composite upsert conflict target.
const CartItemConflictKey = "user_id,product_id"

// QuantityPatch updates a cart row's quantity by primary key.
type QuantityPatch struct {
	Quantity int `json:"quantity"`
}
