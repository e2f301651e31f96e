package cart

import (
	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/internal/catalog"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/shopspring/decimal"
)

// Item is one cart line joined with its product.
type Item struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	StockQuantity int             `json:"stock_quantity"`
}

// Cart is the authenticated user's cart with recomputed totals. Totals are
// never stored; they are derived from the lines on every read.
type Cart struct {
	Items  []Item `json:"items"`
	Totals Totals `json:"totals"`
}

// Count returns the summed quantity across lines.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// fromRecords maps joined rows into cart lines. Rows whose product join came
// back empty are dropped: the product no longer exists and the line cannot be
// priced or displayed.
func fromRecords(rows []backend.CartItem) []Item {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		if row.Product == nil {
			continue
		}
		items = append(items, Item{
			ID:            row.ID,
			ProductID:     row.ProductID,
			Name:          row.Product.Name,
			Category:      row.Product.Category,
			ImageURL:      catalog.ResolveImageURL(*row.Product),
			UnitPrice:     row.Product.Price,
			Quantity:      row.Quantity,
			LineTotal:     row.Product.Price.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2),
			StockQuantity: row.Product.StockQuantity,
		})
	}
	return items
}
