package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/shopspring/decimal"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Categories is the fixed set the storefront sells.
var Categories = []string{"Clothing", "Watches", "Electronics", "Accessories"}

// ParseCategory normalizes a category filter value. Empty means "all".
func ParseCategory(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, CategoryAll) {
		return CategoryAll, nil
	}
	for _, candidate := range Categories {
		if strings.EqualFold(candidate, value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

var categoryPlaceholders = map[string]string{
	"Clothing":    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=600&h=600&fit=crop",
	"Watches":     "https://images.unsplash.com/photo-1522312346375-d1a52e2b99b3?w=600&h=600&fit=crop",
	"Electronics": "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=600&h=600&fit=crop",
	"Accessories": "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=600&h=600&fit=crop",
}

const defaultDescription = "This premium product combines quality craftsmanship with modern design. " +
	"Perfect for everyday use, it offers exceptional value and durability that you can count on."

// compareAtMarkup inflates the list price for the struck-through display
// price. Cosmetic only.
var compareAtMarkup = decimal.NewFromFloat(1.2)

// Product is the storefront's view of a catalog record.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	CompareAtPrice decimal.Decimal `json:"compare_at_price"`
	Category       string          `json:"category"`
	ImageURL       string          `json:"image_url"`
	StockQuantity  int             `json:"stock_quantity"`
	InStock        bool            `json:"in_stock"`
	Featured       bool            `json:"featured"`
	CreatedAt      time.Time       `json:"created_at"`
}

func fromRecord(rec backend.Product) Product {
	description := rec.Description
	if strings.TrimSpace(description) == "" {
		description = defaultDescription
	}
	return Product{
		ID:             rec.ID,
		Name:           rec.Name,
		Description:    description,
		Price:          rec.Price,
		CompareAtPrice: rec.Price.Mul(compareAtMarkup).Round(2),
		Category:       rec.Category,
		ImageURL:       ResolveImageURL(rec),
		StockQuantity:  rec.StockQuantity,
		InStock:        rec.StockQuantity > 0,
		Featured:       rec.Featured,
		CreatedAt:      rec.CreatedAt,
	}
}

func fromRecords(recs []backend.Product) []Product {
	out := make([]Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromRecord(rec))
	}
	return out
}

// ResolveImageURL falls back to a category placeholder when a product has no
// image of its own.
func ResolveImageURL(rec backend.Product) string {
	if rec.ImageURL != nil && strings.TrimSpace(*rec.ImageURL) != "" {
		return *rec.ImageURL
	}
	if placeholder, ok := categoryPlaceholders[rec.Category]; ok {
		return placeholder
	}
	return categoryPlaceholders["Accessories"]
}
