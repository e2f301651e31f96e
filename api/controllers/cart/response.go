package cart

import (
	cartsvc "github.com/sastaease/storefront-backend/internal/cart"
)

type cartResponse struct {
	Items  []cartsvc.Item `json:"items"`
	Totals cartsvc.Totals `json:"totals"`
	Count  int            `json:"count"`
}

type countResponse struct {
	Count int `json:"count"`
}

func toCartResponse(c *cartsvc.Cart) cartResponse {
	return cartResponse{
		Items:  c.Items,
		Totals: c.Totals,
		Count:  c.Count(),
	}
}
