package cart

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// updateQuantityRequest carries no bounds: quantities below 1 are a handled
// no-op, not a validation failure.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
