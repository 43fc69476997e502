package dto

// CreateCustomerRequest describes the customer creation payload.
type CreateCustomerRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	Name           string  `json:"name"`
	Credit         float64 `json:"credit"`
}

// CreateProductRequest describes the product creation payload.
type CreateProductRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int64   `json:"quantity"`
}

// CreateEntityResponse carries the id of the created entity.
type CreateEntityResponse struct {
	ID string `json:"id"`
}

// CustomerResponse describes a stored customer.
type CustomerResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Credit           float64 `json:"credit"`
	Creation         int64   `json:"creation"`
	LastModification int64   `json:"lastModification"`
}

// ProductResponse describes a stored product.
type ProductResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Quantity         int64   `json:"quantity"`
	Creation         int64   `json:"creation"`
	LastModification int64   `json:"lastModification"`
}
