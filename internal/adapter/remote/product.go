package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

// ProductClient talks to the product service: price/stock reads and the
// idempotent quantity endpoints.
type ProductClient struct {
	client
}

// NewProductClient creates a product service client with default timeout.
func NewProductClient(baseURL string, logger *slog.Logger) (*ProductClient, error) {
	c, err := newClient(baseURL, logger)
	if err != nil {
		return nil, err
	}
	return &ProductClient{client: c}, nil
}

type productPayload struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Quantity         int64   `json:"quantity"`
	LastModification int64   `json:"lastModification"`
}

type quantityIncrementPayload struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	ProductID      string  `json:"productId"`
	Increment      float64 `json:"increment"`
}

// Fetch reads the current product document, mainly for its price.
func (c *ProductClient) Fetch(ctx context.Context, productID string) (*model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/product/byid", productID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data productPayload
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.Product{
			ID:               data.ID,
			Name:             data.Name,
			Price:            data.Price,
			Quantity:         data.Quantity,
			LastModification: data.LastModification,
		}, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("product %s: %w", productID, domainErrors.ErrNotFound)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("product request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("product service error: %s", resp.Status)
	}
}

// DecrementStock removes quantity units from the product's stock.
func (c *ProductClient) DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error {
	payload := quantityIncrementPayload{
		IdempotencyKey: idempotencyKey,
		ProductID:      productID,
		Increment:      -float64(quantity),
	}
	return c.send(ctx, http.MethodPost, c.endpoint("/product/quantity/increment"), payload)
}

// UndoDecrementStock reverses every stock decrement recorded under the key.
func (c *ProductClient) UndoDecrementStock(ctx context.Context, idempotencyKey string) error {
	return c.send(ctx, http.MethodDelete, c.endpoint("/product/quantity/increment"), undoPayload{IdempotencyKey: idempotencyKey})
}
