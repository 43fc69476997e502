package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/webshoplab/orders/internal/server/http/handlers"
	testhelpers "github.com/webshoplab/orders/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupOrdersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := SetupOrders(testhelpers.OrderFacadeStub{}, testLogger())

	resp := performJSON(t, engine, http.MethodPost, "/order", map[string]any{
		"idempotencyKey": "key-1",
		"customerId":     "customer-1",
		"cartContent":    []map[string]any{{"productId": "p1", "quantity": 2}},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order creation, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodGet, "/order/byid/order-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order fetch, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodGet, "/order", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order list, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodDelete, "/order/byid/order-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order deletion, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodGet, "/info", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for info, got %d", resp.Code)
	}
}

func TestSetupCustomersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := SetupCustomers(testhelpers.CustomerFacadeStub{}, testLogger())

	resp := performJSON(t, engine, http.MethodPost, "/customer", map[string]any{
		"idempotencyKey": "key-1",
		"name":           "alice",
		"credit":         100.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for customer creation, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodPost, "/customer/credit/increment", map[string]any{
		"idempotencyKey": "order-1",
		"customerId":     "customer-1",
		"increment":      -25.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for credit increment, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodDelete, "/customer/credit/increment", map[string]any{
		"idempotencyKey": "order-1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for credit increment undo, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodGet, "/customer/byid/customer-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for customer fetch, got %d", resp.Code)
	}
}

func TestSetupProductsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := SetupProducts(testhelpers.ProductFacadeStub{}, testLogger())

	resp := performJSON(t, engine, http.MethodPost, "/product", map[string]any{
		"idempotencyKey": "key-1",
		"name":           "widget",
		"price":          9.5,
		"quantity":       20,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for product creation, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodPost, "/product/quantity/increment", map[string]any{
		"idempotencyKey": "order-1-p1",
		"productId":      "p1",
		"increment":      -2.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for quantity increment, got %d", resp.Code)
	}

	resp = performJSON(t, engine, http.MethodGet, "/product", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for product list, got %d", resp.Code)
	}
}

var _ handlers.OrderFacade = testhelpers.OrderFacadeStub{}
var _ handlers.CustomerFacade = testhelpers.CustomerFacadeStub{}
var _ handlers.ProductFacade = testhelpers.ProductFacadeStub{}
