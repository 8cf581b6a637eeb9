package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
	"github.com/shopspring/decimal"
)

func setupService(t *testing.T, handler http.Handler) Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := rest.New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, logg, nil, nil)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	svc, err := NewService(client, logg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestUpdateStockWireFormat(t *testing.T) {
	var body map[string]any
	r := chi.NewRouter()
	r.Post("/inventory/products/3/update_stock/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       3,
			"name":     "Módulo Samsung A52",
			"quantity": 14,
		})
	})
	svc := setupService(t, r)

	product, err := svc.UpdateStock(context.Background(), 3, enums.MovementTypeIn, 10, "reposición del proveedor")
	if err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if product.Quantity != 14 {
		t.Fatalf("unexpected quantity %d", product.Quantity)
	}
	if body["movement_type"] != "in" || body["quantity"] != float64(10) || body["reason"] != "reposición del proveedor" {
		t.Fatalf("unexpected wire body %v", body)
	}
}

func TestUpdateStockValidation(t *testing.T) {
	svc := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Fatalf("invalid movements must not reach the network")
	}))
	ctx := context.Background()

	if _, err := svc.UpdateStock(ctx, 3, "restock", 1, ""); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation for unknown movement, got %v", err)
	}
	if _, err := svc.UpdateStock(ctx, 3, enums.MovementTypeOut, 0, ""); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation for zero quantity, got %v", err)
	}
}

func TestLowStockAlerts(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/inventory/products/low_stock_alerts/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Pin de carga", "quantity": 1, "min_stock": 5, "is_low_stock": true},
		})
	})
	svc := setupService(t, r)

	low, err := svc.LowStockAlerts(context.Background())
	if err != nil {
		t.Fatalf("low stock alerts: %v", err)
	}
	if len(low) != 1 || !low[0].IsLowStock {
		t.Fatalf("unexpected alerts %+v", low)
	}
}

func TestStatistics(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/inventory/products/statistics/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_products":        40,
			"low_stock_count":       3,
			"total_inventory_value": 125000.50,
			"categories_count":      6,
		})
	})
	svc := setupService(t, r)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalProducts != 40 || stats.LowStockCount != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !stats.TotalInventoryValue.Equal(decimal.RequireFromString("125000.5")) {
		t.Fatalf("unexpected inventory value %s", stats.TotalInventoryValue)
	}
}

func TestProductListFilters(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/inventory/products/", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("category") != "2" || q.Get("low_stock") != "true" || q.Get("is_active") != "true" {
			t.Fatalf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []any{}})
	})
	svc := setupService(t, r)

	active := true
	_, err := svc.ListProducts(context.Background(), ProductListParams{
		Category: 2,
		LowStock: true,
		Active:   &active,
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Fatalf("invalid input must not reach the network")
	}))

	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Category:  1,
		Name:      "Film templado",
		SKU:       "FLM-001",
		SalePrice: decimal.RequireFromString("-10"),
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
}
