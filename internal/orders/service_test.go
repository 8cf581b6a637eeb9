package orders

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

func TestUpdateStatusWireFormat(t *testing.T) {
	var body map[string]string
	r := chi.NewRouter()
	r.Post("/orders/orders/7/update_status/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           7,
			"order_number": "ORD-000007",
			"status":       body["status"],
		})
	})
	svc := setupService(t, r)

	order, err := svc.UpdateStatus(context.Background(), 7, enums.OrderStatusReady, "queda en mostrador")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if order.Status != enums.OrderStatusReady {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if body["status"] != "ready" || body["notes"] != "queda en mostrador" {
		t.Fatalf("unexpected wire body %v", body)
	}
}

func TestUpdateStatusUnknown(t *testing.T) {
	svc := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Fatalf("unknown statuses must not reach the network")
	}))
	_, err := svc.UpdateStatus(context.Background(), 7, "in_repair", "")
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/orders/", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("status") != "in_service" || q.Get("search") != "samsung" {
			t.Fatalf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 2,
			"results": []map[string]any{
				{"id": 1, "order_number": "ORD-000001", "status": "in_service"},
				{"id": 2, "order_number": "ORD-000002", "status": "in_service"},
			},
		})
	})
	svc := setupService(t, r)

	page, err := svc.List(context.Background(), ListParams{
		ListParams: rest.ListParams{Search: "samsung"},
		Status:     "in_service",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestMyOrdersBareArray(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/orders/my_orders/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 3, "order_number": "ORD-000003", "status": "received"},
		})
	})
	svc := setupService(t, r)

	mine, err := svc.MyOrders(context.Background())
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}
	if len(mine) != 1 || mine[0].OrderNumber != "ORD-000003" {
		t.Fatalf("unexpected orders %+v", mine)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Fatalf("invalid input must not reach the network")
	}))

	_, err := svc.Create(context.Background(), OrderInput{
		Customer:   1,
		DeviceType: "smartwatch",
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
}
