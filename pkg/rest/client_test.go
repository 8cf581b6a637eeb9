package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/puntotecno/terminal/pkg/config"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, logg, nil, nil)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	return client
}

func TestErrorDetailExtracted(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/orders/9/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No encontrado."})
	})
	client := newTestClient(t, r)

	err := client.Get(context.Background(), "/orders/orders/9/", nil, nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected CodeNotFound got %v", err)
	}
	if got := pkgerrors.As(err).PublicMessage(); got != "No encontrado." {
		t.Fatalf("expected server detail, got %q", got)
	}
}

func TestFieldErrorsJoined(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/sales/sales/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"items":          {"Este campo es requerido."},
			"payment_method": {"Selección inválida."},
		})
	})
	client := newTestClient(t, r)

	err := client.Post(context.Background(), "/sales/sales/", map[string]string{}, nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
	want := "items: Este campo es requerido.; payment_method: Selección inválida."
	if got := pkgerrors.As(err).PublicMessage(); got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestServerErrorMapsToDependency(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/inventory/products/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, r)

	err := client.Get(context.Background(), "/inventory/products/", nil, nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected CodeDependency got %v", err)
	}
}

func TestUnauthorizedWithoutProviderIsNotRetried(t *testing.T) {
	calls := 0
	r := chi.NewRouter()
	r.Post("/token/", func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "credenciales inválidas"})
	})
	client := newTestClient(t, r)

	err := client.Post(context.Background(), "/token/", map[string]string{}, nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected CodeUnauthorized got %v", err)
	}
	if calls != 1 {
		t.Fatalf("unauthenticated client must not replay, got %d calls", calls)
	}
}

func TestLargeResponseReadInFull(t *testing.T) {
	type product struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		SKU  string `json:"sku"`
	}
	// Well past the cap applied to error bodies.
	items := make([]product, 500)
	for i := range items {
		items[i] = product{
			ID:   i + 1,
			Name: strings.Repeat("x", 200),
			SKU:  fmt.Sprintf("SKU-%04d", i+1),
		}
	}

	r := chi.NewRouter()
	r.Get("/inventory/products/", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(items)
	})
	client := newTestClient(t, r)

	var out []product
	if err := client.Get(context.Background(), "/inventory/products/", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != len(items) {
		t.Fatalf("expected %d items got %d", len(items), len(out))
	}
	if out[len(out)-1].SKU != "SKU-0500" {
		t.Fatalf("tail of the response lost: %+v", out[len(out)-1])
	}
}

func TestNetworkErrorMapsToDependency(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := New(config.APIConfig{BaseURL: server.URL, Timeout: time.Second}, logg, nil, nil)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}

	err = client.Get(context.Background(), "/ping/", nil, nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected CodeDependency got %v", err)
	}
}
