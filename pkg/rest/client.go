package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/puntotecno/terminal/pkg/config"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/metrics"
)

const maxErrorBodyBytes = 64 << 10

// AuthProvider supplies the bearer token for outgoing requests, performs
// the single refresh attempt after a 401, and discards the session when the
// server rejects a freshly refreshed token. Implemented by the session guard.
type AuthProvider interface {
	AccessToken(ctx context.Context) (string, bool)
	Refresh(ctx context.Context) error
	Invalidate(ctx context.Context)
}

// Client is the transport to the remote PuntoTecno API. A client built
// without an AuthProvider sends unauthenticated requests and never retries;
// the token endpoints themselves are called through such a client.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logg    *logger.Logger
	metrics *metrics.RequestMetrics
	auth    AuthProvider
}

// New builds a transport for the configured base URL.
func New(cfg config.APIConfig, logg *logger.Logger, m *metrics.RequestMetrics, auth AuthProvider) (*Client, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		logg:    logg,
		metrics: m,
		auth:    auth,
	}, nil
}

// WithAuth returns a clone of the client that authenticates through the
// provided AuthProvider. The underlying http.Client is shared.
func (c *Client) WithAuth(auth AuthProvider) *Client {
	clone := *c
	clone.auth = auth
	return &clone
}

// Get issues a GET and decodes the response into out when non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE. The remote API answers 204 on success.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		payload = encoded
	}

	status, respBody, err := c.roundTrip(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	// A 401 on an authenticated client gets exactly one refresh-and-replay.
	if status == http.StatusUnauthorized && c.auth != nil {
		c.metrics.IncRefresh()
		if refreshErr := c.auth.Refresh(ctx); refreshErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeSessionExpired, refreshErr, "")
		}
		status, respBody, err = c.roundTrip(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// The server rejected a token it just minted; the session is
			// unusable and must not survive for the next screen.
			c.auth.Invalidate(ctx)
			return pkgerrors.New(pkgerrors.CodeSessionExpired, "")
		}
	}

	if status < 200 || status >= 300 {
		c.metrics.IncFailure(method, path, status)
		return decodeAPIError(status, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response body")
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	target := *c.baseURL
	target.Path = strings.TrimSuffix(target.Path, "/") + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if token, ok := c.auth.AccessToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(method, path, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(method, path, 0)
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "")
	}
	defer resp.Body.Close()

	// Only error bodies are capped; a success body must be read in full so
	// large list responses decode intact.
	reader = io.Reader(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reader = io.LimitReader(resp.Body, maxErrorBodyBytes)
	}
	respBody, err := io.ReadAll(reader)
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading response body")
	}
	return resp.StatusCode, respBody, nil
}

// decodeAPIError converts an error response into a coded error, preferring
// the DRF "detail" message and falling back to field-level errors.
func decodeAPIError(status int, body []byte) error {
	code := pkgerrors.FromHTTPStatus(status)

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return pkgerrors.New(code, detail.Detail)
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			if len(fields[key]) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", key, fields[key][0]))
			}
		}
		if len(parts) > 0 {
			return pkgerrors.New(code, strings.Join(parts, "; "))
		}
	}

	return pkgerrors.New(code, "")
}
