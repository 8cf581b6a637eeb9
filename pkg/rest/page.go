package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
)

// Page is the normalized shape for every list endpoint. The remote API
// answers either a bare JSON array or a paginated envelope
// {count, results}; both resolve to (Items, TotalCount) here, with a bare
// array treated as a single full page.
type Page[T any] struct {
	Items      []T
	TotalCount int
}

// ListParams are the query inputs accepted by the remote list endpoints.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

// Query encodes the params, omitting zero values.
func (p ListParams) Query() url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	return query
}

// GetPage fetches a list endpoint and normalizes the response shape.
func GetPage[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return Page[T]{}, err
	}
	return DecodePage[T](raw)
}

// DecodePage resolves the array-or-envelope union into a Page.
func DecodePage[T any](data []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return Page[T]{Items: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding list response")
		}
		return Page[T]{Items: items, TotalCount: len(items)}, nil
	}

	var envelope struct {
		Count   int `json:"count"`
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return Page[T]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding paginated response")
	}
	if envelope.Results == nil {
		envelope.Results = []T{}
	}
	return Page[T]{Items: envelope.Results, TotalCount: envelope.Count}, nil
}
