// Package client is a typed client for the dashboard REST API.
//
// It talks to a remote server over HTTP or, with WithHandler, dispatches
// requests in-process to an http.Handler. The in-process mode is what the
// web UI uses: the request context, including the identity stored by
// auth.WithUser, reaches the API handlers unchanged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// InProcessBaseURL is the base URL used when the client wraps a handler.
const InProcessBaseURL = "http://shopdash.internal"

// APIError is returned for non-2xx responses. Message is the response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the domain sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return auth.ErrUnauthenticated
	case http.StatusForbidden:
		return core.ErrForbidden
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusConflict:
		return core.ErrConflict
	}
	return nil
}

// Client calls the API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHandler serves every request in-process with h.
func WithHandler(h http.Handler) Option {
	return func(c *Client) {
		c.http = &http.Client{Transport: HandlerTransport{Handler: h}}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = InProcessBaseURL
	}
	return c
}

// HandlerTransport is an http.RoundTripper that serves requests with Handler.
type HandlerTransport struct {
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper.
func (t HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer func() { _ = req.Body.Close() }()
	}
	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// do sends a request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func storePath(storeID, collection string, id ...string) string {
	p := "/api/" + url.PathEscape(storeID) + "/" + collection
	if len(id) > 0 {
		p += "/" + url.PathEscape(id[0])
	}
	return p
}

// ListStores returns the stores of the calling user.
func (c *Client) ListStores(ctx context.Context) ([]*core.Store, error) {
	var out []*core.Store
	if err := c.do(ctx, http.MethodGet, "/api/stores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStore creates a store.
func (c *Client) CreateStore(ctx context.Context, name string) (*core.Store, error) {
	var out core.Store
	if err := c.do(ctx, http.MethodPost, "/api/stores", api.StoreRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStore fetches a store of the calling user.
func (c *Client) GetStore(ctx context.Context, id string) (*core.Store, error) {
	var out core.Store
	if err := c.do(ctx, http.MethodGet, "/api/stores/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStore renames a store.
func (c *Client) UpdateStore(ctx context.Context, id, name string) (*core.Store, error) {
	var out core.Store
	if err := c.do(ctx, http.MethodPatch, "/api/stores/"+url.PathEscape(id), api.StoreRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStore removes a store.
func (c *Client) DeleteStore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/stores/"+url.PathEscape(id), nil, nil)
}

// ListBillboards returns the billboards of a store.
func (c *Client) ListBillboards(ctx context.Context, storeID string) ([]*core.Billboard, error) {
	var out []*core.Billboard
	if err := c.do(ctx, http.MethodGet, storePath(storeID, "billboards"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBillboard fetches one billboard.
func (c *Client) GetBillboard(ctx context.Context, storeID, id string) (*core.Billboard, error) {
	var out core.Billboard
	if err := c.do(ctx, http.MethodGet, storePath(storeID, "billboards", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBillboard creates a billboard.
func (c *Client) CreateBillboard(ctx context.Context, storeID string, in api.BillboardRequest) (*core.Billboard, error) {
	var out core.Billboard
	if err := c.do(ctx, http.MethodPost, storePath(storeID, "billboards"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBillboard replaces a billboard.
func (c *Client) UpdateBillboard(ctx context.Context, storeID, id string, in api.BillboardRequest) (*core.Billboard, error) {
	var out core.Billboard
	if err := c.do(ctx, http.MethodPatch, storePath(storeID, "billboards", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBillboard removes a billboard.
func (c *Client) DeleteBillboard(ctx context.Context, storeID, id string) error {
	return c.do(ctx, http.MethodDelete, storePath(storeID, "billboards", id), nil, nil)
}

// ListCategories returns the categories of a store.
func (c *Client) ListCategories(ctx context.Context, storeID string) ([]*core.Category, error) {
	var out []*core.Category
	if err := c.do(ctx, http.MethodGet, storePath(storeID, "categories"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, storeID, id string) (*core.Category, error) {
	var out core.Category
	if err := c.do(ctx, http.MethodGet, storePath(storeID, "categories", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, storeID string, in api.CategoryRequest) (*core.Category, error) {
	var out core.Category
	if err := c.do(ctx, http.MethodPost, storePath(storeID, "categories"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, storeID, id string, in api.CategoryRequest) (*core.Category, error) {
	var out core.Category
	if err := c.do(ctx, http.MethodPatch, storePath(storeID, "categories", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, storeID, id string) error {
	return c.do(ctx, http.MethodDelete, storePath(storeID, "categories", id), nil, nil)
}

// ListProducts returns the products of a store matching filter.
func (c *Client) ListProducts(ctx context.Context, storeID string, filter core.ProductFilter) ([]*core.Product, error) {
	q := url.Values{}
	if filter.CategoryID != "" {
		q.Set("categoryId", filter.CategoryID)
	}
	if filter.FeaturedOnly {
		q.Set("isFeatured", "true")
	}
	if filter.IncludeArchived {
		q.Set("includeArchived", "true")
	}
	path := storePath(storeID, "products")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []*core.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, storeID, id string) (*core.Product, error) {
	var out core.Product
	if err := c.do(ctx, http.MethodGet, storePath(storeID, "products", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, storeID string, in api.ProductRequest) (*core.Product, error) {
	var out core.Product
	if err := c.do(ctx, http.MethodPost, storePath(storeID, "products"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product.
func (c *Client) UpdateProduct(ctx context.Context, storeID, id string, in api.ProductRequest) (*core.Product, error) {
	var out core.Product
	if err := c.do(ctx, http.MethodPatch, storePath(storeID, "products", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, storeID, id string) error {
	return c.do(ctx, http.MethodDelete, storePath(storeID, "products", id), nil, nil)
}
