// Package catalog is the HTTP client for the storefront backend's product
// and coupon endpoints.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/guttosm/cart-service/internal/domain/model"
)

const maxErrorBody = 4 << 10

// ErrUnexpectedStatus is wrapped by errors for non-success responses.
var ErrUnexpectedStatus = errors.New("catalog returned unexpected status")

// Client fetches products and coupons from the catalog backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *circuitbreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithCircuitBreaker guards every call with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// NewClient creates a catalog client rooted at baseURL (for example
// "http://backend:5000").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsFailure classifies errors for the catalog breaker. Lookups of unknown
// products or coupons are answers, not outages.
func IsFailure(err error) bool {
	return !errors.Is(err, model.ErrProductNotFound) &&
		!errors.Is(err, model.ErrCouponNotFound) &&
		!errors.Is(err, context.Canceled)
}

// CircuitBreaker returns the breaker guarding the client, or nil.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// GetProducts fetches several products in one request. Ids unknown to the
// catalog are absent from the result.
func (c *Client) GetProducts(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	endpoint := c.baseURL + "/api/productos?ids=" + url.QueryEscape(strings.Join(parts, ","))

	var payload []productPayload
	err := c.guard(ctx, func() error {
		return c.do(ctx, http.MethodGet, endpoint, nil, &payload, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	products := make([]model.Product, 0, len(payload))
	for _, p := range payload {
		products = append(products, p.toModel())
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	endpoint := c.baseURL + "/api/productos/" + strconv.FormatInt(id, 10)

	var payload productPayload
	err := c.guard(ctx, func() error {
		return c.do(ctx, http.MethodGet, endpoint, nil, &payload, model.ErrProductNotFound)
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return payload.toModel(), nil
}

// GetCoupon validates a coupon code against the backend.
func (c *Client) GetCoupon(ctx context.Context, code string) (model.Coupon, error) {
	body, err := json.Marshal(map[string]string{"codigo": code})
	if err != nil {
		return model.Coupon{}, err
	}

	var payload couponPayload
	err = c.guard(ctx, func() error {
		return c.do(ctx, http.MethodPost, c.baseURL+"/api/promociones/validar", body, &payload, model.ErrCouponNotFound)
	})
	if err != nil {
		return model.Coupon{}, fmt.Errorf("validate coupon: %w", err)
	}
	if !payload.Valido || payload.Promo.malformed {
		return model.Coupon{}, fmt.Errorf("validate coupon: %w", model.ErrCouponNotFound)
	}
	return payload.toModel(code), nil
}

func (c *Client) guard(ctx context.Context, fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	return c.breaker.Execute(ctx, fn)
}

// do performs one JSON request. A 404 (and, when notFound is a coupon error,
// a 400) is reported as notFound.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out interface{}, notFound error) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call catalog: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if notFound != nil && resp.StatusCode == http.StatusNotFound {
			return notFound
		}
		if errors.Is(notFound, model.ErrCouponNotFound) && resp.StatusCode == http.StatusBadRequest {
			return notFound
		}
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
