// Package client is a typed HTTP client for the inventory REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teran1416/InventarioApp/internal/models"
)

// APIError is returned for any non-2xx response. Message is the server's
// "message" field and is empty when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

type ProductInput struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	MinStockThreshold *int    `json:"minStockThreshold,omitempty"`
}

// ProductPatch sends only the non-nil fields.
type ProductPatch struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	MinStockThreshold *int     `json:"minStockThreshold,omitempty"`
}

type StockResult struct {
	Product    models.Product `json:"product"`
	IsLowStock bool           `json:"isLowStock"`
	Message    string         `json:"message"`
}

type Summary struct {
	TotalProducts       int     `json:"totalProducts"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
	LowStockCount       int     `json:"lowStockCount"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL. A nil httpClient gets a
// client with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Register(ctx context.Context, fullName, email, password string) (Identity, error) {
	var out Identity
	body := map[string]string{"fullName": fullName, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/users/register", "", body, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	var out Identity
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/users/login", "", body, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context, token string) (Identity, error) {
	var out Identity
	err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &out)
	return out, err
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/products", token, nil, &out)
	return out, err
}

func (c *Client) ListLowStock(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/products/low-stock", token, nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, token, id string) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodGet, productPath(id), token, nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPost, "/products", token, in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, patch ProductPatch) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPut, productPath(id), token, patch, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, productPath(id), token, nil, nil)
}

func (c *Client) AdjustStock(ctx context.Context, token, id string, quantity int, isAddition bool) (StockResult, error) {
	var out StockResult
	body := struct {
		Quantity   int  `json:"quantity"`
		IsAddition bool `json:"isAddition"`
	}{quantity, isAddition}
	err := c.do(ctx, http.MethodPut, productPath(id)+"/stock", token, body, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context, token string) (Summary, error) {
	var out Summary
	err := c.do(ctx, http.MethodGet, "/products/summary", token, nil, &out)
	return out, err
}

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
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

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
