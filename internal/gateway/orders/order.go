package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Order represents an order from the order service.
type Order struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ShopLat   float64   `json:"shop_lat"`
	ShopLon   float64   `json:"shop_lon"`
	DestLat   float64   `json:"dest_lat"`
	DestLon   float64   `json:"dest_lon"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusError is returned when the order service answers with a
// non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order service returned status %d", e.Code)
}

// HTTPGateway is an orders gateway backed by the order service REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates an orders gateway. An empty base URL disables
// the gateway (nil is returned).
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}
}

// GetByID fetches an order by ID from the order service. A 404 answer
// maps to (nil, nil).
func (g *HTTPGateway) GetByID(ctx context.Context, id string) (*Order, error) {
	u := fmt.Sprintf("%s/api/v1/orders/%s", g.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("order gateway: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order gateway: GetByID: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("order gateway: GetByID: %w", &StatusError{Code: resp.StatusCode})
	}

	var ord Order
	if err := json.NewDecoder(resp.Body).Decode(&ord); err != nil {
		return nil, fmt.Errorf("order gateway: decode order %q: %w", id, err)
	}
	return &ord, nil
}
