package paddle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin read-only client for the Paddle API. It only covers the
// two lookups the webhook endpoint proxies for the frontend.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ProxyResponse carries an upstream response verbatim so the handler can
// relay Paddle's body and status code untouched.
type ProxyResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*ProxyResponse, error) {
	return c.get(ctx, "/products/"+productID)
}

func (c *Client) GetPrice(ctx context.Context, priceID string) (*ProxyResponse, error) {
	return c.get(ctx, "/prices/"+priceID)
}

func (c *Client) get(ctx context.Context, path string) (*ProxyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build paddle request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paddle API error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paddle response: %w", err)
	}

	return &ProxyResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
