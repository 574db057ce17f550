package doctors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/medibook/medibook/pkg/logging"
)

// Client is an HTTP client for the upstream doctors API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the doctors API at baseURL
// (e.g. "http://localhost:3001").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDoctors retrieves the full doctor list from GET {base}/doctors.
func (c *Client) FetchDoctors(ctx context.Context) ([]Doctor, error) {
	var list []Doctor
	if err := c.getJSON(ctx, c.baseURL+"/doctors", &list); err != nil {
		return nil, fmt.Errorf("doctors: fetch list: %w", err)
	}
	return list, nil
}

// FetchDoctor retrieves a single doctor's detail from GET {base}/doctor/{id}.
func (c *Client) FetchDoctor(ctx context.Context, id string) (*Doctor, error) {
	var doc Doctor
	if err := c.getJSON(ctx, c.baseURL+"/doctor/"+id, &doc); err != nil {
		return nil, fmt.Errorf("doctors: fetch %s: %w", id, err)
	}
	return &doc, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("doctors API returned non-2xx", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
