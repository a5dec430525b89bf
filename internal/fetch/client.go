package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBody = 512

type Client struct {
	HTTP      *http.Client
	UserAgent string
	// Sleep is a pause before every request, for batch recording runs.
	Sleep time.Duration
	Base  Endpoints
}

func NewClient() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		UserAgent: "baseball-mcp/1.0",
		Base:      DefaultEndpoints(),
	}
}

// Get downloads rawURL and returns the body. Non-2xx statuses are errors
// carrying the start of the body.
func (c *Client) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if c.Sleep > 0 {
		select {
		case <-time.After(c.Sleep):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("GET %s failed: %d body=%s", req.URL.Path, resp.StatusCode, string(body))
	}
	return body, nil
}
