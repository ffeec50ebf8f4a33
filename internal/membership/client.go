// Package membership integrates the external membership/entitlement
// collaborator. The engine only needs a yes/no answer: may this
// customer book a coach.
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) CanBook(ctx context.Context, customerID string) (bool, error) {
	u := fmt.Sprintf("%s/api/v1/members/%s/can-book", c.baseURL, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("membership check: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// Unknown member: no entitlement.
		return false, nil
	default:
		return false, fmt.Errorf("membership check: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		CanBook bool `json:"can_book"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("membership check: %w", err)
	}
	return body.CanBook, nil
}

// AllowAll grants every customer. Used when no membership service is
// configured, e.g. local development.
type AllowAll struct{}

func (AllowAll) CanBook(ctx context.Context, customerID string) (bool, error) {
	return true, nil
}
