// Package directory implements the external directory-service collaborator
// over HTTP. The directory endpoint verifies credentials against the
// corporate domain and returns the caller's mapped authorities.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the directory authentication endpoint.
type Client struct {
	endpoint string
	domain   string
	http     *http.Client
}

var _ ports.DirectoryService = (*Client)(nil)

// NewClient builds a directory client for the given endpoint URL and
// directory domain. timeout <= 0 falls back to a default.
func NewClient(endpoint, dom string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		domain:   dom,
		http:     &http.Client{Timeout: timeout},
	}
}

type authRequest struct {
	Domain   string `json:"domain"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type authResponse struct {
	Authorities []string `json:"authorities"`
}

// Authenticate posts the credentials to the directory endpoint. 401 maps to
// a secret mismatch and 404 to an unknown principal; both read as plain
// rejections to the provider chain. Anything else means the directory could
// not answer.
func (c *Client) Authenticate(ctx context.Context, username, secret string) ([]string, error) {
	body, err := json.Marshal(authRequest{Domain: c.domain, Username: username, Secret: secret})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out authResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("directory response: %w", err)
		}
		return out.Authorities, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrSecretMismatch
	case http.StatusNotFound:
		return nil, domain.ErrIdentityNotFound
	case http.StatusLocked:
		return nil, domain.ErrAccountLocked
	default:
		return nil, fmt.Errorf("directory status %d", resp.StatusCode)
	}
}
