package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// AuthUser is the auth service's view of the current session's user.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CurrentUser resolves the user behind an access token. An invalid or expired
// token surfaces as an unauthorized APIError.
func (c *Client) CurrentUser(ctx context.Context, token string) (*AuthUser, error) {
	endpoint := c.baseURL + authPath + "/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newAPIError(resp, endpoint)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding current user: %w", err)
	}
	return &user, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	endpoint := c.baseURL + authPath + "/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp, endpoint)
	}
	return nil
}
