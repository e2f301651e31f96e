package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/config"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

const (
	recordsPath = "/rest/v1"
	authPath    = "/auth/v1"
)

var (
	errBaseURLRequired = errors.New("backend url is required")
	errAPIKeyRequired  = errors.New("backend api key is required")
)

// Client is a thin typed wrapper over the external backend-as-a-service: a
// records API (select/upsert/update/delete on collections) and a session-based
// auth API. All persistence and business rules live on the other side of it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New validates the configuration and builds a client with the configured
// request timeout.
func New(ctx context.Context, cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		baseURL: base,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "backend_url", base), "backend client initialized")
	}
	return client, nil
}

// From starts a read query against the named collection.
func (c *Client) From(collection string) *Query {
	return &Query{
		client:     c,
		collection: collection,
		selects:    "*",
	}
}

// Upsert writes a record, resolving conflicts on the provided composite key
// by overwriting the existing row.
func (c *Client) Upsert(ctx context.Context, token, collection string, record any, onConflict string) error {
	params := url.Values{}
	if onConflict != "" {
		params.Set("on_conflict", onConflict)
	}
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates,return=minimal",
	}
	return c.write(ctx, http.MethodPost, collection, params, headers, token, record)
}

// Update patches the record with the given primary key.
func (c *Client) Update(ctx context.Context, token, collection string, id uuid.UUID, patch any) error {
	params := url.Values{}
	params.Set("id", "eq."+id.String())
	headers := map[string]string{"Prefer": "return=minimal"}
	return c.write(ctx, http.MethodPatch, collection, params, headers, token, patch)
}

// Delete removes the record with the given primary key.
func (c *Client) Delete(ctx context.Context, token, collection string, id uuid.UUID) error {
	params := url.Values{}
	params.Set("id", "eq."+id.String())
	return c.write(ctx, http.MethodDelete, collection, params, nil, token, nil)
}

// Ping verifies the auth surface of the external service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+authPath+"/health", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, "")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	defer drain(resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("ping backend: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, collection string, params url.Values, headers map[string]string, token string, body any) error {
	endpoint := c.baseURL + recordsPath + "/" + collection
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", collection, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, collection, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp, endpoint)
	}
	return nil
}

// setHeaders attaches the service key plus the caller's token when present;
// anonymous requests fall back to the service key for both headers.
func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", c.apiKey)
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func drain(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
