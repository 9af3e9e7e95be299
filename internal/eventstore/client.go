// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package eventstore

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

	"github.com/olegiv/eventboard/internal/model"
)

// Client configuration constants
const (
	DefaultTimeout = 10 * time.Second // Per-request timeout
	MaxResponseLen = 4 << 20          // Maximum response body read (4MB)
	MaxErrorBody   = 1024             // Response body kept on StatusError
	UserAgent      = "eventboard/1.0" // User-Agent header value
	CollectionPath = "/events"        // Events collection path on the backend
)

// Client talks to the REST events backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Client for the backend at baseURL (scheme and host, optional path prefix).
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend origin the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches the whole collection. A body that is not a JSON array yields ErrMalformedResponse.
func (c *Client) List(ctx context.Context) ([]model.Event, error) {
	body, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("listing events: %w: expected a JSON array", ErrMalformedResponse)
	}

	var events []model.Event
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, fmt.Errorf("listing events: %w: %v", ErrMalformedResponse, err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Get fetches one event by id.
func (c *Client) Get(ctx context.Context, id model.EventID) (model.Event, error) {
	body, err := c.do(ctx, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent("getting event", body)
}

// Create posts a draft and returns the stored record with its server-assigned id.
func (c *Client) Create(ctx context.Context, draft model.Event) (model.Event, error) {
	draft.ID = ""
	payload, err := json.Marshal(draft)
	if err != nil {
		return model.Event{}, fmt.Errorf("encoding event: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.collectionURL(), payload)
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent("creating event", body)
}

// Update replaces the record with id by draft.
func (c *Client) Update(ctx context.Context, id model.EventID, draft model.Event) (model.Event, error) {
	draft.ID = id
	payload, err := json.Marshal(draft)
	if err != nil {
		return model.Event{}, fmt.Errorf("encoding event: %w", err)
	}

	body, err := c.do(ctx, http.MethodPut, c.itemURL(id), payload)
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent("updating event", body)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, id model.EventID) error {
	_, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil)
	return err
}

// Ping checks that the backend answers on the collection endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	return err
}

func (c *Client) collectionURL() string {
	return c.baseURL + CollectionPath
}

func (c *Client) itemURL(id model.EventID) string {
	return c.collectionURL() + "/" + url.PathEscape(id.String())
}

// do performs one request and returns the response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", method, target, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %w", method, target, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > MaxErrorBody {
			body = body[:MaxErrorBody]
		}
		return nil, &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

func decodeEvent(op string, body []byte) (model.Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.Event{}, fmt.Errorf("%s: %w: expected a JSON object", op, ErrMalformedResponse)
	}

	var e model.Event
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return model.Event{}, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return e, nil
}

var _ Store = (*Client)(nil)
var _ Pinger = (*Client)(nil)
