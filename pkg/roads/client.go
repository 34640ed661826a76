/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package roads

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

	"golang.org/x/oauth2"

	"github.com/roadsight/roadsync/pkg/route"
)

const (
	// DefaultBaseURL is the production route selection endpoint.
	DefaultBaseURL = "https://roads.googleapis.com/selection/v1"

	userAgent = "roadsync/1.0"
)

// Creator is the capability the pipeline depends on: create one route,
// return its identifier or a classified error. One call maps to one row.
type Creator interface {
	CreateRoute(ctx context.Context, req route.Request) (string, error)
}

// Client is an HTTP implementation of Creator against the Google Roads
// route selection API.
type Client struct {
	projectID string
	baseURL   string
	tokens    oauth2.TokenSource
	doer      HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithDoer overrides the HTTP client used for requests.
func WithDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithRetries wraps the HTTP client with a retry budget of attempts tries
// per request. Apply after WithDoer.
func WithRetries(attempts int) Option {
	return func(c *Client) {
		if attempts > 1 {
			c.doer = NewRetryDoer(c.doer, attempts)
		}
	}
}

// NewClient creates a route selection API client for the given project.
// The token source authenticates every request; timeout bounds one call.
func NewClient(projectID string, tokens oauth2.TokenSource, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		projectID: projectID,
		baseURL:   DefaultBaseURL,
		tokens:    tokens,
		doer:      &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type dynamicRoute struct {
	Origin      latLng `json:"origin"`
	Destination latLng `json:"destination"`
}

type createRouteRequest struct {
	DynamicRoute dynamicRoute `json:"dynamic_route"`
}

type createRouteResponse struct {
	Name string `json:"name"`
}

// CreateRoute registers one selected route under the client's project. The
// request name is used as the selected route ID. On success the identifier
// reported by the API is returned.
func (c *Client) CreateRoute(ctx context.Context, req route.Request) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", &AuthError{Err: err}
	}

	payload, err := json.Marshal(createRouteRequest{
		DynamicRoute: dynamicRoute{
			Origin:      latLng{Latitude: req.Origin.Lat, Longitude: req.Origin.Lon},
			Destination: latLng{Latitude: req.Destination.Lat, Longitude: req.Destination.Lon},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/projects/%s/selectedRoutes?selectedRouteId=%s",
		c.baseURL, url.PathEscape(c.projectID), url.QueryEscape(req.Name))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token.AccessToken)
	httpReq.Header.Set("X-Goog-User-Project", c.projectID)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var created createRouteResponse
	if err := json.Unmarshal(body, &created); err == nil && created.Name != "" {
		return created.Name, nil
	}
	return req.Name, nil
}
