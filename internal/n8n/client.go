/*
Copyright © 2025 Virtual Xperience LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package n8n is a thin client for the n8n REST API. It covers the two
// surfaces the toolkit needs: the internal /rest API used by the editor UI
// (basic auth) and the public /api/v1 API (API key).
package n8n

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

	"github.com/virtualxperience/n8nctl/pkg/version"
)

const (
	workflowsEndpoint   = "/rest/workflows"
	credentialsEndpoint = "/rest/credentials"

	publicCredentialsEndpoint = "/api/v1/credentials"
	publicSchemaEndpoint      = "/api/v1/credentials/schema"

	apiKeyHeader = "X-N8N-API-KEY"
)

// Client talks to a single n8n instance.
type Client struct {
	baseURL string
	http    *http.Client

	basicUser string
	basicPass string
	apiKey    string
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth sets the credentials for the internal /rest API.
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.basicUser = user
		c.basicPass = password
	}
}

// WithAPIKey sets the key for the public /api/v1 API.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the instance at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx response from the instance, with the response body
// kept for diagnostics (n8n puts the useful message there).
type APIError struct {
	Status int
	Method string
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d %s %s: %s", e.Status, e.Method, e.URL, e.Body)
	}
	return fmt.Sprintf("HTTP %d %s %s", e.Status, e.Method, e.URL)
}

// doJSON performs one request. A non-nil body is sent as JSON; a non-nil
// out receives the decoded JSON response.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if c.basicUser != "" || c.basicPass != "" {
		req.SetBasicAuth(c.basicUser, c.basicPass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return &APIError{
			Status: resp.StatusCode,
			Method: method,
			URL:    u,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", u, err)
	}
	return nil
}

// listEnvelope is the {"data": [...]} wrapper the /rest API uses for
// listings and single entities alike.
type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

type entityEnvelope struct {
	Data map[string]any `json:"data"`
}

// EntityID renders an entity's id field for use in a URL path. n8n has
// used both numeric and string ids across versions.
func EntityID(entity map[string]any) (string, bool) {
	raw, ok := entity["id"]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		// JSON numbers decode as float64; ids are integral.
		return fmt.Sprintf("%.0f", v), true
	default:
		return fmt.Sprint(v), true
	}
}
