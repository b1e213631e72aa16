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
package n8n

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, opts...)
	require.NoError(t, err)
	return client
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "example.com/no-scheme"} {
		_, err := New(raw)
		assert.Error(t, err, "base URL %q", raw)
	}
}

func TestListWorkflows_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/workflows", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "basic auth header missing")
		assert.Equal(t, "admin", user)
		assert.Equal(t, "s3cret", pass)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "w1", "name": "First"},
				{"id": "w2", "name": "Second"},
			},
		})
	}), WithBasicAuth("admin", "s3cret"))

	workflows, err := client.ListWorkflows(context.Background())
	require.NoError(t, err)
	require.Len(t, workflows, 2)
	assert.Equal(t, "First", workflows[0]["name"])
}

func TestListCredentials_IncludeData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("includeData"))
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "c1"}}})
	}))

	creds, err := client.ListCredentials(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, creds, 1)
}

func TestUpsertWorkflow(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "new-id"}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))

	action, err := client.UpsertWorkflow(context.Background(), map[string]any{"id": "w9", "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "updated:w9", action)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/rest/workflows/w9", gotPath)

	action, err = client.UpsertWorkflow(context.Background(), map[string]any{"name": "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "created:new-id", action)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestUpsertCredential_NumericID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))

	// A numeric id decoded from JSON arrives as float64.
	action, err := client.UpsertCredential(context.Background(), map[string]any{"id": float64(42)})
	require.NoError(t, err)
	assert.Equal(t, "updated:42", action)
	assert.Equal(t, "/rest/credentials/42", gotPath)
}

func TestAPIError_CarriesBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"request/body/data must be object"}`))
	}))

	_, err := client.ListWorkflows(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "must be object")
	assert.Contains(t, apiErr.Error(), "HTTP 400")
}

func TestCredentialSchema_SendsAPIKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/credentials/schema/httpBasicAuth", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-N8N-API-KEY"))
		json.NewEncoder(w).Encode(map[string]any{
			"type":       "object",
			"properties": map[string]any{"user": map[string]any{"type": "string"}},
		})
	}), WithAPIKey("test-key"))

	schema, err := client.CredentialSchema(context.Background(), "httpBasicAuth")
	require.NoError(t, err)
	assert.Contains(t, schema, "properties")
}

func TestWaitReady(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))

	err := client.WaitReady(context.Background(), 5*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitReady_ZeroTimeoutSkipsPolling(t *testing.T) {
	client, err := New("https://unreachable.invalid")
	require.NoError(t, err)
	require.NoError(t, client.WaitReady(context.Background(), 0, time.Second))
}

func TestWaitReady_Timeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := client.WaitReady(context.Background(), 50*time.Millisecond, 10*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name   string
		entity map[string]any
		want   string
		ok     bool
	}{
		{"string id", map[string]any{"id": "abc"}, "abc", true},
		{"numeric id", map[string]any{"id": float64(7)}, "7", true},
		{"empty string id", map[string]any{"id": ""}, "", false},
		{"missing id", map[string]any{}, "", false},
		{"nil id", map[string]any{"id": nil}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EntityID(tt.entity)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
