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
	"fmt"
	"net/http"
	"time"
)

// ListWorkflows returns the workflow listing (summaries, not full detail).
func (c *Client) ListWorkflows(ctx context.Context) ([]map[string]any, error) {
	var envelope listEnvelope
	if err := c.doJSON(ctx, http.MethodGet, workflowsEndpoint, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetWorkflow fetches one workflow with its full node graph.
func (c *Client) GetWorkflow(ctx context.Context, id string) (map[string]any, error) {
	var envelope entityEnvelope
	path := workflowsEndpoint + "/" + id
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateWorkflow posts a new workflow and returns the created entity.
func (c *Client) CreateWorkflow(ctx context.Context, workflow map[string]any) (map[string]any, error) {
	var envelope entityEnvelope
	if err := c.doJSON(ctx, http.MethodPost, workflowsEndpoint, nil, workflow, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateWorkflow replaces the workflow with the given id.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, workflow map[string]any) error {
	path := workflowsEndpoint + "/" + id
	return c.doJSON(ctx, http.MethodPut, path, nil, workflow, nil)
}

// UpsertWorkflow updates the workflow when it carries an id and creates it
// otherwise. The returned action is "updated:<id>" or "created:<id>".
func (c *Client) UpsertWorkflow(ctx context.Context, workflow map[string]any) (string, error) {
	id, ok := EntityID(workflow)
	if !ok {
		created, err := c.CreateWorkflow(ctx, workflow)
		if err != nil {
			return "", err
		}
		newID, _ := EntityID(created)
		if newID == "" {
			newID = "?"
		}
		return "created:" + newID, nil
	}
	if err := c.UpdateWorkflow(ctx, id, workflow); err != nil {
		return "", err
	}
	return "updated:" + id, nil
}

// WaitReady polls the workflow listing until the instance answers or the
// timeout expires. A zero timeout means no waiting and always succeeds.
func (c *Client) WaitReady(ctx context.Context, timeout, interval time.Duration) error {
	if timeout <= 0 {
		return nil
	}
	deadline := time.Now().Add(timeout)
	attempt := 0
	for time.Now().Before(deadline) {
		attempt++
		if _, err := c.ListWorkflows(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("instance not ready after %s (%d attempts)", timeout, attempt)
}
