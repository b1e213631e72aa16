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
	"net/http"
	"net/url"
)

// includeDataQuery asks the /rest API to include the encrypted data blob
// with each credential.
func includeDataQuery(includeData bool) url.Values {
	if !includeData {
		return nil
	}
	return url.Values{"includeData": {"true"}}
}

// ListCredentials returns the credential listing.
func (c *Client) ListCredentials(ctx context.Context, includeData bool) ([]map[string]any, error) {
	var envelope listEnvelope
	if err := c.doJSON(ctx, http.MethodGet, credentialsEndpoint, includeDataQuery(includeData), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetCredential fetches one credential.
func (c *Client) GetCredential(ctx context.Context, id string, includeData bool) (map[string]any, error) {
	var envelope entityEnvelope
	path := credentialsEndpoint + "/" + id
	if err := c.doJSON(ctx, http.MethodGet, path, includeDataQuery(includeData), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateCredential posts a new credential via the /rest API.
func (c *Client) CreateCredential(ctx context.Context, credential map[string]any) (map[string]any, error) {
	var envelope entityEnvelope
	if err := c.doJSON(ctx, http.MethodPost, credentialsEndpoint, nil, credential, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// PatchCredential updates the credential with the given id.
func (c *Client) PatchCredential(ctx context.Context, id string, credential map[string]any) error {
	path := credentialsEndpoint + "/" + id
	return c.doJSON(ctx, http.MethodPatch, path, nil, credential, nil)
}

// UpsertCredential patches the credential when it carries an id and
// creates it otherwise.
func (c *Client) UpsertCredential(ctx context.Context, credential map[string]any) (string, error) {
	id, ok := EntityID(credential)
	if !ok {
		created, err := c.CreateCredential(ctx, credential)
		if err != nil {
			return "", err
		}
		newID, _ := EntityID(created)
		if newID == "" {
			newID = "?"
		}
		return "created:" + newID, nil
	}
	if err := c.PatchCredential(ctx, id, credential); err != nil {
		return "", err
	}
	return "updated:" + id, nil
}

// CredentialSchema fetches the public-API JSON schema for a credential
// type. The public API expects decrypted data objects, and the schema says
// which properties a type accepts.
func (c *Client) CredentialSchema(ctx context.Context, credType string) (map[string]any, error) {
	var schema map[string]any
	path := publicSchemaEndpoint + "/" + url.PathEscape(credType)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// PostCredentialV1 creates a credential through the public /api/v1 API.
// The data field must be a decrypted object, not an encrypted blob.
func (c *Client) PostCredentialV1(ctx context.Context, payload map[string]any) error {
	return c.doJSON(ctx, http.MethodPost, publicCredentialsEndpoint, nil, payload, nil)
}
