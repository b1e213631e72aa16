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

// Package credentials turns exported credential records with encrypted
// data blobs into decrypted, import-ready payloads.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is one entry of an exported credentials file. The Data field
// holds the encrypted blob; identifying fields are carried through to the
// decrypted output untouched.
type Record struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Data        string `json:"data"`
	NodesAccess []any  `json:"nodesAccess,omitempty"`
	IsManaged   bool   `json:"isManaged"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// DisplayName identifies a record in reports, falling back to "?" when the
// export carries no name.
func (r Record) DisplayName() string {
	if r.Name == "" {
		return "?"
	}
	return r.Name
}

// Decrypted pairs a record's identifying fields with its decrypted,
// JSON-parsed payload.
type Decrypted struct {
	ID          any            `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Data        map[string]any `json:"data"`
	NodesAccess []any          `json:"nodesAccess,omitempty"`
	IsManaged   bool           `json:"isManaged"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}

// ReadFile loads a credentials export, which must be a JSON array of
// records.
func ReadFile(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of credentials: %w", path, err)
	}
	return records, nil
}
