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
package credentials

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema wraps a credential-type schema from the public API
// (/api/v1/credentials/schema/{type}).
type Schema struct {
	doc map[string]any
}

// NewSchema wraps a schema document. A nil document is valid and acts as
// "no schema known": sanitization passes data through unchanged.
func NewSchema(doc map[string]any) *Schema {
	return &Schema{doc: doc}
}

// properties returns the schema's property map, or nil.
func (s *Schema) properties() map[string]any {
	if s == nil || s.doc == nil {
		return nil
	}
	props, _ := s.doc["properties"].(map[string]any)
	return props
}

// Required lists the schema's required property names.
func (s *Schema) Required() []string {
	if s == nil || s.doc == nil {
		return nil
	}
	raw, _ := s.doc["required"].([]any)
	required := make([]string, 0, len(raw))
	for _, entry := range raw {
		if name, ok := entry.(string); ok {
			required = append(required, name)
		}
	}
	return required
}

// Sanitize keeps only properties the schema names and fills in schema
// defaults for absent ones. Without a usable schema the data is returned
// as-is.
func (s *Schema) Sanitize(data map[string]any) map[string]any {
	props := s.properties()
	if props == nil {
		return data
	}

	sanitized := make(map[string]any, len(props))
	for key, value := range data {
		if _, allowed := props[key]; allowed {
			sanitized[key] = value
		}
	}
	for name, raw := range props {
		propSchema, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, present := sanitized[name]; present {
			continue
		}
		if def, hasDefault := propSchema["default"]; hasDefault {
			sanitized[name] = def
		}
	}
	return sanitized
}

// MissingRequired returns the required properties absent from data.
func (s *Schema) MissingRequired(data map[string]any) []string {
	var missing []string
	for _, name := range s.Required() {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate checks data against the full schema document.
func (s *Schema) Validate(data map[string]any) error {
	if s == nil || s.doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(s.doc),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return fmt.Errorf("schema validation: %s", strings.Join(reasons, "; "))
}
