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

// Package fileutil holds the file I/O shared by the n8nctl commands.
package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// AtomicWriteFile writes data through a temp file and rename so a crashed
// run never leaves a half-written export behind.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update file: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON with a trailing newline, atomically.
func WriteJSON(path string, v any, perm os.FileMode) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return AtomicWriteFile(path, append(encoded, '\n'), perm)
}

// Document is one JSON object loaded from a directory, labeled by its
// source file. Array files are expanded to one document per element with a
// "#idx" suffix on the label.
type Document struct {
	Label string
	Value map[string]any
}

// LoadJSONDocuments loads every *.json file in dir, in name order. Files
// that are unreadable, not valid JSON, or array elements that are not
// objects are skipped; each skip is described in the returned warnings. A
// missing directory yields no documents and no error.
func LoadJSONDocuments(dir string) ([]Document, []string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(paths)

	var docs []Document
	var warnings []string
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}

		name := filepath.Base(path)
		var asObject map[string]any
		if err := json.Unmarshal(raw, &asObject); err == nil {
			docs = append(docs, Document{Label: name, Value: asObject})
			continue
		}

		var asArray []any
		if err := json.Unmarshal(raw, &asArray); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s (invalid JSON): %v", path, err))
			continue
		}
		for idx, element := range asArray {
			obj, ok := element.(map[string]any)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("skipping %s index %d (not an object)", path, idx))
				continue
			}
			docs = append(docs, Document{Label: fmt.Sprintf("%s#%d", name, idx), Value: obj})
		}
	}
	return docs, warnings, nil
}
