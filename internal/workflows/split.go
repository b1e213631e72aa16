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

// Package workflows handles the file layout of exported n8n workflows.
package workflows

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/virtualxperience/n8nctl/internal/fileutil"
)

// Split reads a combined workflows export (a JSON array) and writes each
// workflow to its own "<id>-<slug>.json" file in outDir. It returns the
// number of files written.
func Split(inputPath, outDir string) (int, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, err
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("%s must be a JSON array of workflows: %w", inputPath, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	for i, workflow := range entries {
		id, ok := workflow["id"]
		if !ok || id == nil {
			return i, fmt.Errorf("workflow at index %d has no id", i)
		}
		name, _ := workflow["name"].(string)

		path := filepath.Join(outDir, FileName(normalizeID(id), name))
		if err := fileutil.WriteJSON(path, workflow, 0o644); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

// normalizeID renders numeric JSON ids without a decimal point.
func normalizeID(id any) any {
	if f, ok := id.(float64); ok {
		return int64(f)
	}
	return id
}
