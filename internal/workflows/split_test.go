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
package workflows

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "workflows1.json")

	combined := []map[string]any{
		{"id": "w1", "name": "First Flow", "nodes": []any{}},
		{"id": float64(2), "name": "Second Flow"},
	}
	raw, err := json.Marshal(combined)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(input, raw, 0644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	count, err := Split(input, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	for _, name := range []string{"w1-first-flow.json", "2-second-flow.json"} {
		path := filepath.Join(outDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected output file %s: %v", name, err)
		}
		var wf map[string]any
		if err := json.Unmarshal(data, &wf); err != nil {
			t.Fatalf("%s is not valid JSON: %v", name, err)
		}
	}
}

func TestSplit_NotAnArray(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(input, []byte(`{"id":"w1"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Split(input, dir); err == nil {
		t.Fatal("expected error for non-array input")
	}
}

func TestSplit_MissingID(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "noid.json")
	if err := os.WriteFile(input, []byte(`[{"name":"anonymous"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Split(input, dir); err == nil {
		t.Fatal("expected error for workflow without id")
	}
}
