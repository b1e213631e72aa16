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
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/virtualxperience/n8nctl/internal/credentials"
)

func TestKDFOptions(t *testing.T) {
	tests := []struct {
		name       string
		kdf        string
		iterations int
		wantErr    bool
		wantOpts   int
	}{
		{name: "legacy_default", kdf: "evp", wantOpts: 1},
		{name: "pbkdf2", kdf: "pbkdf2", wantOpts: 1},
		{name: "pbkdf2_with_iterations", kdf: "pbkdf2", iterations: 10000, wantOpts: 2},
		{name: "unknown_kdf", kdf: "scrypt", wantErr: true},
		{name: "empty_kdf", kdf: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := kdfOptions(tt.kdf, tt.iterations)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("kdfOptions(%q, %d): expected error", tt.kdf, tt.iterations)
				}
				return
			}
			if err != nil {
				t.Fatalf("kdfOptions(%q, %d): %v", tt.kdf, tt.iterations, err)
			}
			if len(opts) != tt.wantOpts {
				t.Errorf("expected %d option(s), got %d", tt.wantOpts, len(opts))
			}
		})
	}
}

func TestPostPayload(t *testing.T) {
	entry := credentials.Decrypted{
		ID:   "should-not-be-sent",
		Name: "Postgres account",
		Type: "postgres",
	}
	data := map[string]any{"host": "db", "port": float64(5432)}

	payload := postPayload(entry, data)

	if _, ok := payload["id"]; ok {
		t.Errorf("payload must not carry the source id")
	}
	if payload["name"] != "Postgres account" || payload["type"] != "postgres" {
		t.Errorf("unexpected identifying fields: %v", payload)
	}
	if _, ok := payload["isManaged"]; ok {
		t.Errorf("isManaged should be omitted when false")
	}
	if _, ok := payload["nodesAccess"]; ok {
		t.Errorf("nodesAccess should be omitted when empty")
	}

	entry.IsManaged = true
	entry.NodesAccess = []any{map[string]any{"nodeType": "n8n-nodes-base.postgres"}}
	payload = postPayload(entry, data)
	if payload["isManaged"] != true {
		t.Errorf("expected isManaged=true in payload")
	}
	if _, ok := payload["nodesAccess"]; !ok {
		t.Errorf("expected nodesAccess to pass through")
	}
}

func TestImportDocuments_SkipAndReport(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "workflows")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("1-good.json", `{"id":"w1","name":"Good"}`)
	writeFile("2-bad.json", `{"id":"w2","name":"Bad"}`)
	writeFile("3-also-good.json", `{"id":"w3","name":"Also good"}`)

	upsert := func(_ context.Context, doc map[string]any) (string, error) {
		if doc["id"] == "w2" {
			return "", errors.New("boom")
		}
		return fmt.Sprintf("updated:%v", doc["id"]), nil
	}

	imported, failed, err := importDocuments(context.Background(), root, "workflows", 0, upsert)
	if err != nil {
		t.Fatalf("importDocuments: %v", err)
	}
	if imported != 2 || failed != 1 {
		t.Errorf("expected 2 imported / 1 failed, got %d / %d", imported, failed)
	}
}

func TestImportDocuments_MinCount(t *testing.T) {
	root := t.TempDir()

	upsert := func(_ context.Context, _ map[string]any) (string, error) {
		t.Fatal("upsert must not be called when the minimum is not met")
		return "", nil
	}

	// Missing directory yields zero documents, below the minimum.
	_, _, err := importDocuments(context.Background(), root, "credentials", 1, upsert)
	if err == nil {
		t.Fatal("expected an error when fewer documents than --min-credentials")
	}
}
