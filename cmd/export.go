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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/archive"
	"github.com/virtualxperience/n8nctl/internal/fileutil"
	"github.com/virtualxperience/n8nctl/internal/n8n"
	"github.com/virtualxperience/n8nctl/internal/workflows"
)

var (
	exportOutputRoot string
	exportArchive    string
)

// exportManifest records what one export run produced, so imports and
// audits can tell snapshots apart.
type exportManifest struct {
	RunID       string `json:"runId"`
	ExportedAt  string `json:"exportedAt"`
	BaseURL     string `json:"baseUrl"`
	Workflows   int    `json:"workflows"`
	Credentials int    `json:"credentials"`
}

var exportCmd = &cobra.Command{
	Use:   "export [workflows|credentials|all]",
	Short: "Export workflows and credentials from an n8n instance",
	Long: `Download the latest workflows and credentials over the REST API and
write them under the output root, one JSON file per entity, so they can be
checked into the repository and imported into a fresh instance later.

Credential files keep the encrypted data blob as-is; they are portable only
between instances sharing the same N8N_ENCRYPTION_KEY.`,
	Example: `  n8nctl export
  n8nctl export workflows
  n8nctl export credentials --output-root n8n/demo-data
  n8nctl export all --archive n8n-backup.tar.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selection := "all"
		if len(args) == 1 {
			selection = args[0]
		}
		switch selection {
		case "workflows", "credentials", "all":
		default:
			return fmt.Errorf("unknown export type %q: expected 'workflows', 'credentials', or 'all'", selection)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newRESTClient(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		manifest := exportManifest{
			RunID:      uuid.NewString(),
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			BaseURL:    cfg.BaseURL,
		}

		if selection == "workflows" || selection == "all" {
			dir := filepath.Join(exportOutputRoot, "workflows")
			count, err := exportWorkflows(ctx, client, dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			manifest.Workflows = count
		}

		if selection == "credentials" || selection == "all" {
			dir := filepath.Join(exportOutputRoot, "credentials")
			count, err := exportCredentials(ctx, client, dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			manifest.Credentials = count
		}

		manifestPath := filepath.Join(exportOutputRoot, "export-manifest.json")
		if err := fileutil.WriteJSON(manifestPath, manifest, 0o644); err != nil {
			return err
		}

		if exportArchive != "" {
			if err := archive.Create(exportOutputRoot, exportArchive); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}
			fmt.Printf("Archive written to %s\n", exportArchive)
		}

		fmt.Printf("Export completed: %d workflow(s), %d credential(s)\n",
			manifest.Workflows, manifest.Credentials)
		return nil
	},
}

// exportWorkflows fetches every workflow's full detail and writes one file
// per workflow. Listing entries without an id are skipped.
func exportWorkflows(ctx context.Context, client *n8n.Client, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	listing, err := client.ListWorkflows(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, summary := range listing {
		id, ok := n8n.EntityID(summary)
		if !ok {
			continue
		}
		detail, err := client.GetWorkflow(ctx, id)
		if err != nil {
			return count, err
		}
		name, _ := detail["name"].(string)
		if name == "" {
			name = "workflow-" + id
		}
		path := filepath.Join(dir, workflows.FileName(id, name))
		if err := fileutil.WriteJSON(path, detail, 0o644); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// exportCredentials mirrors exportWorkflows for credentials, asking the
// API to include the encrypted data blob. Files are written 0600 since the
// blobs are secret material, encrypted or not.
func exportCredentials(ctx context.Context, client *n8n.Client, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	listing, err := client.ListCredentials(ctx, true)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, summary := range listing {
		id, ok := n8n.EntityID(summary)
		if !ok {
			continue
		}
		detail, err := client.GetCredential(ctx, id, true)
		if err != nil {
			return count, err
		}
		name, _ := detail["name"].(string)
		if name == "" {
			name = "credential-" + id
		}
		path := filepath.Join(dir, workflows.FileName(id, name))
		if err := fileutil.WriteJSON(path, detail, 0o600); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOutputRoot, "output-root", filepath.Join("n8n", "demo-data"), "root directory where exported data is stored")
	exportCmd.Flags().StringVar(&exportArchive, "archive", "", "also bundle the export into this .tar.zst file")
	rootCmd.AddCommand(exportCmd)
}
