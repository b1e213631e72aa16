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

	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/archive"
	"github.com/virtualxperience/n8nctl/internal/fileutil"
)

var (
	importRoot          string
	importFromArchive   string
	importDryRun        bool
	importWaitReady     time.Duration
	importReadyInterval time.Duration
	importMinWorkflows  int
	importMinCreds      int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import exported workflows and credentials into an n8n instance",
	Long: `Read JSON files from the data root and upsert each one through the REST
API: entities that carry an id are updated in place, the rest are created.
Every file is processed independently; a file that fails to import is
reported and the run moves on to the next one.

Credential files are imported with their encrypted data blob untouched, so
the target instance must share the source's N8N_ENCRYPTION_KEY. Set
N8N_SKIP_WORKFLOWS or N8N_SKIP_CREDENTIALS to leave either kind out.`,
	Example: `  n8nctl import
  n8nctl import --root n8n/demo-data --wait-ready 2m
  n8nctl import --from-archive n8n-backup.tar.zst
  n8nctl import --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newRESTClient(cfg)
		if err != nil {
			return err
		}

		root := importRoot
		if importFromArchive != "" {
			extracted, err := os.MkdirTemp("", "n8nctl-import-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(extracted)
			if err := archive.Extract(importFromArchive, extracted); err != nil {
				return fmt.Errorf("extract archive: %w", err)
			}
			root = extracted
		}

		ctx := context.Background()
		if err := client.WaitReady(ctx, importWaitReady, importReadyInterval); err != nil {
			return err
		}

		var failures int

		if cfg.SkipWorkflows {
			fmt.Println("Skipping workflows (N8N_SKIP_WORKFLOWS is set)")
		} else {
			imported, failed, err := importDocuments(ctx, root, "workflows", importMinWorkflows, client.UpsertWorkflow)
			if err != nil {
				return err
			}
			failures += failed
			fmt.Printf("Workflows: %d imported, %d failed\n", imported, failed)
		}

		if cfg.SkipCredentials {
			fmt.Println("Skipping credentials (N8N_SKIP_CREDENTIALS is set)")
		} else {
			imported, failed, err := importDocuments(ctx, root, "credentials", importMinCreds, client.UpsertCredential)
			if err != nil {
				return err
			}
			failures += failed
			fmt.Printf("Credentials: %d imported, %d failed\n", imported, failed)
		}

		if failures > 0 {
			return fmt.Errorf("import finished with %d failure(s)", failures)
		}
		fmt.Println("Import completed")
		return nil
	},
}

// importDocuments loads every JSON document under <root>/<kind> and upserts
// each one. Failures are reported per document and counted, never fatal; an
// error return means the directory itself could not be read or the minimum
// document count was not met.
func importDocuments(ctx context.Context, root, kind string, minDocs int, upsert func(context.Context, map[string]any) (string, error)) (imported, failed int, err error) {
	dir := filepath.Join(root, kind)
	docs, warnings, err := fileutil.LoadJSONDocuments(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", dir, err)
	}
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, "Warning:", warning)
	}

	if len(docs) < minDocs {
		return 0, 0, fmt.Errorf("expected at least %d %s document(s) under %s, found %d", minDocs, kind, dir, len(docs))
	}

	for _, doc := range docs {
		if importDryRun {
			fmt.Printf("Would import %s %s\n", kind, doc.Label)
			imported++
			continue
		}
		action, err := upsert(ctx, doc.Value)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Failed to import %s %s: %v\n", kind, doc.Label, err)
			continue
		}
		imported++
		fmt.Printf("Imported %s %s (%s)\n", kind, doc.Label, action)
	}
	return imported, failed, nil
}

func init() {
	importCmd.Flags().StringVar(&importRoot, "root", filepath.Join("n8n", "demo-data"), "root directory holding workflows/ and credentials/")
	importCmd.Flags().StringVar(&importFromArchive, "from-archive", "", "import from this .tar.zst archive instead of --root")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "list what would be imported without calling the API")
	importCmd.Flags().DurationVar(&importWaitReady, "wait-ready", 0, "wait up to this long for the instance to answer before importing")
	importCmd.Flags().DurationVar(&importReadyInterval, "ready-interval", 5*time.Second, "polling interval while waiting for the instance")
	importCmd.Flags().IntVar(&importMinWorkflows, "min-workflows", 0, "fail unless at least this many workflow documents are found")
	importCmd.Flags().IntVar(&importMinCreds, "min-credentials", 0, "fail unless at least this many credential documents are found")
	rootCmd.AddCommand(importCmd)
}
