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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/credentials"
)

var (
	postInput  string
	postDryRun bool
)

var postCredentialsCmd = &cobra.Command{
	Use:   "post-credentials",
	Short: "Create decrypted credentials through the public API",
	Long: `Read a decrypted credentials file (the output of decrypt) and create each
credential on the target instance via the public /api/v1 API. This is the
path for moving credentials between instances that do NOT share an
encryption key: the target re-encrypts the plaintext data with its own key.

For each credential type the public schema is fetched once and used to drop
properties the type does not accept and to fill in defaults. Credentials
missing required properties are skipped with a report; everything else is
posted. A failed POST is reported and the run continues.`,
	Example: `  n8nctl post-credentials
  n8nctl post-credentials --input /tmp/decrypted.json
  n8nctl post-credentials --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newPublicClient(cfg)
		if err != nil {
			return err
		}

		entries, err := readDecryptedFile(postInput)
		if err != nil {
			return err
		}

		ctx := context.Background()
		schemas := make(map[string]*credentials.Schema)
		var posted, skipped, failed int

		for _, entry := range entries {
			if entry.Type == "" {
				skipped++
				fmt.Fprintf(os.Stderr, "Skipping credential %q: no type\n", displayName(entry))
				continue
			}

			schema, ok := schemas[entry.Type]
			if !ok {
				doc, err := client.CredentialSchema(ctx, entry.Type)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: no schema for type %s (%v); posting data as-is\n", entry.Type, err)
					doc = nil
				}
				schema = credentials.NewSchema(doc)
				schemas[entry.Type] = schema
			}

			data := schema.Sanitize(entry.Data)
			if missing := schema.MissingRequired(data); len(missing) > 0 {
				skipped++
				fmt.Fprintf(os.Stderr, "Skipping credential %q: missing required %s\n",
					displayName(entry), strings.Join(missing, ", "))
				continue
			}
			if err := schema.Validate(data); err != nil {
				skipped++
				fmt.Fprintf(os.Stderr, "Skipping credential %q: %v\n", displayName(entry), err)
				continue
			}

			payload := postPayload(entry, data)
			if postDryRun {
				posted++
				fmt.Printf("Would post credential %q (%s)\n", displayName(entry), entry.Type)
				continue
			}
			if err := client.PostCredentialV1(ctx, payload); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Failed to post credential %q: %v\n", displayName(entry), err)
				continue
			}
			posted++
			fmt.Printf("Posted credential %q (%s)\n", displayName(entry), entry.Type)
		}

		fmt.Printf("Done: %d posted, %d skipped, %d failed\n", posted, skipped, failed)
		if failed > 0 {
			return fmt.Errorf("%d credential(s) failed to post", failed)
		}
		return nil
	},
}

// readDecryptedFile loads the decrypt command's output, a JSON array of
// records whose data field is a plaintext object.
func readDecryptedFile(path string) ([]credentials.Decrypted, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []credentials.Decrypted
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of decrypted credentials: %w", path, err)
	}
	return entries, nil
}

// postPayload builds the public-API request body. The API rejects unknown
// top-level fields, so only the accepted ones are sent; ids are never
// carried over because the target instance assigns its own.
func postPayload(entry credentials.Decrypted, data map[string]any) map[string]any {
	payload := map[string]any{
		"name": entry.Name,
		"type": entry.Type,
		"data": data,
	}
	if len(entry.NodesAccess) > 0 {
		payload["nodesAccess"] = entry.NodesAccess
	}
	if entry.IsManaged {
		payload["isManaged"] = true
	}
	return payload
}

func displayName(entry credentials.Decrypted) string {
	if entry.Name == "" {
		return "?"
	}
	return entry.Name
}

func init() {
	postCredentialsCmd.Flags().StringVar(&postInput, "input", filepath.Join("n8n", "demo-data", "credentials", "decrypted_credentials_for_import.json"), "decrypted credentials file to post")
	postCredentialsCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "validate and report without calling the API")
	rootCmd.AddCommand(postCredentialsCmd)
}
