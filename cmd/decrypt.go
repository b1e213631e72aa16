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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/credentials"
	"github.com/virtualxperience/n8nctl/internal/fileutil"
	"github.com/virtualxperience/n8nctl/pkg/n8ncrypto"
)

var (
	decryptInput      string
	decryptOutput     string
	decryptName       string
	decryptCopy       bool
	decryptKDF        string
	decryptIterations int
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an exported credentials file with the instance key",
	Long: `Decrypt every credential blob in an exported credentials file using the
shared N8N_ENCRYPTION_KEY and write the decrypted records to a JSON file
ready for post-credentials. Records that fail to decrypt are reported by
name and skipped; the rest are written out.

With --name only the matching credential is decrypted and its data printed
instead of written; --copy places that data on the system clipboard.`,
	Example: `  n8nctl decrypt
  n8nctl decrypt --input backup/credentials.json --output /tmp/decrypted.json
  n8nctl decrypt --name "Postgres account" --copy
  n8nctl decrypt --kdf pbkdf2 --iterations 10000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireEncryptionKey(); err != nil {
			return err
		}

		opts, err := kdfOptions(decryptKDF, decryptIterations)
		if err != nil {
			return err
		}

		records, err := credentials.ReadFile(decryptInput)
		if err != nil {
			return err
		}

		decryptor := credentials.NewDecryptor(cfg.EncryptionKey, opts...)

		if decryptName != "" {
			return decryptSingle(decryptor, records, decryptName)
		}

		results := decryptor.DecryptAll(records)
		decrypted, failed := credentials.Split(results)
		for _, failure := range failed {
			fmt.Fprintf(os.Stderr, "Failed to decrypt credential %q: %v\n",
				failure.Record.DisplayName(), failure.Err)
		}

		output := decryptOutput
		if output == "" {
			output = filepath.Join(filepath.Dir(decryptInput), "decrypted_credentials_for_import.json")
		}
		if err := fileutil.WriteJSON(output, decrypted, 0o600); err != nil {
			return err
		}

		fmt.Printf("Decrypted %d of %d credential(s) to %s\n", len(decrypted), len(results), output)
		if len(failed) > 0 {
			fmt.Fprintf(os.Stderr, "%d credential(s) could not be decrypted\n", len(failed))
		}
		return nil
	},
}

// decryptSingle decrypts one credential selected by name and prints its
// data, optionally copying it to the clipboard.
func decryptSingle(decryptor *credentials.Decryptor, records []credentials.Record, name string) error {
	for _, rec := range records {
		if rec.Name != name {
			continue
		}
		data, err := decryptor.DecryptOne(rec)
		if err != nil {
			return fmt.Errorf("decrypt credential %q: %w", name, err)
		}
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		if decryptCopy {
			if err := clipboard.WriteAll(string(encoded)); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Printf("Decrypted data for %q copied to clipboard\n", name)
			return nil
		}
		fmt.Println(string(encoded))
		return nil
	}
	return fmt.Errorf("no credential named %q in %s", name, decryptInput)
}

// kdfOptions maps the --kdf and --iterations flags onto decrypt options.
func kdfOptions(kdf string, iterations int) ([]n8ncrypto.Option, error) {
	var opts []n8ncrypto.Option
	switch kdf {
	case "evp":
		opts = append(opts, n8ncrypto.WithKDF(n8ncrypto.KDFLegacy))
	case "pbkdf2":
		opts = append(opts, n8ncrypto.WithKDF(n8ncrypto.KDFPBKDF2))
	default:
		return nil, fmt.Errorf("unknown --kdf %q: expected 'evp' or 'pbkdf2'", kdf)
	}
	if iterations > 0 {
		opts = append(opts, n8ncrypto.WithIterations(iterations))
	}
	return opts, nil
}

func init() {
	decryptCmd.Flags().StringVar(&decryptInput, "input", filepath.Join("n8n", "demo-data", "credentials", "credentials1.json"), "exported credentials file to decrypt")
	decryptCmd.Flags().StringVar(&decryptOutput, "output", "", "where to write decrypted credentials (default: alongside the input)")
	decryptCmd.Flags().StringVar(&decryptName, "name", "", "decrypt only the credential with this name and print its data")
	decryptCmd.Flags().BoolVar(&decryptCopy, "copy", false, "with --name, copy the decrypted data to the clipboard")
	decryptCmd.Flags().StringVar(&decryptKDF, "kdf", "evp", "key derivation to use: 'evp' (OpenSSL legacy, n8n default) or 'pbkdf2'")
	decryptCmd.Flags().IntVar(&decryptIterations, "iterations", 0, "PBKDF2 iteration count (default 1000; ignored for evp)")
	rootCmd.AddCommand(decryptCmd)
}
