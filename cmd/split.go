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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/workflows"
)

var (
	splitInput  string
	splitOutDir string
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a combined workflows export into one file per workflow",
	Long: `Older exports bundle every workflow into a single JSON array. Split that
file into the one-file-per-workflow layout export produces, naming each
file "<id>-<slug>.json" so imports and diffs stay readable.`,
	Example: `  n8nctl split
  n8nctl split --input backup/workflows.json --output-dir n8n/demo-data/workflows`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := splitOutDir
		if outDir == "" {
			outDir = filepath.Dir(splitInput)
		}
		count, err := workflows.Split(splitInput, outDir)
		if err != nil {
			return err
		}
		fmt.Printf("Split %d workflow(s) into %s\n", count, outDir)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitInput, "input", filepath.Join("n8n", "demo-data", "workflows", "workflows1.json"), "combined workflows export to split")
	splitCmd.Flags().StringVar(&splitOutDir, "output-dir", "", "directory for the per-workflow files (default: alongside the input)")
	rootCmd.AddCommand(splitCmd)
}
