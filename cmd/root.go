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
	"os"

	"github.com/spf13/cobra"

	"github.com/virtualxperience/n8nctl/internal/n8n"
	"github.com/virtualxperience/n8nctl/pkg/config"
	"github.com/virtualxperience/n8nctl/pkg/version"
)

var (
	envFileFlag string
	baseURLFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "n8nctl",
	Short: "Move workflow and credential data in and out of an n8n instance.",
	Long: `n8nctl is a toolkit for seeding, backing up, and migrating n8n instances.

Commands:
	• export            Download workflows and credentials over the REST API
	• import            Upsert exported JSON files into an instance
	• decrypt           Decrypt exported credential blobs with the instance key
	• post-credentials  Import decrypted credentials via the public API
	• split             Split a combined workflows export into one file per workflow

Configuration comes from N8N_* environment variables, optionally loaded
from a file with --env-file. Credential blobs only survive a move between
instances that share the same N8N_ENCRYPTION_KEY; otherwise decrypt them
first and re-import with post-credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			fmt.Println(version.BuildInfo())
			return
		}
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "load environment variables from this file before running")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "base URL of the n8n instance (overrides N8N_BASE_URL)")
	rootCmd.Flags().BoolP("version", "v", false, "show version information")
}

// loadConfig builds run configuration from the environment and flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFileFlag)
	if err != nil {
		return nil, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	return cfg, nil
}

// newRESTClient builds a client for the internal /rest API (basic auth).
func newRESTClient(cfg *config.Config) (*n8n.Client, error) {
	if err := cfg.RequireBaseURL(); err != nil {
		return nil, err
	}
	if err := cfg.RequireBasicAuth(); err != nil {
		return nil, err
	}
	return n8n.New(cfg.BaseURL, n8n.WithBasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPassword))
}

// newPublicClient builds a client for the public /api/v1 API (API key).
func newPublicClient(cfg *config.Config) (*n8n.Client, error) {
	if err := cfg.RequireBaseURL(); err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return n8n.New(cfg.BaseURL, n8n.WithAPIKey(cfg.APIKey))
}
