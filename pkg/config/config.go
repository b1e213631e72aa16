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

// Package config resolves run configuration for n8nctl from the process
// environment. Secrets resolved here are passed down to the libraries as
// explicit parameters; nothing below the command layer reads the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables understood by n8nctl. The names match the ones the
// n8n instance itself is configured with, so a deployment .env file works
// for both.
const (
	EnvBaseURL           = "N8N_BASE_URL"
	EnvBasicAuthUser     = "N8N_BASIC_AUTH_USER"
	EnvBasicAuthPassword = "N8N_BASIC_AUTH_PASSWORD"
	EnvAPIKey            = "N8N_API_KEY"
	EnvEncryptionKey     = "N8N_ENCRYPTION_KEY"
	EnvSkipWorkflows     = "N8N_SKIP_WORKFLOWS"
	EnvSkipCredentials   = "N8N_SKIP_CREDENTIALS"

	// EnvWebhookURL is accepted as a base-URL fallback because hosted
	// deployments often only expose the webhook URL to jobs.
	EnvWebhookURL = "WEBHOOK_URL"
)

// Config holds everything a single n8nctl run needs.
type Config struct {
	BaseURL           string
	BasicAuthUser     string
	BasicAuthPassword string
	APIKey            string
	EncryptionKey     string
	SkipWorkflows     bool
	SkipCredentials   bool
}

// Load reads configuration from the environment, optionally loading a .env
// file first. A missing .env file is only an error when it was requested
// explicitly.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = os.Getenv(EnvWebhookURL)
	}

	return &Config{
		BaseURL:           strings.TrimRight(baseURL, "/"),
		BasicAuthUser:     os.Getenv(EnvBasicAuthUser),
		BasicAuthPassword: os.Getenv(EnvBasicAuthPassword),
		APIKey:            os.Getenv(EnvAPIKey),
		EncryptionKey:     os.Getenv(EnvEncryptionKey),
		SkipWorkflows:     os.Getenv(EnvSkipWorkflows) != "",
		SkipCredentials:   os.Getenv(EnvSkipCredentials) != "",
	}, nil
}

// RequireBaseURL fails when no instance URL is configured.
func (c *Config) RequireBaseURL() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s (or %s) must be set", EnvBaseURL, EnvWebhookURL)
	}
	return nil
}

// RequireBasicAuth fails when the REST API credentials are missing.
func (c *Config) RequireBasicAuth() error {
	if c.BasicAuthUser == "" || c.BasicAuthPassword == "" {
		return fmt.Errorf("%s and %s must be set", EnvBasicAuthUser, EnvBasicAuthPassword)
	}
	return nil
}

// RequireAPIKey fails when the public-API key is missing.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s must be set", EnvAPIKey)
	}
	return nil
}

// RequireEncryptionKey fails when the shared decryption secret is missing.
func (c *Config) RequireEncryptionKey() error {
	if c.EncryptionKey == "" {
		return fmt.Errorf("%s must be set", EnvEncryptionKey)
	}
	return nil
}
