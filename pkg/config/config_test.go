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
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvBaseURL, EnvWebhookURL, EnvBasicAuthUser, EnvBasicAuthPassword,
		EnvAPIKey, EnvEncryptionKey, EnvSkipWorkflows, EnvSkipCredentials,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://n8n.example.com/")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://n8n.example.com" {
		t.Fatalf("unexpected base URL: %q", cfg.BaseURL)
	}
}

func TestLoad_WebhookURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvWebhookURL, "https://hooks.example.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://hooks.example.com" {
		t.Fatalf("webhook fallback not applied, got %q", cfg.BaseURL)
	}
}

func TestLoad_SkipSwitches(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSkipWorkflows, "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.SkipWorkflows {
		t.Error("SkipWorkflows should be set")
	}
	if cfg.SkipCredentials {
		t.Error("SkipCredentials should not be set")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := EnvAPIKey + "=from-file\n" + EnvEncryptionKey + "=secret-key\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "from-file")
	}
	if cfg.EncryptionKey != "secret-key" {
		t.Errorf("EncryptionKey = %q, want %q", cfg.EncryptionKey, "secret-key")
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected error for explicitly requested missing env file")
	}
}

func TestRequireHelpers(t *testing.T) {
	cfg := &Config{}
	for name, fn := range map[string]func() error{
		"base url":       cfg.RequireBaseURL,
		"basic auth":     cfg.RequireBasicAuth,
		"api key":        cfg.RequireAPIKey,
		"encryption key": cfg.RequireEncryptionKey,
	} {
		if err := fn(); err == nil {
			t.Errorf("%s: expected error on empty config", name)
		}
	}

	full := &Config{
		BaseURL:           "https://n8n.example.com",
		BasicAuthUser:     "user",
		BasicAuthPassword: "pass",
		APIKey:            "key",
		EncryptionKey:     "secret",
	}
	for name, fn := range map[string]func() error{
		"base url":       full.RequireBaseURL,
		"basic auth":     full.RequireBasicAuth,
		"api key":        full.RequireAPIKey,
		"encryption key": full.RequireEncryptionKey,
	} {
		if err := fn(); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestRequireBasicAuth_PartialCredentials(t *testing.T) {
	cfg := &Config{BasicAuthUser: "user"}
	if err := cfg.RequireBasicAuth(); err == nil {
		t.Fatal("user without password must not pass")
	}
}
