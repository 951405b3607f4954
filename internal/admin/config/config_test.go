package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Server.BasePath != "/admin" {
		t.Errorf("expected default base path /admin, got %s", cfg.Server.BasePath)
	}
	if cfg.Server.Environment != "Development" {
		t.Errorf("unexpected environment: %s", cfg.Server.Environment)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected shutdown timeout: %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info log level, got %s", cfg.Log.Level)
	}
	if cfg.Dataset.FirestoreProjectID != "" || cfg.Dataset.SeedFile != "" {
		t.Errorf("expected embedded dataset by default, got %+v", cfg.Dataset)
	}
	if cfg.SupervisorsAPI.Timeout != 5*time.Second {
		t.Errorf("unexpected lookup timeout: %s", cfg.SupervisorsAPI.Timeout)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"ADMIN_HTTP_ADDR":             ":9090",
		"ADMIN_BASE_PATH":             "/ops",
		"ADMIN_ENVIRONMENT":           "Staging",
		"ADMIN_READ_TIMEOUT":          "20s",
		"ADMIN_WRITE_TIMEOUT":         "1m",
		"LOG_LEVEL":                   "DEBUG",
		"ADMIN_FIRESTORE_PROJECT_ID":  "roster-dev",
		"ADMIN_EXPORTS_BUCKET":        "roster-exports",
		"ADMIN_PUBSUB_TOPIC":          "mapping-events",
		"ADMIN_SUPERVISOR_LOOKUP_URL": "https://roster.example.com",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" || cfg.Server.BasePath != "/ops" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != time.Minute {
		t.Errorf("unexpected write timeout: %s", cfg.Server.WriteTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected lower-cased level, got %s", cfg.Log.Level)
	}
	if cfg.Events.ProjectID != "roster-dev" {
		t.Errorf("expected pubsub project to default to firestore project, got %s", cfg.Events.ProjectID)
	}
	if cfg.Exports.Bucket != "roster-exports" {
		t.Errorf("unexpected bucket: %s", cfg.Exports.Bucket)
	}
	if cfg.SupervisorsAPI.BaseURL != "https://roster.example.com" {
		t.Errorf("unexpected supervisors api: %s", cfg.SupervisorsAPI.BaseURL)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"ADMIN_READ_TIMEOUT":          "soon",
		"LOG_LEVEL":                   "verbose",
		"ADMIN_PUBSUB_TOPIC":          "mapping-events",
		"ADMIN_SUPERVISOR_LOOKUP_URL": "roster.example.com",
	}

	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	want := map[string]bool{
		"Server.ReadTimeout":     false,
		"Log.Level":              false,
		"Events.ProjectID":       false,
		"SupervisorsAPI.BaseURL": false,
	}
	for _, field := range vErr.Fields() {
		if _, ok := want[field]; ok {
			want[field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected %s in %v", field, vErr.Fields())
		}
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport ADMIN_BASE_PATH=\"/roster\"\nADMIN_SEED_FILE=./seed.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"ADMIN_SEED_FILE": "/etc/roster/seed.yaml"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.BasePath != "/roster" {
		t.Errorf("expected dotenv base path, got %s", cfg.Server.BasePath)
	}
	if cfg.Dataset.SeedFile != "/etc/roster/seed.yaml" {
		t.Errorf("expected env map to win over dotenv, got %s", cfg.Dataset.SeedFile)
	}
}
