package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultAddress         = ":8080"
	defaultBasePath        = "/admin"
	defaultEnvironment     = "Development"
	defaultLogLevel        = "info"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLookupTimeout   = 5 * time.Second
)

// Config captures the runtime configuration of the admin process.
type Config struct {
	Server         ServerConfig
	Log            LogConfig
	Dataset        DatasetConfig
	Exports        ExportsConfig
	Events         EventsConfig
	SupervisorsAPI SupervisorsAPIConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string
	BasePath        string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

// DatasetConfig selects where the in-memory dataset is seeded from.
// Firestore takes precedence over SeedFile; with neither set the embedded
// dataset is used.
type DatasetConfig struct {
	SeedFile              string
	FirestoreProjectID    string
	FirestoreEmulatorHost string
}

// ExportsConfig configures export archiving.
type ExportsConfig struct {
	Bucket string
}

// EventsConfig configures mapping change notifications.
type EventsConfig struct {
	ProjectID string
	Topic     string
}

// SupervisorsAPIConfig points the org chart at a remote supervisor endpoint.
type SupervisorsAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ValidationError is returned when configuration values are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	duration := func(key, field string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, field)
		}
		return d
	}

	firestoreProject := stringWithDefault(lookup, "ADMIN_FIRESTORE_PROJECT_ID", "")

	cfg := Config{
		Server: ServerConfig{
			Address:         stringWithDefault(lookup, "ADMIN_HTTP_ADDR", defaultAddress),
			BasePath:        stringWithDefault(lookup, "ADMIN_BASE_PATH", defaultBasePath),
			Environment:     stringWithDefault(lookup, "ADMIN_ENVIRONMENT", defaultEnvironment),
			ReadTimeout:     duration("ADMIN_READ_TIMEOUT", "Server.ReadTimeout", defaultReadTimeout),
			WriteTimeout:    duration("ADMIN_WRITE_TIMEOUT", "Server.WriteTimeout", defaultWriteTimeout),
			ShutdownTimeout: duration("ADMIN_SHUTDOWN_TIMEOUT", "Server.ShutdownTimeout", defaultShutdownTimeout),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
		Dataset: DatasetConfig{
			SeedFile:              stringWithDefault(lookup, "ADMIN_SEED_FILE", ""),
			FirestoreProjectID:    firestoreProject,
			FirestoreEmulatorHost: stringWithDefault(lookup, "ADMIN_FIRESTORE_EMULATOR_HOST", ""),
		},
		Exports: ExportsConfig{
			Bucket: stringWithDefault(lookup, "ADMIN_EXPORTS_BUCKET", ""),
		},
		Events: EventsConfig{
			ProjectID: stringWithDefault(lookup, "ADMIN_PUBSUB_PROJECT_ID", firestoreProject),
			Topic:     stringWithDefault(lookup, "ADMIN_PUBSUB_TOPIC", ""),
		},
		SupervisorsAPI: SupervisorsAPIConfig{
			BaseURL: stringWithDefault(lookup, "ADMIN_SUPERVISOR_LOOKUP_URL", ""),
			Timeout: duration("ADMIN_SUPERVISOR_LOOKUP_TIMEOUT", "SupervisorsAPI.Timeout", defaultLookupTimeout),
		},
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Address) == "" {
		fields = append(fields, "Server.Address")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		fields = append(fields, "Log.Level")
	}
	if cfg.Events.Topic != "" && cfg.Events.ProjectID == "" {
		fields = append(fields, "Events.ProjectID")
	}
	if base := cfg.SupervisorsAPI.BaseURL; base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		fields = append(fields, "SupervisorsAPI.BaseURL")
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// durationWithDefault reports false when a value is present but unparsable or non-positive.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback, false
	}
	return d, true
}
