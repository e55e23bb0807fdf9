package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

// resolveOutputFormat picks the output format from the --output flag,
// falling back to the configured default.
func resolveOutputFormat(cfg *config.CLIConfig) (config.OutputFormat, error) {
	if globalOutput == "" {
		if cfg != nil && cfg.OutputFormat != "" {
			return cfg.OutputFormat, nil
		}
		return config.OutputFormatText, nil
	}
	switch format := config.OutputFormat(globalOutput); format {
	case config.OutputFormatText, config.OutputFormatJSON, config.OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format %q (must be text, json, or yaml)", globalOutput)
	}
}

// writeFormatted renders payload as JSON or YAML to w. Callers handle the
// text format themselves since it is payload-specific.
func writeFormatted(w io.Writer, format config.OutputFormat, payload interface{}) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case config.OutputFormatYAML:
		return yaml.NewEncoder(w).Encode(payload)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// openStore creates the configured notes/events store backend.
// The caller must Close the returned store.
func openStore(ctx context.Context, cfg *config.CLIConfig) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil
	case config.StoreBackendPostgres:
		return store.NewPostgresStore(ctx, store.PostgresConfig{DSN: cfg.Postgres.DSN})
	case config.StoreBackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// readInputFile reads a CSV file, with "-" meaning stdin.
func readInputFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
