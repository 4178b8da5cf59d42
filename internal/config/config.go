// Package config handles loading and validation of plantpulse.yaml
// project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// FileName is the project configuration file name.
const FileName = "plantpulse.yaml"

// DefaultHistoryWindow is how many recent readings a prediction fetches
// when the config does not say otherwise.
const DefaultHistoryWindow = 100

// Load reads and parses plantpulse.yaml from the given directory.
func Load(dir string) (*types.ProjectConfig, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg types.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config as YAML into the given directory.
func Save(dir string, cfg *types.ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the starter configuration written by `plantpulse init`.
func Default() *types.ProjectConfig {
	return &types.ProjectConfig{
		Provider: "memory",
		Engine:   &types.EngineConfig{HistoryWindow: DefaultHistoryWindow},
		Alerts:   []types.AlertConfig{{Type: types.AlertConsole}},
	}
}

func applyDefaults(cfg *types.ProjectConfig) {
	if cfg.Engine == nil {
		cfg.Engine = &types.EngineConfig{}
	}
	if cfg.Engine.HistoryWindow <= 0 {
		cfg.Engine.HistoryWindow = DefaultHistoryWindow
	}
}

func validate(cfg *types.ProjectConfig) error {
	switch cfg.Provider {
	case "memory":
	case "redis":
		if cfg.Redis == nil {
			return fmt.Errorf("redis config is required when provider is redis")
		}
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required")
		}
	case "dynamodb":
		if cfg.DynamoDB == nil {
			return fmt.Errorf("dynamodb config is required when provider is dynamodb")
		}
		if cfg.DynamoDB.TableName == "" {
			return fmt.Errorf("dynamodb.tableName is required")
		}
	case "postgres":
		if cfg.Postgres == nil {
			return fmt.Errorf("postgres config is required when provider is postgres")
		}
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required")
		}
	case "":
		return fmt.Errorf("provider is required")
	default:
		return fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	for _, a := range cfg.Alerts {
		switch a.Type {
		case types.AlertConsole:
		case types.AlertWebhook:
			if a.URL == "" {
				return fmt.Errorf("alerts: webhook sink requires url")
			}
		case types.AlertFile:
			if a.Path == "" {
				return fmt.Errorf("alerts: file sink requires path")
			}
		default:
			return fmt.Errorf("alerts: unknown sink type %q", a.Type)
		}
	}
	return nil
}
