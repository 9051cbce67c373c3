package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

func Load(path string) (*Config, error) {
	// read raw YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// expand $(ENV_VAR) placeholders
	expanded := expandEnvVars(string(data))

	// unmarshal into struct
	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Root == "" {
		cfg.Store.Root = ".rollbacks"
	}
	if cfg.Salesforce.Binary == "" {
		cfg.Salesforce.Binary = "sf"
	}
	if cfg.Retention.KeepCount <= 0 {
		cfg.Retention.KeepCount = 10
	}
	if cfg.Watch.Mode == "" {
		cfg.Watch.Mode = "auto"
	}
	if cfg.Watch.ReadyMarker == "" {
		cfg.Watch.ReadyMarker = ".ready"
	}
	if cfg.Watch.PollInterval <= 0 {
		cfg.Watch.PollInterval = Duration(5 * time.Second)
	}
	if cfg.Watch.DebounceWindow <= 0 {
		cfg.Watch.DebounceWindow = Duration(500 * time.Millisecond)
	}
	if cfg.Watch.StabilityWindow <= 0 {
		cfg.Watch.StabilityWindow = Duration(time.Second)
	}
}
