package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes human-readable YAML values like "500ms" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Salesforce SalesforceConfig `yaml:"salesforce"`
	Retention  RetentionConfig  `yaml:"retention"`
	Watch      WatchConfig      `yaml:"watch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type StoreConfig struct {
	Root string `yaml:"root"` // base directory for snapshots, history and rollback log
}

type SalesforceConfig struct {
	Binary             string `yaml:"binary"`             // sf CLI executable, default "sf"
	APIVersion         string `yaml:"apiVersion"`         // e.g. "59.0"
	DefaultEnvironment string `yaml:"defaultEnvironment"` // org alias used when none is given
}

type RetentionConfig struct {
	KeepCount int    `yaml:"keepCount"` // snapshots kept per environment, default 10
	Schedule  string `yaml:"schedule"`  // cron spec for periodic enforcement in watch mode
}

type WatchConfig struct {
	DropDir         string   `yaml:"dropDir"`         // directory deployment bundles land in
	ReadyMarker     string   `yaml:"readyMarker"`     // file name signalling a complete bundle
	Mode            string   `yaml:"mode"`            // "auto", "poll", "fsnotify"
	PollInterval    Duration `yaml:"pollInterval"`    // e.g. 5s
	DebounceWindow  Duration `yaml:"debounceWindow"`  // e.g. 500ms
	StabilityWindow Duration `yaml:"stabilityWindow"` // bundle must be quiet this long
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "info", "debug", etc.
}
