package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./golang/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes and validates a YAML configuration and applies defaults
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Matcher.SearchRadiusMeters == 0 {
		cfg.Matcher.SearchRadiusMeters = DefaultSearchRadiusMeters
	}
	if cfg.Matcher.MaxTraceLength == 0 {
		cfg.Matcher.MaxTraceLength = DefaultMaxTraceLength
	}
	if cfg.Matcher.Workers == 0 {
		cfg.Matcher.Workers = DefaultWorkers
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
}

// SelectFeed chooses a feed by name; fallback to first; if none, use top-level network/gtfsrt.
func SelectFeed(name string) (NetworkConfig, GTFSRTConfig) {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f.Network, f.GTFSRT
			}
		}
	}
	if len(Config.Feeds) > 0 {
		return Config.Feeds[0].Network, Config.Feeds[0].GTFSRT
	}
	return Config.Network, Config.GTFSRT
}
