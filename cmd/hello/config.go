package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// serverConfig is the resolved demo server configuration: defaults, overlaid
// by an optional config file, overlaid by flags.
type serverConfig struct {
	Addr        string
	Workers     int
	MaxRequests int
	AssetsDir   string
	SleepFor    time.Duration
	MetricsAddr string
}

// fileConfig is the YAML shape of the config file. Durations are strings so
// they can be written as "10s".
type fileConfig struct {
	Addr        string `yaml:"addr"`
	Workers     int    `yaml:"workers"`
	MaxRequests int    `yaml:"max_requests"`
	AssetsDir   string `yaml:"assets_dir"`
	Sleep       string `yaml:"sleep"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func defaultConfig() serverConfig {
	return serverConfig{
		Addr:        "127.0.0.1:7878",
		Workers:     4,
		MaxRequests: 20,
		AssetsDir:   ".",
		SleepFor:    10 * time.Second,
	}
}

// loadConfig reads a YAML file at path and overlays it onto the defaults.
func loadConfig(path string) (serverConfig, error) {
	cfg := defaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("unsupported config format %q (want .yaml or .yml)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if fc.MaxRequests > 0 {
		cfg.MaxRequests = fc.MaxRequests
	}
	if fc.AssetsDir != "" {
		cfg.AssetsDir = fc.AssetsDir
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
	if fc.Sleep != "" {
		d, err := time.ParseDuration(fc.Sleep)
		if err != nil {
			return cfg, fmt.Errorf("parse sleep duration: %w", err)
		}
		cfg.SleepFor = d
	}

	return cfg, nil
}
