package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type uiConfig struct {
	Theme        string `yaml:"theme,omitempty"`
	Locale       string `yaml:"locale,omitempty"`
	DatabasePath string `yaml:"database_path,omitempty"`
	PollSeconds  int    `yaml:"poll_seconds,omitempty"`
}

func loadUIConfig() (*uiConfig, string) {
	configDir := resolveConfigDir()
	path := filepath.Join(configDir, "ui.yaml")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return &uiConfig{}, path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &uiConfig{}, path
	}
	var cfg uiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &uiConfig{}, path
	}
	return &cfg, path
}

func saveUIConfig(cfg *uiConfig, path string) error {
	if cfg == nil {
		cfg = &uiConfig{}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func resolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "dealdesk")
}

func (c *uiConfig) pollInterval() time.Duration {
	if c == nil || c.PollSeconds <= 0 {
		return defaultMarkerPollInterval
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func (c *uiConfig) databasePath() string {
	if c != nil {
		if trimmed := strings.TrimSpace(c.DatabasePath); trimmed != "" {
			return trimmed
		}
	}
	return filepath.Join(resolveConfigDir(), "dealdesk.sqlite")
}
