// Package config provides configuration management for glustik.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wellmaintained/glustik/internal/workspace"
)

// Config holds build defaults. Command-line flags override every field.
type Config struct {
	WorkspaceRoot string            `yaml:"-"`
	BasePath      string            `yaml:"base_path"`
	Safe          bool              `yaml:"safe"`
	CheckName     bool              `yaml:"check_name"`
	Confine       bool              `yaml:"confine"`
	InitFileName  string            `yaml:"init_file_name"`
	Module        string            `yaml:"module"`
	Context       map[string]string `yaml:"context"`
}

func defaults(root string) *Config {
	return &Config{
		WorkspaceRoot: root,
		BasePath:      root,
		Safe:          true,
		CheckName:     true,
		Context:       map[string]string{},
	}
}

// LoadConfig loads the configuration of the workspace containing the
// working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := workspace.FindRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load reads root/.glustik.yaml over the defaults, when present, and then
// applies GLUSTIK_BASE_PATH. A relative base path is taken relative to root.
func Load(root string) (*Config, error) {
	cfg := defaults(root)

	path := filepath.Join(root, workspace.ConfigFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if basePath := os.Getenv("GLUSTIK_BASE_PATH"); basePath != "" {
		cfg.BasePath = basePath
	}
	if cfg.BasePath == "" {
		cfg.BasePath = root
	}
	if !filepath.IsAbs(cfg.BasePath) {
		cfg.BasePath = filepath.Join(root, cfg.BasePath)
	}
	if cfg.Context == nil {
		cfg.Context = map[string]string{}
	}
	return cfg, nil
}
