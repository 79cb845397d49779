package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Resolve builds the configuration for an invocation. path is an explicit
// config file; when empty, FileName under root is used if present.
func Resolve(root, path string, o Overrides) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}
	if _, err := os.Stat(path); err == nil || explicit {
		file, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(file)
	}

	if o.Wallet != "" {
		cfg.Provider.Wallet = o.Wallet
	}
	if o.RegistryURL != "" {
		cfg.Registry.URL = o.RegistryURL
	}

	wallet, err := homedir.Expand(cfg.Provider.Wallet)
	if err != nil {
		return nil, fmt.Errorf("expanding wallet path: %w", err)
	}
	cfg.Provider.Wallet = wallet

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a config file. Missing keys stay empty.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	data, err := os.ReadFile(expanded) //nolint:gosec // user-provided --config path
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses config YAML content.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	for name, url := range cfg.Clusters {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("config: clusters: alias name is required")
		}
		if strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("config: clusters.%s: url is required", name)
		}
	}
	return &cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Provider.Wallet != "" {
		c.Provider.Wallet = o.Provider.Wallet
	}
	if o.Registry.URL != "" {
		c.Registry.URL = o.Registry.URL
	}
	if o.Registry.ProgramID != "" {
		c.Registry.ProgramID = o.Registry.ProgramID
	}
	if o.SolanaPath != "" {
		c.SolanaPath = o.SolanaPath
	}
	if len(o.Clusters) > 0 {
		c.Clusters = make(map[string]string, len(o.Clusters))
		for k, v := range o.Clusters {
			c.Clusters[k] = v
		}
	}
}

func validate(c *Config) error {
	if c.Provider.Wallet == "" {
		return fmt.Errorf("config: provider.wallet is required")
	}
	if c.Registry.URL == "" {
		return fmt.Errorf("config: registry.url is required")
	}
	if !strings.Contains(c.Registry.URL, "://") {
		return fmt.Errorf("config: registry.url %q must be an absolute URL", c.Registry.URL)
	}
	if c.Registry.ProgramID == "" {
		return fmt.Errorf("config: registry.program_id is required")
	}
	if c.SolanaPath == "" {
		return fmt.Errorf("config: solana_path is required")
	}
	return nil
}
