// Package config reads and writes finbook.yaml, the project-level settings
// that sit next to the data documents.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside a finbook data directory.
const FileName = "finbook.yaml"

// Config represents the top-level finbook.yaml configuration.
type Config struct {
	Owner    OwnerConfig   `yaml:"owner"`
	Account  AccountConfig `yaml:"account"`
	Currency string        `yaml:"currency"`
	Git      GitConfig     `yaml:"git"`
}

// OwnerConfig identifies the person whose personal ledger this is.
type OwnerConfig struct {
	Name     string `yaml:"name"`
	Business string `yaml:"business,omitempty"`
}

// AccountConfig carries the personal account's bank metadata.
type AccountConfig struct {
	Holder        string `yaml:"holder"`
	BankName      string `yaml:"bank_name,omitempty"`
	AccountNumber string `yaml:"account_number,omitempty"`
}

// GitConfig controls snapshotting of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a finbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(ownerName string) *Config {
	return &Config{
		Owner:    OwnerConfig{Name: ownerName},
		Account:  AccountConfig{Holder: ownerName},
		Currency: "USD",
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Finbook",
			AuthorEmail: "ledger@finbook.dev",
		},
	}
}
