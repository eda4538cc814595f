// Package config loads the server's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the server looks for its configuration when no
// -config flag is given.
const DefaultPath = "~/.cache/meetup-maker/config.yml"

// Database holds storage settings.
type Database struct {
	Path string `yaml:"path"`
}

// Server holds bind and session settings. SessionLength is the session idle
// timeout in seconds.
type Server struct {
	BindAddress   string `yaml:"bind_address"`
	BindPort      int    `yaml:"bind_port"`
	SessionLength int    `yaml:"session_length"`
}

// Logging holds optional log output settings.
type Logging struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// TLS holds optional transport-security settings. When SelfSigned is set and
// the files are absent, a self-signed pair is generated at startup.
type TLS struct {
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	SelfSigned bool   `yaml:"self_signed"`
}

// Config is the root of the YAML configuration file.
type Config struct {
	Database Database `yaml:"database"`
	Server   Server   `yaml:"server"`
	Logging  *Logging `yaml:"logging"`
	TLS      *TLS     `yaml:"tls"`
}

// Addr returns the bind address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.BindPort)
}

// Load reads and validates the configuration file at path. Any failure here
// is fatal to the caller: there is no way to run without configuration.
func Load(path string) (*Config, error) {
	path = ExpandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file %s does not exist", path)
		}
		return nil, fmt.Errorf("stat configuration file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("configuration file %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration file %s: %w", path, err)
	}

	cfg.Database.Path = ExpandHome(cfg.Database.Path)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Server.BindAddress == "" {
		return fmt.Errorf("server.bind_address is required")
	}
	if c.Server.BindPort <= 0 || c.Server.BindPort > 65535 {
		return fmt.Errorf("server.bind_port must be in 1..65535, got %d", c.Server.BindPort)
	}
	if c.Server.SessionLength <= 0 {
		return fmt.Errorf("server.session_length must be positive, got %d", c.Server.SessionLength)
	}
	if c.TLS != nil {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return fmt.Errorf("tls requires both cert_file and key_file")
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
