package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type ServerConfig struct {
	Addr            string `json:"addr"`
	Backend         string `json:"backend"` // "memory" | "sqlite"
	LogLevel        string `json:"log_level"`
	LogFormat       string `json:"log_format"` // "text" | "json"
	MaxBodyBytes    int64  `json:"max_body_bytes"`
	ShutdownSeconds int    `json:"shutdown_seconds"`
}

// LoadServerConfig reads an optional JSON file, then applies ITEMS_* env
// overrides and defaults. An empty path skips the file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	var c ServerConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("ITEMS_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("ITEMS_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("ITEMS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ITEMS_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	if c.Addr == "" {
		c.Addr = "127.0.0.1:8080"
	}
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 2 << 20
	}
	if c.ShutdownSeconds <= 0 {
		c.ShutdownSeconds = 5
	}

	c.Backend = strings.ToLower(c.Backend)
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *ServerConfig) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be %q or %q", c.Backend, BackendMemory, BackendSQLite)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	return nil
}

type ClientConfig struct {
	ServerURL      string `json:"server_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// LoadClientConfig reads a client config file. A missing file yields defaults.
func LoadClientConfig(path string) (*ClientConfig, error) {
	var c ClientConfig
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	if v := os.Getenv("ITEMS_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://127.0.0.1:8080"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	return &c, nil
}

func SaveClientConfig(path string, c *ClientConfig) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}
