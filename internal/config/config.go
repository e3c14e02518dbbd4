// Package config loads iFirma client settings.
//
// Settings come from three layers, later ones filling only what earlier ones
// left empty:
//
//   - an optional YAML file, with ${VAR} / $VAR expansion
//   - the process environment (IFIRMA_* variables)
//   - a .env file in the working directory, loaded into the environment
//
// Example file:
//
//	username: demo254343
//	invoice_key: ${IFIRMA_INVOICE_KEY}
//	user_key: ${IFIRMA_USER_KEY}
//	base_url: https://www.ifirma.pl
//	timeout: 30s
//	server:
//	  address: :8080
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvUsername   = "IFIRMA_USERNAME"
	EnvInvoiceKey = "IFIRMA_INVOICE_KEY"
	EnvUserKey    = "IFIRMA_USER_KEY"
	EnvBaseURL    = "IFIRMA_BASE_URL"
	EnvTimeout    = "IFIRMA_TIMEOUT"
	EnvAddress    = "IFIRMA_SERVER_ADDRESS"
)

// Config holds the account credentials and transport settings
type Config struct {
	Username   string        `yaml:"username"`
	InvoiceKey string        `yaml:"invoice_key"`
	UserKey    string        `yaml:"user_key"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	Server     ServerConfig  `yaml:"server"`
}

// ServerConfig holds HTTP gateway settings
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debug        bool          `yaml:"debug"`
}

// ErrMissingCredentials is returned by Validate when the account is not set up
var ErrMissingCredentials = errors.New("config: username and invoice key are required")

// Load reads path (may be empty) and fills the gaps from the environment
func Load(path string) (*Config, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setIfEmpty(&c.Username, EnvUsername)
	setIfEmpty(&c.InvoiceKey, EnvInvoiceKey)
	setIfEmpty(&c.UserKey, EnvUserKey)
	setIfEmpty(&c.BaseURL, EnvBaseURL)
	setIfEmpty(&c.Server.Address, EnvAddress)

	if c.Timeout == 0 {
		if v := os.Getenv(EnvTimeout); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("parse %s: %w", EnvTimeout, err)
			}
			c.Timeout = d
		}
	}
	return nil
}

// Validate checks that the client can be constructed
func (c *Config) Validate() error {
	if c.Username == "" || c.InvoiceKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

func setIfEmpty(dst *string, env string) {
	if *dst == "" {
		*dst = os.Getenv(env)
	}
}
