// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the OS keychain.
//
// Precedence, lowest to highest: built-in defaults, config.json, CHATTY_*
// environment variables, command-line flags (applied by the cmd package).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chatty/cli/internal/xdg"
)

// Transport names accepted in Config.Transport.
const (
	TransportGraphQL = "graphql"
	TransportGRPC    = "grpc"
)

// Environment variables that override file settings.
const (
	EnvEndpoint  = "CHATTY_ENDPOINT"
	EnvGRPCAddr  = "CHATTY_GRPC_ADDR"
	EnvTransport = "CHATTY_TRANSPORT"
	EnvLogLevel  = "CHATTY_LOG_LEVEL"
)

const (
	defaultEndpoint = "https://api.chatty.app"
	defaultGRPCAddr = "grpcs://identity.chatty.app:443"
	defaultTimeout  = 15
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel  string `json:"log_level"`
	Transport string `json:"transport"`
	// Endpoint is the base URL of the GraphQL HTTP API.
	Endpoint string `json:"endpoint"`
	// GRPCAddr is the identity service address, e.g. "grpcs://host:443".
	GRPCAddr       string `json:"grpc_addr"`
	TimeoutSeconds int    `json:"request_timeout_seconds"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel:       "info",
		Transport:      TransportGraphQL,
		Endpoint:       defaultEndpoint,
		GRPCAddr:       defaultGRPCAddr,
		TimeoutSeconds: defaultTimeout,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// Environment overrides are applied on top of whatever was read.
func Load() (Config, error) {
	c, err := LoadFile()
	if err != nil {
		return c, err
	}
	c.applyEnv()
	return c, c.Validate()
}

// LoadFile reads the config file alone, without environment overrides.
// Used when the result is going to be saved back.
func LoadFile() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvGRPCAddr); v != "" {
		c.GRPCAddr = v
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Transport = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the transport name and that the matching address is set.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportGraphQL:
		if c.HTTPBaseURL() == "" {
			return errors.New("config: endpoint is required for the graphql transport")
		}
	case TransportGRPC:
		if c.GRPCAddress() == "" {
			return errors.New("config: grpc_addr is required for the grpc transport")
		}
	default:
		return fmt.Errorf("config: unknown transport %q (want %q or %q)", c.Transport, TransportGraphQL, TransportGRPC)
	}
	return nil
}

// Set assigns one setting by its JSON key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log_level":
		c.LogLevel = value
	case "transport":
		c.Transport = value
	case "endpoint":
		c.Endpoint = value
	case "grpc_addr":
		c.GRPCAddr = value
	case "request_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: %s must be a positive integer", key)
		}
		c.TimeoutSeconds = n
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

// Timeout returns the per-request timeout for gateway calls.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HTTPBaseURL returns the GraphQL API base URL. When no endpoint is set it is
// derived from the gRPC address, assuming both live on the same host.
func (c Config) HTTPBaseURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	u, err := url.Parse(c.GRPCAddr)
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	switch scheme {
	case "grpcs":
		scheme = "https"
	case "grpc":
		scheme = "http"
	}
	host := strings.TrimPrefix(u.Hostname(), "identity.")
	return scheme + "://" + host
}

// GRPCAddress extracts host:port from the gRPC address.
// A bare "host:port" is accepted as well.
func (c Config) GRPCAddress() string {
	if c.GRPCAddr == "" {
		return ""
	}
	u, err := url.Parse(c.GRPCAddr)
	if err != nil || u.Host == "" {
		return c.GRPCAddr
	}
	return u.Host
}

// GRPCInsecure reports whether the gRPC address asks for plaintext ("grpc://").
func (c Config) GRPCInsecure() bool {
	return strings.HasPrefix(c.GRPCAddr, "grpc://")
}
