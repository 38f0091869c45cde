package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	for _, k := range []string{EnvEndpoint, EnvGRPCAddr, EnvTransport, EnvLogLevel} {
		t.Setenv(k, "")
	}
	return filepath.Join(base, "chatty", "config.json")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestSaveThenLoadWithEnvOverride(t *testing.T) {
	p := isolate(t)

	c := Defaults()
	c.Endpoint = "http://localhost:4000/"
	c.LogLevel = "debug"
	require.NoError(t, Save(c))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Setenv(EnvLogLevel, "warn")
	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", got.HTTPBaseURL())
	assert.Equal(t, "warn", got.LogLevel)

	file, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "debug", file.LogLevel)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTransport, "carrier-pigeon")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown transport")
}

func TestSet(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.Set("transport", TransportGRPC))
	require.NoError(t, c.Set("request_timeout_seconds", "3"))
	assert.Equal(t, TransportGRPC, c.Transport)
	assert.Equal(t, 3*time.Second, c.Timeout())

	assert.Error(t, c.Set("request_timeout_seconds", "-1"))
	assert.Error(t, c.Set("colour", "blue"))
}

func TestAddresses(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		baseURL  string
		grpcAddr string
		insecure bool
	}{
		{
			name:     "explicit endpoint",
			cfg:      Config{Endpoint: "https://api.example.com/", GRPCAddr: "grpcs://identity.example.com:443"},
			baseURL:  "https://api.example.com",
			grpcAddr: "identity.example.com:443",
		},
		{
			name:     "derived from grpcs",
			cfg:      Config{GRPCAddr: "grpcs://identity.example.com:443"},
			baseURL:  "https://example.com",
			grpcAddr: "identity.example.com:443",
		},
		{
			name:     "plaintext grpc",
			cfg:      Config{GRPCAddr: "grpc://localhost:50051"},
			baseURL:  "http://localhost",
			grpcAddr: "localhost:50051",
			insecure: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.baseURL, tt.cfg.HTTPBaseURL())
			assert.Equal(t, tt.grpcAddr, tt.cfg.GRPCAddress())
			assert.Equal(t, tt.insecure, tt.cfg.GRPCInsecure())
		})
	}
}
