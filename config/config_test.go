package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CREDENTIALS_FILE", "LOG_LEVEL", "HTTP_TIMEOUT",
	"PROXY_URL", "PROXY_TYPE", "PROXY_USER", "PROXY_PASS",
}

// clearEnv unsets keys for the duration of the test. godotenv never
// overrides variables that are already present, so they must be absent.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		prev, ok := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCredentialsFile, cfg.CredentialsFile)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "http", cfg.ProxyType)
	assert.Empty(t, cfg.ProxyURL)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := writeFile(t, ".env", `CREDENTIALS_FILE=/etc/status/credentials.yaml
LOG_LEVEL=DEBUG
HTTP_TIMEOUT=15s
PROXY_URL=socks5://127.0.0.1:1080
PROXY_TYPE=socks5
PROXY_USER=alice
PROXY_PASS=secret
`)

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "/etc/status/credentials.yaml", cfg.CredentialsFile)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.ProxyURL)
	assert.Equal(t, "socks5", cfg.ProxyType)
	assert.Equal(t, "alice", cfg.ProxyUser)
	assert.Equal(t, "secret", cfg.ProxyPass)
}

func TestLoadEnvironmentWinsOverEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "ERROR")

	envFile := writeFile(t, ".env", "LOG_LEVEL=DEBUG\n")
	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT": "soon",
		"PROXY_TYPE":   "socks4",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoadNegativeTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "-1s")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "must not be negative")
}

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLogging("info", &buf))

	logger := logging.MustGetLogger("statuspage-geckoboard")
	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "["+strconv.Itoa(os.Getpid())+"]")

	if host, err := os.Hostname(); err == nil && host != "" {
		assert.Contains(t, out, host)
	}
}

func TestSetupLoggingInvalidLevel(t *testing.T) {
	assert.Error(t, SetupLogging("LOUD", &bytes.Buffer{}))
}
