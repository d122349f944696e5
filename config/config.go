package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const DefaultCredentialsFile = "./data/credentials.yaml"

type Config struct {
	CredentialsFile string
	LogLevel        string
	HTTPTimeout     time.Duration
	ProxyURL        string
	ProxyType       string
	ProxyUser       string
	ProxyPass       string
}

var (
	config     *Config
	configOnce sync.Once
	configErr  error
)

// GetConfig loads the runtime config once per process. envFile may be empty,
// in which case ".env" in the working directory is tried.
func GetConfig(envFile string) (*Config, error) {
	configOnce.Do(func() {
		config, configErr = Load(envFile)
	})
	return config, configErr
}

// Load overlays envFile onto the process environment and reads the settings.
// A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s file: %w", envFile, err)
	}

	cfg := &Config{
		CredentialsFile: getEnv("CREDENTIALS_FILE", DefaultCredentialsFile),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		ProxyURL:        os.Getenv("PROXY_URL"),
		ProxyType:       getEnv("PROXY_TYPE", "http"),
		ProxyUser:       os.Getenv("PROXY_USER"),
		ProxyPass:       os.Getenv("PROXY_PASS"),
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", d)
		}
		cfg.HTTPTimeout = d
	}

	switch cfg.ProxyType {
	case "http", "socks5":
	default:
		return nil, fmt.Errorf("PROXY_TYPE must be \"http\" or \"socks5\", got %q", cfg.ProxyType)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
