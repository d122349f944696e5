package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound           = errors.New("not a file")
	ErrNotReadable        = errors.New("not readable")
	ErrNotParseable       = errors.New("not YAML")
	ErrInvalidCredentials = errors.New("invalid credentials file")
)

var (
	StatuspageKeys = []string{"apikey", "host", "pageid"}
	GeckoboardKeys = []string{"apikey", "host", "widgetkey"}
)

// ConfigError reports a credentials file that cannot be used. Err is always
// one of the sentinel errors above, possibly wrapped with detail.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("credentials %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Credentials holds one validated section of the credentials file.
type Credentials map[string]string

type credentialsFile struct {
	Credentials map[string]map[string]string `yaml:"credentials"`
}

// LoadCredentials reads path and returns the credentials.<section> mapping,
// which must contain exactly keys. The returned path is absolute with
// symlinks resolved.
func LoadCredentials(path, section string, keys []string) (Credentials, string, error) {
	fail := func(err error) (Credentials, string, error) {
		return nil, "", &ConfigError{Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fail(ErrNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrNotReadable, err))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fail(fmt.Errorf("%w: empty document", ErrNotParseable))
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrNotParseable, err))
	}

	var file credentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrInvalidCredentials, err))
	}
	if file.Credentials == nil {
		return fail(fmt.Errorf("%w: missing credentials section", ErrInvalidCredentials))
	}
	values, ok := file.Credentials[section]
	if !ok {
		return fail(fmt.Errorf("%w: missing %s section", ErrInvalidCredentials, section))
	}
	if err := checkKeys(values, keys); err != nil {
		return fail(err)
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrNotFound, err))
	}
	if target, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = target
	}

	creds := make(Credentials, len(values))
	for k, v := range values {
		creds[k] = v
	}
	return creds, resolved, nil
}

func checkKeys(values map[string]string, keys []string) error {
	if len(values) != len(keys) {
		got := make([]string, 0, len(values))
		for k := range values {
			got = append(got, k)
		}
		sort.Strings(got)
		return fmt.Errorf("%w: want %d keys, got %d %v", ErrInvalidCredentials, len(keys), len(values), got)
	}
	for _, key := range keys {
		if _, ok := values[key]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidCredentials, key)
		}
	}
	return nil
}
