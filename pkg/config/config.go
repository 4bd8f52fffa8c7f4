// Package config loads the optional reactivity.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up by LoadOptional.
const FileName = "reactivity.yaml"

// DefaultNamespace is the metrics namespace used when none can be derived.
const DefaultNamespace = "reactivity"

// Config represents the optional reactivity.yaml configuration.
type Config struct {
	Debug   DebugConfig   `yaml:"debug"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DebugConfig controls diagnostics.
type DebugConfig struct {
	// Enabled turns diagnostics on. Unset means on.
	Enabled *bool `yaml:"enabled,omitempty"`
	// Verbose adds stack traces to logged diagnostics.
	Verbose bool `yaml:"verbose,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Debug      bool
	Verbose    bool
	Namespace  string
}

// Default returns the settings used when no file is present.
func Default() *Resolved {
	return &Resolved{Debug: true, Namespace: DefaultNamespace}
}

// LoadOptional reads reactivity.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes reactivity.yaml contents.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads reactivity.yaml (if present) and resolves defaults.
// A missing go.mod is not an error; the namespace then falls back to
// DefaultNamespace.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	debug := true
	if cfg.Debug.Enabled != nil {
		debug = *cfg.Debug.Enabled
	}

	namespace := strings.TrimSpace(cfg.Metrics.Namespace)
	if namespace == "" {
		namespace = defaultNamespace(modulePath)
	}
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Debug:      debug,
		Verbose:    cfg.Debug.Verbose,
		Namespace:  namespace,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	return modfile.ModulePath(data), nil
}

// defaultNamespace derives a metric namespace from the last element of the
// module path, ignoring any major version suffix.
func defaultNamespace(modulePath string) string {
	if modulePath == "" {
		return DefaultNamespace
	}
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok {
		prefix = modulePath
	}
	parts := strings.Split(prefix, "/")
	return sanitizeNamespace(parts[len(parts)-1])
}

func sanitizeNamespace(segment string) string {
	var out []rune
	for _, r := range strings.TrimSpace(segment) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-' || r == '.':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return DefaultNamespace
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'_'}, out...)
	}
	return string(out)
}

func validateNamespace(ns string) error {
	for i, r := range ns {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return fmt.Errorf("metrics.namespace contains invalid character %q in %q", r, ns)
	}
	return nil
}
