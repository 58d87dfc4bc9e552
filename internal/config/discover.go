package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// EnvVar names the environment variable that overrides discovery.
const EnvVar = "RIPPED_CONFIG"

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./ripped.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ripped", "config.toml")
}

// SearchPaths lists the locations Discover checks after RIPPED_CONFIG.
func SearchPaths() []string {
	return []string{
		"./ripped.toml",
		DefaultPath(),
		"/etc/ripped/config.toml",
	}
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. RIPPED_CONFIG environment variable
//  2. ./ripped.toml (current directory)
//  3. $XDG_CONFIG_HOME/ripped/config.toml
//  4. /etc/ripped/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv(EnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvVar, envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
