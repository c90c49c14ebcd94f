// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	envDBPath     = "INCODE_DB"
	envConfigPath = "INCODE_CONFIG"
)

// LoadEnv reads a .env file from the working directory when present.
func LoadEnv() {
	// A missing .env is the normal case.
	_ = godotenv.Load()
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the SQLite catalog path, honouring INCODE_DB.
func DefaultDBPath() string {
	if v := os.Getenv(envDBPath); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), "incode", "incode.db")
}

// DefaultConfigPath returns the TOML config path, honouring INCODE_CONFIG.
func DefaultConfigPath() string {
	if v := os.Getenv(envConfigPath); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), "incode", "config.toml")
}
