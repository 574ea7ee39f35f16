package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names the environment variable holding an explicit
	// config file path.
	EnvConfigPath = "SPOOFFINDER_CONFIG"
	// ConfigFileName is the file looked for in the working directory.
	ConfigFileName = "spooffinder.yaml"
	// ConfigDirName is the per-tool directory under the XDG config roots.
	ConfigDirName = "spooffinder"
)

// FindConfigPath walks the config locations and returns the first file that
// exists, or "" when none does. Locations, most specific first: the
// $SPOOFFINDER_CONFIG override, spooffinder.yaml in the working directory,
// config.yaml under $XDG_CONFIG_HOME/spooffinder, the same under ~/.config,
// and finally the system-wide copy in /etc/spooffinder.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		if path := filepath.Join(xdgHome, ConfigDirName, "config.yaml"); fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		if path := filepath.Join(home, ".config", ConfigDirName, "config.yaml"); fileExists(path) {
			return path
		}
	}

	if path := filepath.Join("/etc", ConfigDirName, "config.yaml"); fileExists(path) {
		return path
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
