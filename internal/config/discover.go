package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that pins the config path.
const EnvConfig = "MEDIAIMPORT_CONFIG"

const appDir = "mediaimport"

// DefaultPath is the per-user config location under $XDG_CONFIG_HOME,
// falling back to ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, "config.toml")
}

// SearchPaths lists the candidate config files in priority order.
func SearchPaths() []string {
	return []string{
		"./config.toml",
		DefaultPath(),
		filepath.Join("/etc", appDir, "config.toml"),
	}
}

// Discover returns the config file to load. MEDIAIMPORT_CONFIG wins when set
// and must exist; otherwise the first existing entry of SearchPaths is used.
func Discover() (string, error) {
	if pinned := os.Getenv(EnvConfig); pinned != "" {
		if _, err := os.Stat(pinned); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, pinned, err)
		}
		return pinned, nil
	}

	candidates := SearchPaths()
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (searched %s)", ErrNotFound, strings.Join(candidates, ", "))
}
