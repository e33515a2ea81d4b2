package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath points at an explicit config file and wins over
	// every searched location.
	EnvConfigPath = "OBJMAP_CONFIG"
	// ConfigFileName is what the working-directory lookup checks for.
	ConfigFileName = "objmap.yaml"
	// ConfigDirName is the directory used under XDG locations and /etc.
	ConfigDirName = "objmap"
)

// FindConfigPath returns the first config file that exists: the env
// override, then the working directory, then the XDG and system-wide
// locations. An empty result means no config file was found; callers
// fall back to defaults.
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

	for _, candidate := range searchDirs() {
		path := filepath.Join(candidate, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// searchDirs lists the base config directories in priority order.
// $XDG_CONFIG_HOME replaces ~/.config when set, per the XDG spec.
func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	} else if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	return append(dirs, "/etc")
}

// EnsureConfigDir creates the parent directory of configPath so Save
// works on a fresh install.
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
