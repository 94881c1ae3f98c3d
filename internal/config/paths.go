package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for jsm.
type Paths struct {
	// ConfigFile is the path to the config file (~/.jsm/config.yaml).
	ConfigFile string

	// HomeDir is the jsm home directory (~/.jsm).
	HomeDir string
}

// DefaultPaths returns the default paths for jsm.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	jsmHome := filepath.Join(homeDir, ".jsm")

	return &Paths{
		ConfigFile: filepath.Join(jsmHome, "config.yaml"),
		HomeDir:    jsmHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If JSM_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// FileExists reports whether path names an existing file, after ~ expansion.
func FileExists(path string) (bool, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
