package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for vmi.
type Paths struct {
	// ConfigFile is the path to the config file (~/.vmi/config.yaml).
	ConfigFile string

	// StoreDir is the default FileStore directory (~/.vmi/store).
	StoreDir string

	// HomeDir is the vmi home directory (~/.vmi).
	HomeDir string
}

// DefaultPaths returns the default paths for vmi.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	vmiHome := filepath.Join(homeDir, ".vmi")

	return &Paths{
		ConfigFile: filepath.Join(vmiHome, "config.yaml"),
		StoreDir:   filepath.Join(vmiHome, "store"),
		HomeDir:    vmiHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If VMI_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("VMI_CONFIG"); envPath != "" {
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
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
