package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNoConfigDir is returned when neither a config nor a home directory
// is known.
var ErrNoConfigDir = errors.New("no config directory available")

// ConfigDir returns the per-user directory for appName's files. It uses
// os.UserConfigDir and falls back to the platform default under the home
// directory when that fails.
func ConfigDir(appName string) (string, error) {
	base, baseErr := os.UserConfigDir()
	homeDir, homeErr := os.UserHomeDir()
	return resolveConfigDir(runtime.GOOS, appName, base, baseErr, homeDir, homeErr)
}

func resolveConfigDir(goos, appName, base string, baseErr error, homeDir string, homeErr error) (string, error) {
	if baseErr == nil && base != "" {
		return filepath.Join(base, appName), nil
	}
	if homeErr == nil && homeDir != "" {
		return filepath.Join(fallbackConfigDir(goos, homeDir), appName), nil
	}

	err := baseErr
	if err == nil {
		err = homeErr
	}
	if err == nil {
		return "", ErrNoConfigDir
	}
	return "", fmt.Errorf("get config dir: %w: %w", ErrNoConfigDir, err)
}

func fallbackConfigDir(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming")
	default:
		return filepath.Join(homeDir, ".config")
	}
}
