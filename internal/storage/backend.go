package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const fileExtension = ".yaml"

// FileBackend keeps one YAML file per key inside a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend stores files under dir. The directory is created on
// first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the file used for key.
func (backend *FileBackend) Path(key string) string {
	return filepath.Join(backend.dir, key+fileExtension)
}

// Read returns the file contents for key, or ErrNotFound.
func (backend *FileBackend) Read(key string) ([]byte, error) {
	rawData, err := os.ReadFile(backend.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return rawData, nil
}

// Write replaces the file for key. The data goes to a temporary file
// first so a crash never leaves a truncated snapshot behind.
func (backend *FileBackend) Write(key string, data []byte) error {
	if err := os.MkdirAll(backend.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	target := backend.Path(key)
	temp, err := os.CreateTemp(backend.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// StringPreferences is the subset of fyne.Preferences the preferences
// backend needs.
type StringPreferences interface {
	String(key string) string
	SetString(key string, value string)
}

// PreferencesBackend stores blobs as strings in the application
// preferences.
type PreferencesBackend struct {
	prefs StringPreferences
}

// NewPreferencesBackend wraps an application's preferences, for example
// fyne.App.Preferences().
func NewPreferencesBackend(prefs StringPreferences) *PreferencesBackend {
	return &PreferencesBackend{prefs: prefs}
}

// Read returns the stored string, or ErrNotFound when it is empty.
func (backend *PreferencesBackend) Read(key string) ([]byte, error) {
	value := backend.prefs.String(key)
	if value == "" {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

// Write stores data under key.
func (backend *PreferencesBackend) Write(key string, data []byte) error {
	backend.prefs.SetString(key, string(data))
	return nil
}
