// Package config provides centralized configuration management.
// Environment variables, standard paths, and the static vocabulary
// tables that drive command parsing and file grouping all live here.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// FmanEnv holds all fman environment variables.
type FmanEnv struct {
	// SessionID identifies this process run (FMAN_SESSION_ID)
	SessionID string

	// NoColor disables colored output (FMAN_NO_COLOR)
	NoColor bool

	// Home overrides the fman home directory (FMAN_HOME)
	Home string

	// LogLevel is the minimum log level (FMAN_LOG_LEVEL)
	LogLevel string
}

var (
	env     *FmanEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *FmanEnv {
	envOnce.Do(func() {
		env = &FmanEnv{
			SessionID: os.Getenv("FMAN_SESSION_ID"),
			NoColor:   os.Getenv("FMAN_NO_COLOR") == "1",
			Home:      os.Getenv("FMAN_HOME"),
			LogLevel:  getEnvDefault("FMAN_LOG_LEVEL", "info"),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Paths holds standard fman directory paths.
type Paths struct {
	// Home is the fman home directory (~/.fman)
	Home string

	// Data is the data directory (~/.fman/data)
	Data string

	// ConfigFile is the yaml config path (~/.fman/config.yaml)
	ConfigFile string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		root := Env().Home
		if root == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			root = filepath.Join(home, ".fman")
		}

		paths = &Paths{
			Home:       root,
			Data:       filepath.Join(root, "data"),
			ConfigFile: filepath.Join(root, "config.yaml"),
		}
	})
	return paths
}

// ResetPaths resets the cached paths (for testing).
func ResetPaths() {
	pathsOnce = sync.Once{}
	paths = nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DefaultFolders maps well-known folder names to their absolute paths
// under the user's home directory.
func DefaultFolders() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return map[string]string{
		"desktop":   filepath.Join(home, "Desktop"),
		"downloads": filepath.Join(home, "Downloads"),
		"documents": filepath.Join(home, "Documents"),
		"pictures":  filepath.Join(home, "Pictures"),
		"videos":    filepath.Join(home, "Videos"),
		"music":     filepath.Join(home, "Music"),
	}
}
