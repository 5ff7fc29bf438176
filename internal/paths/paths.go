// Package paths decides where minidex keeps config.yaml and its data files.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Directory overrides read from the environment.
const (
	EnvConfigDir = "MINIDEX_CONFIG_DIR"
	EnvDataDir   = "MINIDEX_DATA_DIR"
)

// LocalDataDir is the working-directory data dir used when nothing else is set.
const LocalDataDir = ".minidex-db"

const appDir = "minidex"

// userHomeDir is replaced in tests.
var userHomeDir = os.UserHomeDir

// DefaultConfigDir returns minidex under os.UserConfigDir, which honors
// XDG_CONFIG_HOME on Linux.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, appDir), nil
}

// DefaultDataDir is where `init --global` points the stores: XDG_DATA_HOME
// (or ~/.local/share) on Linux, the config dir everywhere else.
func DefaultDataDir() (string, error) {
	if runtime.GOOS != "linux" {
		return DefaultConfigDir()
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}

// ResolveConfigDir picks --config-dir, then MINIDEX_CONFIG_DIR, then
// DefaultConfigDir. The result is absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks --data-dir, then data_dir from config.yaml, then
// MINIDEX_DATA_DIR, then LocalDataDir in the working directory. The result is
// absolute.
func ResolveDataDir(flag, configured string) (string, error) {
	return filepath.Abs(firstSet(flag, configured, os.Getenv(EnvDataDir), LocalDataDir))
}

func firstSet(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
