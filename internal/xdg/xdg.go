// Package xdg provides helpers to resolve XDG Base Directory paths for chatty.
// Configuration lives under the config dir; the profile cache and other
// regenerable state live under the state dir.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base.
const AppName = "chatty"

// ConfigDir returns the XDG config directory for chatty.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/chatty when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return dir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for chatty.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/chatty when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return dir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func dir(env, homeFallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	d := filepath.Join(base, AppName)
	if err := os.MkdirAll(d, 0o700); err != nil { // private dir
		return "", err
	}
	return d, nil
}
