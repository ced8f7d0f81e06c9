package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	platformDir = "linux"
	binaryName  = "track-the-thing-backend"
)

// UserDataDir resolves the per-user application data directory, honoring the
// XDG data home convention.
func UserDataDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "track-the-thing-desktop"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "track-the-thing-desktop"), nil
}
