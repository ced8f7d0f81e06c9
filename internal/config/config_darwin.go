package config

import (
	"os"
	"path/filepath"
)

const (
	platformDir = "macos"
	binaryName  = "track-the-thing-backend"
)

// UserDataDir resolves the per-user application data directory.
func UserDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", "TrackTheThingDesktop"), nil
}
