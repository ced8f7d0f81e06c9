package config

import (
	"os"
	"path/filepath"
)

const (
	platformDir = "windows"
	binaryName  = "track-the-thing-backend.exe"
)

// UserDataDir resolves the per-user application data directory
// (%LocalAppData%\TrackTheThingDesktop).
func UserDataDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "TrackTheThingDesktop"), nil
}
