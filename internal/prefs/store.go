package prefs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"trackthething/internal/domain"
)

const fileName = "window_prefs.json"

// Store persists window geometry across restarts. Persistence is a
// convenience, not a correctness requirement: every failure is logged and
// absorbed.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore creates a store rooted at dir. An empty dir disables the store.
func NewStore(dir string, log *slog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// DefaultDir returns the per-user config directory for the shell.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "track-the-thing-desktop"), nil
}

// Load returns the saved preferences, or nil when no usable file exists.
// Missing or corrupt files are a cache miss, never an error.
func (s *Store) Load() *domain.WindowPreferences {
	if s.dir == "" {
		return nil
	}
	path := filepath.Join(s.dir, fileName)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("no window preferences file", slog.String("path", path))
		} else {
			s.log.Warn("failed to read window preferences", slog.String("path", path), slog.Any("error", err))
		}
		return nil
	}

	var loaded domain.WindowPreferences
	if err := json.Unmarshal(content, &loaded); err != nil {
		s.log.Warn("failed to parse window preferences", slog.String("path", path), slog.Any("error", err))
		return nil
	}

	s.log.Info("loaded window preferences",
		slog.Uint64("width", uint64(loaded.Width)),
		slog.Uint64("height", uint64(loaded.Height)),
		slog.Bool("maximized", loaded.Maximized))
	return &loaded
}

// Save writes the preferences unconditionally, creating the config directory
// if needed. Used on window close.
func (s *Store) Save(p domain.WindowPreferences) {
	if s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Warn("failed to create config directory", slog.String("dir", s.dir), slog.Any("error", err))
		return
	}

	content, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		s.log.Warn("failed to serialize window preferences", slog.Any("error", err))
		return
	}

	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.log.Warn("failed to write window preferences", slog.String("path", path), slog.Any("error", err))
		return
	}

	s.log.Info("saved window preferences",
		slog.Uint64("width", uint64(p.Width)),
		slog.Uint64("height", uint64(p.Height)),
		slog.Bool("maximized", p.Maximized))
}

// SaveResize persists geometry from a resize event. Sizes below the minimum
// threshold are transient layout noise and are skipped, which keeps drag
// resizes and pre-layout states out of the file.
func (s *Store) SaveResize(p domain.WindowPreferences) {
	if !p.Persistable() {
		return
	}
	s.Save(p)
}
