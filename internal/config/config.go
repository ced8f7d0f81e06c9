package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects the configuration profile. Release builds override it with
// -ldflags "-X trackthething/internal/config.Mode=release".
var Mode = "dev"

// RuntimeConfig stores runtime configuration for the shell. It is built once
// at startup and read-only afterwards.
type RuntimeConfig struct {
	RepoRoot    string
	ResourceDir string
	PlatformDir string
	BinaryName  string
	HealthURL   string
	DataDir     string

	WindowHeightRatio float64
	WindowWidth       float64 // 0 when unset
	WindowMaximized   bool
	SplashMinVisible  time.Duration

	LauncherCommand string
}

const (
	defaultHost        = "127.0.0.1"
	defaultPort        = 18765
	defaultHeightRatio = 0.95
	minHeightRatio     = 0.5
	maxHeightRatio     = 0.98
	minUsableWidth     = 320.0
	defaultSplashMinMS = 1200
	defaultLauncher    = "python3 backend/desktop_launcher.py"
	envFileName        = ".tourienv"
)

// Load applies the environment profile for the current build mode and
// snapshots the runtime configuration from the resulting environment.
func Load(log *slog.Logger) (RuntimeConfig, error) {
	repoRoot := resolveRepoRoot(log)

	if Mode == "release" {
		log.Info("release build, using platform defaults")
		if err := applyProductionEnv(log); err != nil {
			return RuntimeConfig{}, err
		}
	} else if err := loadDevEnv(repoRoot, log); err != nil {
		return RuntimeConfig{}, err
	}

	return fromEnv(repoRoot, log), nil
}

// resolveRepoRoot walks up from the compile-time location of this file
// (repoRoot/internal/config). It is only meaningful for development builds;
// packaged builds never run anything out of the repo root.
func resolveRepoRoot(log *slog.Logger) string {
	_, anchor, _, ok := runtime.Caller(0)
	if !ok {
		wd, err := os.Getwd()
		if err != nil {
			log.Warn("unable to resolve repository root, using current directory")
			return "."
		}
		log.Warn("unable to resolve repository root, using working directory", slog.String("dir", wd))
		return wd
	}
	root := filepath.Dir(filepath.Dir(filepath.Dir(anchor)))
	log.Info("resolved repo root", slog.String("root", root))
	return root
}

// loadDevEnv loads the dot-env override file from the repo root. A missing or
// unparseable file is not an error; the production defaults apply instead.
func loadDevEnv(repoRoot string, log *slog.Logger) error {
	path := filepath.Join(repoRoot, envFileName)
	if _, err := os.Stat(path); err != nil {
		log.Warn("env override file not found, using platform defaults", slog.String("path", path))
		return applyProductionEnv(log)
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn("failed to parse env override file, using platform defaults",
			slog.String("path", path), slog.Any("error", err))
		return applyProductionEnv(log)
	}
	log.Info("loaded desktop environment overrides", slog.String("path", path))
	return nil
}

// applyProductionEnv derives the backend environment from the per-user data
// directory. Failing to resolve that directory is fatal: there is nowhere
// sensible to persist anything.
func applyProductionEnv(log *slog.Logger) error {
	dataDir, err := UserDataDir()
	if err != nil {
		return fmt.Errorf("cannot resolve user data directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Warn("failed to create data directory", slog.String("dir", dataDir), slog.Any("error", err))
	}

	set := func(key, value string) { _ = os.Setenv(key, value) }
	set("TAURI_BACKEND_HOST", defaultHost)
	set("TAURI_BACKEND_PORT", strconv.Itoa(defaultPort))
	set("TAURI_DESKTOP_DATA_DIR", dataDir)
	set("TAURI_DATABASE_PATH", filepath.Join(dataDir, "ttt_desktop.db"))
	set("TAURI_UPLOADS_DIR", filepath.Join(dataDir, "uploads"))
	set("TAURI_STATIC_DIR", filepath.Join(dataDir, "static"))
	set("TAURI_BACKEND_LOG", filepath.Join(dataDir, "logs", "backend.log"))
	set("TAURI_WINDOW_HEIGHT_RATIO", "0.70")
	set("TAURI_WINDOW_MAXIMIZED", "false")

	log.Info("applied production environment", slog.String("data_dir", dataDir))
	return nil
}

func fromEnv(repoRoot string, log *slog.Logger) RuntimeConfig {
	host := envOrDefault("TAURI_BACKEND_HOST", defaultHost)
	port := envOrDefaultInt("TAURI_BACKEND_PORT", defaultPort)
	if port <= 0 || port > 65535 {
		port = defaultPort
	}

	splashMS := envOrDefaultInt("TAURI_SPLASH_MIN_VISIBLE_MS", defaultSplashMinMS)
	if splashMS < 0 {
		splashMS = defaultSplashMinMS
	}

	return RuntimeConfig{
		RepoRoot:          repoRoot,
		ResourceDir:       resolveResourceDir(repoRoot, log),
		PlatformDir:       platformDir,
		BinaryName:        binaryName,
		HealthURL:         fmt.Sprintf("http://%s:%d/health", host, port),
		DataDir:           strings.TrimSpace(os.Getenv("TAURI_DESKTOP_DATA_DIR")),
		WindowHeightRatio: envHeightRatio("TAURI_WINDOW_HEIGHT_RATIO"),
		WindowWidth:       envWindowWidth("TAURI_WINDOW_WIDTH"),
		WindowMaximized:   envOrDefaultBool("TAURI_WINDOW_MAXIMIZED", false),
		SplashMinVisible:  time.Duration(splashMS) * time.Millisecond,
		LauncherCommand:   envOrDefault("PYINSTALLER_ENTRYPOINT", defaultLauncher),
	}
}

// resolveResourceDir locates the bundled-resource directory next to the
// running executable. Development builds fall back to the repo root, where no
// packaged binary exists and the launcher command takes over.
func resolveResourceDir(repoRoot string, log *slog.Logger) string {
	exe, err := os.Executable()
	if err != nil {
		log.Warn("cannot resolve executable path, using repo root for resources", slog.Any("error", err))
		return repoRoot
	}
	return filepath.Dir(exe)
}

func envHeightRatio(key string) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultHeightRatio
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultHeightRatio
	}
	if parsed < minHeightRatio {
		return minHeightRatio
	}
	if parsed > maxHeightRatio {
		return maxHeightRatio
	}
	return parsed
}

func envWindowWidth(key string) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= minUsableWidth {
		return 0
	}
	return parsed
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
