package bootstrap

import (
	"log/slog"
	"path/filepath"
	"time"

	"trackthething/internal/backend"
	"trackthething/internal/config"
	"trackthething/internal/media"
	"trackthething/internal/ports"
	"trackthething/internal/prefs"
	"trackthething/internal/providers/httphealth"
	"trackthething/internal/speech"
	"trackthething/internal/usecase"
)

const (
	probeTimeout = 500 * time.Millisecond
	pollInterval = 250 * time.Millisecond
	authTimeout  = 30 * time.Second
)

// Services is the assembled runtime graph.
type Services struct {
	Config      config.RuntimeConfig
	Supervisor  *backend.Supervisor
	Coordinator *usecase.ReadinessCoordinator
	Presenter   *usecase.WindowPresenter
	Prefs       *prefs.Store
	Authorizer  *speech.Authorizer
	Recorder    *media.Recorder
}

// Build wires all shell dependencies for the current runtime. The only error
// it can return is the fatal one: no resolvable per-user data directory.
func Build(
	window ports.MainWindow,
	splash ports.SplashScreen,
	events ports.EventSink,
	log *slog.Logger,
) (Services, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return Services{}, err
	}

	prefsDir, err := prefs.DefaultDir()
	if err != nil {
		// Geometry persistence is a convenience; run without it.
		log.Warn("cannot resolve config directory, window preferences disabled", slog.Any("error", err))
		prefsDir = ""
	}

	supervisor := backend.NewSupervisor(backend.Config{
		ResourceDir:     cfg.ResourceDir,
		PlatformDir:     cfg.PlatformDir,
		BinaryName:      cfg.BinaryName,
		RepoRoot:        cfg.RepoRoot,
		LauncherCommand: cfg.LauncherCommand,
	}, log)

	presenter := usecase.NewWindowPresenter(window, usecase.Geometry{
		HeightRatio: cfg.WindowHeightRatio,
		Width:       cfg.WindowWidth,
		Maximized:   cfg.WindowMaximized,
	}, log)

	coordinator := usecase.NewReadinessCoordinator(
		httphealth.NewProber(cfg.HealthURL, probeTimeout),
		presenter,
		window,
		splash,
		events,
		usecase.Config{
			PollInterval:     pollInterval,
			SplashMinVisible: cfg.SplashMinVisible,
		},
		log,
	)

	mediaDir := ""
	if cfg.DataDir != "" {
		mediaDir = filepath.Join(cfg.DataDir, "videos")
	} else if dataDir, dirErr := config.UserDataDir(); dirErr == nil {
		mediaDir = filepath.Join(dataDir, "videos")
	}

	return Services{
		Config:      cfg,
		Supervisor:  supervisor,
		Coordinator: coordinator,
		Presenter:   presenter,
		Prefs:       prefs.NewStore(prefsDir, log),
		Authorizer:  speech.NewAuthorizer(speech.DefaultBridge(), authTimeout),
		Recorder:    media.NewRecorder(media.Config{}, mediaDir, log),
	}, nil
}
