package usecase

import (
	"context"
	"log/slog"
	"time"

	"trackthething/internal/domain"
	"trackthething/internal/ports"
)

// Config controls readiness polling behavior.
type Config struct {
	PollInterval     time.Duration
	SplashMinVisible time.Duration
}

// ReadinessCoordinator bridges backend startup latency to window
// presentation: it polls the health endpoint until the backend answers,
// enforces the minimum splash-visible duration, then presents the main
// window and closes the splash.
type ReadinessCoordinator struct {
	prober    ports.HealthProber
	presenter *WindowPresenter
	window    ports.MainWindow
	splash    ports.SplashScreen
	events    ports.EventSink
	cfg       Config
	log       *slog.Logger
}

func NewReadinessCoordinator(
	prober ports.HealthProber,
	presenter *WindowPresenter,
	window ports.MainWindow,
	splash ports.SplashScreen,
	events ports.EventSink,
	cfg Config,
	log *slog.Logger,
) *ReadinessCoordinator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 250 * time.Millisecond
	}
	return &ReadinessCoordinator{
		prober:    prober,
		presenter: presenter,
		window:    window,
		splash:    splash,
		events:    events,
		cfg:       cfg,
		log:       log,
	}
}

// Run blocks until the backend is healthy and the window has been presented.
// Callers launch it as a background goroutine; it runs to completion once
// per application launch. There is no overall deadline: a local backend is
// expected to eventually come up, and the splash communicates "still
// starting" until it does.
func (c *ReadinessCoordinator) Run(ctx context.Context) {
	start := time.Now()
	c.events.StartupStateChanged(domain.StartupStatePolling)

	for !c.prober.Ready(ctx) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.PollInterval):
		}
	}

	if remaining := c.cfg.SplashMinVisible - time.Since(start); remaining > 0 {
		c.events.StartupStateChanged(domain.StartupStateSplashWait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(remaining):
		}
	}

	c.events.StartupStateChanged(domain.StartupStatePresenting)
	c.presenter.PostReady()
	c.window.Show()
	c.splash.Close()

	c.events.StartupStateChanged(domain.StartupStateDone)
	c.log.Info("backend ready, main window displayed",
		slog.Duration("elapsed", time.Since(start)))
}
