package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"trackthething/internal/backend"
	"trackthething/internal/bootstrap"
	"trackthething/internal/config"
	"trackthething/internal/domain"
	"trackthething/internal/media"
	"trackthething/internal/prefs"
	"trackthething/internal/speech"
	"trackthething/internal/usecase"
)

const (
	eventStartup      = "shell:startup"
	eventError        = "shell:error"
	eventSplashClose  = "shell:splash-close"
	eventWindowResize = "shell:window-resized"
)

// App is the Wails application root.
type App struct {
	ctx context.Context
	log *slog.Logger

	cfg         config.RuntimeConfig
	supervisor  *backend.Supervisor
	coordinator *usecase.ReadinessCoordinator
	presenter   *usecase.WindowPresenter
	prefs       *prefs.Store
	authorizer  *speech.Authorizer
	recorder    *media.Recorder
	bootErr     error
}

func NewApp(log *slog.Logger) *App {
	return &App{log: log}
}

// startup wires the runtime graph, sizes the hidden window, spawns the
// backend and hands off to the readiness coordinator. The window stays
// hidden until the coordinator presents it.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(&wailsWindow{app: a}, &wailsSplash{app: a}, a, a.log)
	if err != nil {
		a.bootErr = err
		a.ShellError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.supervisor = services.Supervisor
	a.coordinator = services.Coordinator
	a.presenter = services.Presenter
	a.prefs = services.Prefs
	a.authorizer = services.Authorizer
	a.recorder = services.Recorder

	a.presenter.PreShow(a.prefs.Load())

	if err := a.supervisor.Spawn(); err != nil {
		a.bootErr = err
		a.ShellError(domain.ErrorCodeSpawn, err.Error())
		return
	}

	runtime.EventsOn(ctx, eventWindowResize, a.onWindowResized)

	go a.coordinator.Run(ctx)
}

// beforeClose persists window geometry and stops the backend before the
// window closes. Returning false lets the close proceed.
func (a *App) beforeClose(ctx context.Context) bool {
	if a.prefs != nil {
		width, height := runtime.WindowGetSize(ctx)
		if width > 0 && height > 0 {
			a.prefs.Save(domain.WindowPreferences{
				Width:     uint(width),
				Height:    uint(height),
				Maximized: runtime.WindowIsMaximised(ctx),
			})
		}
	}
	if a.supervisor != nil {
		a.supervisor.Terminate()
	}
	return false
}

// shutdown runs on every exit path; Terminate is idempotent with beforeClose.
func (a *App) shutdown(_ context.Context) {
	if a.supervisor != nil {
		a.supervisor.Terminate()
	}
}

func (a *App) onWindowResized(args ...interface{}) {
	if a.prefs == nil {
		return
	}
	p, ok := resizedPreferences(args)
	if !ok {
		return
	}
	if a.ctx != nil {
		p.Maximized = runtime.WindowIsMaximised(a.ctx)
	}
	a.prefs.SaveResize(p)
}

// resizedPreferences extracts geometry from the frontend resize payload.
func resizedPreferences(args []interface{}) (domain.WindowPreferences, bool) {
	if len(args) == 0 {
		return domain.WindowPreferences{}, false
	}
	payload, ok := args[0].(map[string]interface{})
	if !ok {
		return domain.WindowPreferences{}, false
	}
	width, wok := payload["width"].(float64)
	height, hok := payload["height"].(float64)
	if !wok || !hok || width <= 0 || height <= 0 {
		return domain.WindowPreferences{}, false
	}
	return domain.WindowPreferences{Width: uint(width), Height: uint(height)}, true
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}
	return map[string]string{
		"healthUrl": a.cfg.HealthURL,
		"dataDir":   a.cfg.DataDir,
		"platform":  a.cfg.PlatformDir,
		"maximized": strconv.FormatBool(a.cfg.WindowMaximized),
	}
}

// RequestSpeechAuthorization resolves the system speech permission. All
// concurrent callers observe the same outcome.
func (a *App) RequestSpeechAuthorization() (bool, error) {
	if err := a.requireReady(); err != nil {
		return false, err
	}
	authorized, err := a.authorizer.Request(a.ctx)
	if err != nil {
		a.ShellError(domain.ErrorCodeSpeech, err.Error())
		return false, err
	}
	return authorized, nil
}

// IsSpeechAvailable reports whether a native speech bridge exists.
func (a *App) IsSpeechAvailable() bool {
	return a.authorizer != nil && a.authorizer.Available()
}

// StartVideoRecording begins recording and returns the output file path.
func (a *App) StartVideoRecording() (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	path, err := a.recorder.Start()
	if err != nil {
		a.ShellError(domain.ErrorCodeRecording, err.Error())
		return "", err
	}
	return path, nil
}

// StopVideoRecording finalizes the recording and returns the file path.
func (a *App) StopVideoRecording() (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	path, err := a.recorder.Stop()
	if err != nil {
		a.ShellError(domain.ErrorCodeRecording, err.Error())
		return "", err
	}
	return path, nil
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.supervisor == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// StartupStateChanged emits startup lifecycle updates to the frontend.
func (a *App) StartupStateChanged(state domain.StartupState) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventStartup, map[string]string{
		"state":   string(state),
		"message": startupStateMessage(state),
	})
}

// ShellError emits shell errors to the UI.
func (a *App) ShellError(code domain.ErrorCode, detail string) {
	a.log.Error("shell error", slog.String("code", string(code)), slog.String("detail", detail))
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func startupStateMessage(state domain.StartupState) string {
	switch state {
	case domain.StartupStatePolling:
		return "Starting backend..."
	case domain.StartupStateSplashWait:
		return "Almost ready..."
	case domain.StartupStatePresenting:
		return "Ready"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeSpawn:
		return "Backend failed to launch"
	case domain.ErrorCodeSpeech:
		return "Speech authorization failed"
	case domain.ErrorCodeRecording:
		return "Video recording error"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

// wailsWindow adapts the Wails window runtime to the MainWindow port.
type wailsWindow struct {
	app *App
}

func (w *wailsWindow) Hide() {
	if w.app.ctx != nil {
		runtime.WindowHide(w.app.ctx)
	}
}

func (w *wailsWindow) Show() {
	if w.app.ctx != nil {
		runtime.WindowShow(w.app.ctx)
	}
}

func (w *wailsWindow) Center() {
	if w.app.ctx != nil {
		runtime.WindowCenter(w.app.ctx)
	}
}

func (w *wailsWindow) SetSize(width int, height int) {
	if w.app.ctx != nil {
		runtime.WindowSetSize(w.app.ctx, width, height)
	}
}

func (w *wailsWindow) Maximize() {
	if w.app.ctx != nil {
		runtime.WindowMaximise(w.app.ctx)
	}
}

func (w *wailsWindow) Unmaximize() {
	if w.app.ctx != nil {
		runtime.WindowUnmaximise(w.app.ctx)
	}
}

func (w *wailsWindow) ExitFullscreen() {
	if w.app.ctx != nil {
		runtime.WindowUnfullscreen(w.app.ctx)
	}
}

func (w *wailsWindow) IsMaximized() bool {
	return w.app.ctx != nil && runtime.WindowIsMaximised(w.app.ctx)
}

func (w *wailsWindow) IsFullscreen() bool {
	return w.app.ctx != nil && runtime.WindowIsFullscreen(w.app.ctx)
}

func (w *wailsWindow) CurrentScreen() (domain.ScreenSize, error) {
	if w.app.ctx == nil {
		return domain.ScreenSize{}, errors.New("window context not ready")
	}
	screens, err := runtime.ScreenGetAll(w.app.ctx)
	if err != nil {
		return domain.ScreenSize{}, err
	}
	for _, s := range screens {
		if s.IsCurrent {
			return domain.ScreenSize{Width: float64(s.Size.Width), Height: float64(s.Size.Height)}, nil
		}
	}
	if len(screens) > 0 {
		return domain.ScreenSize{Width: float64(screens[0].Size.Width), Height: float64(screens[0].Size.Height)}, nil
	}
	return domain.ScreenSize{}, errors.New("no screens reported")
}

// wailsSplash closes the frontend splash overlay.
type wailsSplash struct {
	app *App
}

func (s *wailsSplash) Close() {
	if s.app.ctx != nil {
		runtime.EventsEmit(s.app.ctx, eventSplashClose)
	}
}
