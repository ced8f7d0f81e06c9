package ports

import (
	"context"

	"trackthething/internal/domain"
)

// MainWindow is the webview window the shell presents once the backend is up.
// All operations are best-effort; implementations absorb runtime failures.
type MainWindow interface {
	Hide()
	// Show makes the window visible and focuses it.
	Show()
	Center()
	SetSize(width int, height int)
	Maximize()
	Unmaximize()
	ExitFullscreen()
	IsMaximized() bool
	IsFullscreen() bool
	// CurrentScreen returns the size of the monitor the window is on.
	CurrentScreen() (domain.ScreenSize, error)
}

// SplashScreen is the transient "still starting" surface shown until the
// backend reports healthy.
type SplashScreen interface {
	Close()
}

// HealthProber checks whether the backend is ready to serve.
type HealthProber interface {
	Ready(ctx context.Context) bool
}

// EventSink emits shell state/events to the UI.
type EventSink interface {
	StartupStateChanged(state domain.StartupState)
	ShellError(code domain.ErrorCode, detail string)
}

// SpeechBridge is the native speech-recognition layer. The system permission
// prompt resolves asynchronously through the result callback.
type SpeechBridge interface {
	Available() bool
	RequestAuthorization(result func(authorized bool))
}
