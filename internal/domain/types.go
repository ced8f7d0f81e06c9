package domain

// StartupState models the shell startup lifecycle: the backend is spawned,
// polled for health, then the main window is presented.
type StartupState string

const (
	StartupStatePolling    StartupState = "polling"
	StartupStateSplashWait StartupState = "splash_wait"
	StartupStatePresenting StartupState = "presenting"
	StartupStateDone       StartupState = "done"
)

// ErrorCode identifies non-fatal and fatal shell errors.
type ErrorCode string

const (
	ErrorCodeStartup   ErrorCode = "startup"
	ErrorCodeSpawn     ErrorCode = "spawn"
	ErrorCodeSpeech    ErrorCode = "speech"
	ErrorCodeRecording ErrorCode = "recording"
)

// Minimum window size worth persisting or restoring. Resize events below this
// are transient layout noise and are never written to disk.
const (
	MinWindowWidth  = 480
	MinWindowHeight = 600
)

// WindowPreferences is the persisted window geometry.
type WindowPreferences struct {
	Width     uint `json:"width"`
	Height    uint `json:"height"`
	Maximized bool `json:"maximized"`
}

// Persistable reports whether the geometry meets the minimum-size invariant.
func (p WindowPreferences) Persistable() bool {
	return p.Width >= MinWindowWidth && p.Height >= MinWindowHeight
}

// ScreenSize is the size of the monitor the main window lives on.
type ScreenSize struct {
	Width  float64
	Height float64
}
