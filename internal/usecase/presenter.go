package usecase

import (
	"log/slog"

	"trackthething/internal/domain"
	"trackthething/internal/ports"
)

// Geometry is the configured window sizing input.
type Geometry struct {
	HeightRatio float64
	Width       float64 // 0 when unset
	Maximized   bool
}

// WindowPresenter computes and applies window geometry at two distinct
// moments. The pre-show and post-ready formulas are deliberately different:
// pre-show restores or estimates a hidden-window size, post-ready re-asserts
// the final presentation size right before first display.
type WindowPresenter struct {
	window ports.MainWindow
	geo    Geometry
	log    *slog.Logger
}

func NewWindowPresenter(window ports.MainWindow, geo Geometry, log *slog.Logger) *WindowPresenter {
	return &WindowPresenter{window: window, geo: geo, log: log}
}

// PreShow sizes the still-hidden window from saved preferences or configured
// defaults. It first forces the window out of any maximized/fullscreen state
// left over from a previous run, so a restore can never trap the user in a
// state they cannot escape.
func (p *WindowPresenter) PreShow(saved *domain.WindowPreferences) {
	p.window.Hide()

	if p.window.IsMaximized() {
		p.log.Info("window was maximized, unmaximizing")
		p.window.Unmaximize()
	}
	if p.window.IsFullscreen() {
		p.log.Info("window was fullscreen, exiting fullscreen")
		p.window.ExitFullscreen()
	}

	screen, err := p.window.CurrentScreen()
	if err != nil {
		p.log.Warn("failed to query screen size", slog.Any("error", err))
		return
	}

	width, height := PreShowSize(saved, p.geo, screen)
	p.log.Info("setting window size",
		slog.Float64("width", width), slog.Float64("height", height))
	p.window.SetSize(int(width), int(height))
	p.window.Center()
}

// PostReady applies the final geometry right before first display: maximize
// when configured, otherwise recompute the presentation size and re-center.
func (p *WindowPresenter) PostReady() {
	if p.geo.Maximized {
		p.log.Info("maximizing window")
		p.window.Maximize()
		return
	}

	p.window.Unmaximize()
	p.window.ExitFullscreen()

	screen, err := p.window.CurrentScreen()
	if err != nil {
		p.log.Warn("failed to query screen size", slog.Any("error", err))
		return
	}

	width, height := PostReadySize(p.geo, screen)
	p.log.Info("re-applying window size before show",
		slog.Float64("width", width), slog.Float64("height", height))
	p.window.SetSize(int(width), int(height))
	p.window.Center()
}

// PreShowSize returns the hidden-window size. Saved preferences are clamped
// into [min, screen]; otherwise the width defaults to 51% of the screen plus
// 510px and the height to the configured ratio of the screen.
func PreShowSize(saved *domain.WindowPreferences, geo Geometry, screen domain.ScreenSize) (float64, float64) {
	if saved != nil {
		width := clamp(float64(saved.Width), domain.MinWindowWidth, screen.Width)
		height := clamp(float64(saved.Height), domain.MinWindowHeight, screen.Height)
		return width, height
	}

	width := geo.Width
	if width == 0 {
		width = screen.Width*0.51 + 510
	}
	if width > screen.Width {
		width = screen.Width
	}
	if width < domain.MinWindowWidth {
		width = domain.MinWindowWidth
	}

	height := screen.Height * geo.HeightRatio
	if height > screen.Height {
		height = screen.Height
	}
	return width, height
}

// PostReadySize returns the presentation size. The height constant differs
// from the pre-show formula on purpose.
func PostReadySize(geo Geometry, screen domain.ScreenSize) (float64, float64) {
	width := geo.Width
	if width == 0 {
		width = screen.Width*0.51 + 510
	}
	if width < domain.MinWindowWidth {
		width = domain.MinWindowWidth
	}

	height := screen.Height*0.85 + 150
	return width, height
}

func clamp(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
