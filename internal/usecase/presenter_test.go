package usecase

import (
	"errors"
	"testing"

	"trackthething/internal/domain"
)

func TestPreShowSizeClampsSavedGeometry(t *testing.T) {
	t.Parallel()

	saved := &domain.WindowPreferences{Width: 2000, Height: 50}
	screen := domain.ScreenSize{Width: 1920, Height: 1080}

	width, height := PreShowSize(saved, Geometry{HeightRatio: 0.95}, screen)
	if width != 1920 || height != 600 {
		t.Fatalf("unexpected clamped size: %vx%v", width, height)
	}
}

func TestPreShowSizeSavedWithinBoundsIsKept(t *testing.T) {
	t.Parallel()

	saved := &domain.WindowPreferences{Width: 1280, Height: 900}
	screen := domain.ScreenSize{Width: 1920, Height: 1080}

	width, height := PreShowSize(saved, Geometry{HeightRatio: 0.95}, screen)
	if width != 1280 || height != 900 {
		t.Fatalf("unexpected size: %vx%v", width, height)
	}
}

func TestPreShowSizeDefaultFormula(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 1920, Height: 1080}
	width, height := PreShowSize(nil, Geometry{HeightRatio: 0.95}, screen)

	if want := screen.Width*0.51 + 510; width != want {
		t.Fatalf("unexpected width: %v, want %v", width, want)
	}
	if want := screen.Height * 0.95; height != want {
		t.Fatalf("unexpected height: %v, want %v", height, want)
	}
}

func TestPreShowSizeDefaultsNeverExceedScreen(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 800, Height: 600}
	width, height := PreShowSize(nil, Geometry{HeightRatio: 0.98}, screen)

	if width != 800 {
		t.Fatalf("unexpected width: %v", width)
	}
	if height != screen.Height*0.98 {
		t.Fatalf("unexpected height: %v", height)
	}
}

func TestPreShowSizeWidthFloor(t *testing.T) {
	t.Parallel()

	// Tiny screen: the 51%+510 formula exceeds the screen, the screen cap
	// drops below the floor, and the floor wins.
	screen := domain.ScreenSize{Width: 300, Height: 1000}
	width, _ := PreShowSize(nil, Geometry{HeightRatio: 0.95}, screen)
	if width != 480 {
		t.Fatalf("unexpected width: %v", width)
	}
}

func TestPreShowSizeConfiguredWidth(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 1920, Height: 1080}
	width, _ := PreShowSize(nil, Geometry{HeightRatio: 0.95, Width: 1200}, screen)
	if width != 1200 {
		t.Fatalf("unexpected width: %v", width)
	}
}

func TestPostReadySizeFormula(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 1920, Height: 1080}
	width, height := PostReadySize(Geometry{HeightRatio: 0.95}, screen)

	if want := screen.Width*0.51 + 510; width != want {
		t.Fatalf("unexpected width: %v, want %v", width, want)
	}
	if want := screen.Height*0.85 + 150; height != want {
		t.Fatalf("unexpected height: %v, want %v", height, want)
	}
}

func TestPostReadySizeWidthFloor(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 1920, Height: 1080}
	width, _ := PostReadySize(Geometry{HeightRatio: 0.95, Width: 400}, screen)
	if width != 480 {
		t.Fatalf("unexpected width: %v", width)
	}
}

func TestPreShowForcesOutOfMaximizedState(t *testing.T) {
	t.Parallel()

	window := &fakeWindow{
		screen:     domain.ScreenSize{Width: 1920, Height: 1080},
		maximized:  true,
		fullscreen: true,
	}
	presenter := NewWindowPresenter(window, Geometry{HeightRatio: 0.95}, discardLogger())

	presenter.PreShow(nil)

	if !window.hidden {
		t.Fatalf("expected window to be hidden before sizing")
	}
	if !window.unmaximized || !window.exitedFullscreen {
		t.Fatalf("expected maximized/fullscreen state to be cleared")
	}
	if window.setWidth == 0 || !window.centered {
		t.Fatalf("expected size to be applied and window centered")
	}
}

func TestPreShowScreenQueryFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	window := &fakeWindow{screenErr: errors.New("no monitor")}
	presenter := NewWindowPresenter(window, Geometry{HeightRatio: 0.95}, discardLogger())

	presenter.PreShow(nil)

	if window.setWidth != 0 {
		t.Fatalf("expected no size to be applied when screen query fails")
	}
}

func TestPostReadyMaximizesWhenConfigured(t *testing.T) {
	t.Parallel()

	window := &fakeWindow{screen: domain.ScreenSize{Width: 1920, Height: 1080}}
	presenter := NewWindowPresenter(window, Geometry{HeightRatio: 0.95, Maximized: true}, discardLogger())

	presenter.PostReady()

	if !window.maximizeCalled {
		t.Fatalf("expected maximize")
	}
	if window.setWidth != 0 {
		t.Fatalf("expected no explicit size when maximizing")
	}
}

func TestPostReadyAppliesConcreteSize(t *testing.T) {
	t.Parallel()

	screen := domain.ScreenSize{Width: 1920, Height: 1080}
	window := &fakeWindow{screen: screen}
	presenter := NewWindowPresenter(window, Geometry{HeightRatio: 0.95}, discardLogger())

	presenter.PostReady()

	if window.maximizeCalled {
		t.Fatalf("unexpected maximize")
	}
	wantWidth, wantHeight := PostReadySize(Geometry{HeightRatio: 0.95}, screen)
	if window.setWidth != int(wantWidth) || window.setHeight != int(wantHeight) {
		t.Fatalf("unexpected size: %dx%d", window.setWidth, window.setHeight)
	}
	if !window.centered {
		t.Fatalf("expected window to be re-centered")
	}
}
