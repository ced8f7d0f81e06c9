package media

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const stopGrace = 3 * time.Second

var ErrAlreadyRecording = errors.New("already recording video")
var ErrNotRecording = errors.New("not currently recording")

// Config describes the capture input handed to the encoder.
type Config struct {
	Command     string // encoder binary, ffmpeg by default
	InputFormat string
	InputDevice string
	FrameRate   int
	VideoSize   string
}

// Recorder records camera+microphone video through an external ffmpeg
// process. At most one recording is active at a time.
type Recorder struct {
	cfg Config
	dir string
	log *slog.Logger

	mu      sync.Mutex
	current *recording
}

type recording struct {
	cmd  *exec.Cmd
	path string
}

// NewRecorder creates a recorder writing into dir.
func NewRecorder(cfg Config, dir string, log *slog.Logger) *Recorder {
	if cfg.Command == "" {
		cfg.Command = "ffmpeg"
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = "avfoundation"
	}
	if cfg.InputDevice == "" {
		cfg.InputDevice = "0:0"
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.VideoSize == "" {
		cfg.VideoSize = "1280x720"
	}
	return &Recorder{cfg: cfg, dir: dir, log: log}
}

// Start begins a recording and returns the output file path.
func (r *Recorder) Start() (string, error) {
	if r.dir == "" {
		return "", errors.New("media directory not configured")
	}

	r.mu.Lock()
	if r.current != nil {
		r.mu.Unlock()
		return "", ErrAlreadyRecording
	}
	r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create videos directory: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("video_%d.webm", time.Now().Unix()))

	args := []string{
		"-f", r.cfg.InputFormat,
		"-framerate", strconv.Itoa(r.cfg.FrameRate),
		"-video_size", r.cfg.VideoSize,
		"-i", r.cfg.InputDevice,
		"-c:v", "libvpx-vp9",
		"-b:v", "1M",
		"-c:a", "libopus",
		"-b:a", "128k",
		"-y",
		path,
	}

	cmd := exec.Command(r.cfg.Command, args...)
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start ffmpeg: %w (is ffmpeg installed?)", err)
	}
	r.log.Info("video recording started",
		slog.Int("pid", cmd.Process.Pid), slog.String("path", path))

	active := &recording{cmd: cmd, path: path}

	r.mu.Lock()
	if r.current != nil {
		r.mu.Unlock()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return "", ErrAlreadyRecording
	}
	r.current = active
	r.mu.Unlock()

	return path, nil
}

// Stop interrupts the encoder so it finalizes the container, waits for it to
// exit, and returns the recorded file path.
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	active := r.current
	r.current = nil
	r.mu.Unlock()

	if active == nil {
		return "", ErrNotRecording
	}

	// SIGINT lets ffmpeg write the trailer; a hung encoder gets killed.
	_ = active.cmd.Process.Signal(os.Interrupt)

	done := make(chan error, 1)
	go func() { done <- active.cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			r.log.Warn("encoder exited with error", slog.Any("error", err))
		}
	case <-time.After(stopGrace):
		r.log.Warn("encoder did not stop in time, killing")
		_ = active.cmd.Process.Kill()
		<-done
	}

	r.log.Info("video recording saved", slog.String("path", active.path))
	return active.path, nil
}
