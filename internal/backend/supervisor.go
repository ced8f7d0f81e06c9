package backend

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kballard/go-shellquote"
)

const packagedDirName = "track-the-thing-backend"

// Config describes where the backend lives and how to launch it.
type Config struct {
	// ResourceDir holds the packaged binary under
	// bin/<platform>/track-the-thing-backend/<binary>.
	ResourceDir string
	PlatformDir string
	BinaryName  string

	// RepoRoot is the working directory for the fallback launcher.
	RepoRoot string
	// LauncherCommand is a shell-style command line used when no packaged
	// binary is present.
	LauncherCommand string
}

// Supervisor owns the single backend child process for the application's
// lifetime. At any instant it owns zero or one processes; the only mutations
// are install-at-spawn and take-and-kill.
type Supervisor struct {
	cfg Config
	log *slog.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewSupervisor(cfg Config, log *slog.Logger) *Supervisor {
	return &Supervisor{cfg: cfg, log: log}
}

// Spawn launches the backend and takes ownership of the child. The packaged
// binary is preferred; a spawn failure there is a hard error and the fallback
// is not attempted. When the packaged binary is absent, the launcher command
// runs out of the repo root with the full current environment.
func (s *Supervisor) Spawn() error {
	if path := s.packagedPath(); path != "" {
		s.log.Info("checking for packaged backend", slog.String("path", path))
		if _, err := os.Stat(path); err == nil {
			return s.spawnPackaged(path)
		}
		s.log.Warn("packaged backend not found", slog.String("path", path))
	}

	program, args := splitLauncher(s.cfg.LauncherCommand)
	s.log.Info("launching backend via fallback command",
		slog.String("program", program), slog.Any("args", args))

	cmd := exec.Command(program, args...)
	cmd.Dir = s.cfg.RepoRoot
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start fallback backend: %w", err)
	}
	s.log.Info("backend process spawned", slog.Int("pid", cmd.Process.Pid))
	s.Replace(cmd)
	return nil
}

func (s *Supervisor) spawnPackaged(path string) error {
	s.log.Info("starting packaged backend", slog.String("path", path))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "TAURI_") {
			s.log.Info("backend env", slog.String("var", kv))
		}
	}

	cmd := exec.Command(path)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start packaged backend: %w", err)
	}
	s.log.Info("backend process spawned", slog.Int("pid", cmd.Process.Pid))
	s.Replace(cmd)
	return nil
}

// Replace installs a new child handle. Any previously owned child is
// terminated first so a double spawn can never leak a process.
func (s *Supervisor) Replace(cmd *exec.Cmd) {
	s.mu.Lock()
	previous := s.cmd
	s.cmd = cmd
	s.mu.Unlock()

	if previous != nil {
		s.log.Warn("replacing live backend child, terminating previous process")
		s.kill(previous)
	}
}

// Terminate takes ownership of the current child and kills it. Calling it
// with no owned child is a no-op. A failed kill is logged, not retried;
// by the time termination is requested the application is already exiting.
func (s *Supervisor) Terminate() {
	s.mu.Lock()
	cmd := s.cmd
	s.cmd = nil
	s.mu.Unlock()

	if cmd == nil {
		return
	}
	s.kill(cmd)
}

func (s *Supervisor) kill(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := cmd.Process.Kill(); err != nil {
		s.log.Warn("failed to stop backend process", slog.Any("error", err))
	}
	// Reap so the child does not linger as a zombie while the shell exits.
	_ = cmd.Wait()
}

func (s *Supervisor) packagedPath() string {
	if s.cfg.ResourceDir == "" {
		s.log.Warn("could not resolve packaged backend path")
		return ""
	}
	return filepath.Join(s.cfg.ResourceDir, "bin", s.cfg.PlatformDir, packagedDirName, s.cfg.BinaryName)
}

// splitLauncher shell-word-splits the configured launcher command. Malformed
// strings fall back to the default development launcher.
func splitLauncher(command string) (string, []string) {
	words, err := shellquote.Split(command)
	if err != nil || len(words) == 0 {
		return "python3", []string{"backend/desktop_launcher.py"}
	}
	return words[0], words[1:]
}
