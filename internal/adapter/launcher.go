package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoTrailer is returned when a title has no playable trailer
var ErrNoTrailer = errors.New("no trailer available")

// Launcher opens trailer URLs in a video player or the system browser
type Launcher struct {
	command string   // configured player command, empty to auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger

	goos     string
	lookPath func(string) (string, error)
	exec     func(cmd *exec.Cmd, wait bool) error
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path string // command name, or "open-a:AppName" for macOS apps
}

// streamingPlayers lists players that can open a watch page URL directly,
// in preference order per platform
var streamingPlayers = map[string][]launchPath{
	"darwin":  {{path: "open-a:IINA"}, {path: "mpv"}},
	"linux":   {{path: "mpv"}, {path: "celluloid"}, {path: "haruna"}},
	"windows": {{path: "mpv"}},
}

// NewLauncher creates a Launcher. An empty command auto-detects a player and
// falls back to the system URL handler.
func NewLauncher(cfg *UIConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Launcher{
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		exec:     execCommand,
	}
	if cfg != nil {
		l.command = cfg.Player
		l.args = cfg.PlayerArgs
	}
	return l
}

// Launch opens url in the configured player, a detected player, or the
// system default, in that order
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return ErrNoTrailer
	}

	// Tier 1: User configured a specific player
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		args := append(append([]string{}, l.args...), url)
		return l.run(l.command, args...)
	}

	// Tier 2: A player that streams watch pages
	for _, lp := range streamingPlayers[l.goos] {
		err := l.tryPath(lp, url)
		if err == nil {
			l.logger.Info("launched with detected player", "path", lp.path)
			return nil
		}
		l.logger.Debug("launch path not available", "path", lp.path, "error", err)
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no player found, using system default", "os", l.goos)
	switch l.goos {
	case "darwin":
		return l.run("open", url)
	case "windows":
		return l.run("cmd", "/c", "start", "", url)
	default:
		return l.run("xdg-open", url)
	}
}

func (l *Launcher) tryPath(lp launchPath, url string) error {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		if l.goos != "darwin" {
			return fmt.Errorf("open -a requires macOS")
		}
		// open -a only reports a missing app once it exits
		return l.runWait("open", "-a", app, url)
	}
	if _, err := l.lookPath(lp.path); err != nil {
		return err
	}
	return l.run(lp.path, url)
}

func (l *Launcher) run(name string, args ...string) error {
	return l.launch(false, name, args...)
}

func (l *Launcher) runWait(name string, args ...string) error {
	return l.launch(true, name, args...)
}

func (l *Launcher) launch(wait bool, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := l.exec(cmd, wait); err != nil {
		return fmt.Errorf("launch %s: %w", filepath.Base(name), err)
	}
	return nil
}

func execCommand(cmd *exec.Cmd, wait bool) error {
	if wait {
		return cmd.Run()
	}
	return cmd.Start()
}
