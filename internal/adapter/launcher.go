package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens painting images and storefront pages outside the terminal
type Launcher struct {
	command string   // configured viewer command, empty for auto-detect
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	// swapped in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// imageViewers lists terminal-friendly image viewers tried in order per
// platform before falling back to the system handler.
var imageViewers = map[string][]string{
	"linux":   {"imv", "feh", "sxiv", "eog"},
	"darwin":  {},
	"windows": {},
}

// NewLauncher creates a Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // async, don't wait
		},
	}
}

// OpenImage opens an image URL in the configured viewer, a detected image
// viewer, or the system default, in that order.
func (l *Launcher) OpenImage(url string) error {
	if url == "" {
		return fmt.Errorf("no image to open")
	}

	// Tier 1: user configured a specific viewer
	if l.command != "" {
		l.logger.Info("using configured viewer", "command", l.command, "url", url)
		return l.start(l.command, append(append([]string{}, l.args...), url)...)
	}

	// Tier 2: candidate chain
	candidates, ok := imageViewers[runtime.GOOS]
	if !ok {
		candidates = imageViewers["linux"]
	}
	for _, name := range candidates {
		if _, err := l.lookPath(name); err != nil {
			l.logger.Debug("viewer not available", "viewer", name)
			continue
		}
		if err := l.start(name, url); err == nil {
			l.logger.Info("opened with detected viewer", "viewer", name)
			return nil
		}
	}

	// Tier 3: system default
	return l.OpenPage(url)
}

// OpenPage opens a URL with the system default handler
func (l *Launcher) OpenPage(url string) error {
	name, args := defaultOpener(runtime.GOOS)
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)
	return l.start(name, append(args, url)...)
}

func defaultOpener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", nil
	}
}

// PaintingPageURL returns the storefront detail URL for a slug
func PaintingPageURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/art/" + slug
}
