package launcher

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens URLs in an external program
type Launcher struct {
	command string   // configured command, empty for system default
	args    []string // arguments placed before the URL
	goos    string
	start   func(*exec.Cmd) error
	logger  *slog.Logger
}

// New creates a launcher. An empty command uses the platform opener.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start,
		logger:  logger,
	}
}

// Open starts the program without waiting for it to exit
func (l *Launcher) Open(url string) error {
	cmd := l.commandFor(url)
	l.logger.Info("opening url", "command", cmd.Path, "url", url)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func (l *Launcher) commandFor(url string) *exec.Cmd {
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		return exec.Command(l.command, args...)
	}

	switch l.goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
