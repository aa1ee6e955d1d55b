package wm

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.i3wm.org/i3/v4"

	"i3-last/pkg/core"
)

// ErrUnavailable is returned when no i3 compatible window manager answers.
var ErrUnavailable = errors.New("window manager unavailable")

// Manager talks to i3 (or sway, which speaks the same IPC protocol).
type Manager struct {
	log     core.Logger
	name    string
	version string
}

// session describes which IPC socket to use.
type session struct {
	name   string
	socket string
}

// detectSession picks the WM from the environment. An empty socket means the
// i3 library resolves it itself via `i3 --get-socketpath`.
func detectSession() session {
	if sock := os.Getenv("SWAYSOCK"); sock != "" {
		return session{name: "sway", socket: sock}
	}
	if sock := os.Getenv("I3SOCK"); sock != "" {
		return session{name: "i3", socket: sock}
	}
	return session{name: "i3"}
}

// NewManager connects to the running window manager
func NewManager(log core.Logger) (*Manager, error) {
	s := detectSession()
	log.Info("Session type detected",
		"session", os.Getenv("XDG_SESSION_TYPE"),
		"wm", s.name,
		"socket", s.socket)

	if s.socket != "" {
		sock := s.socket
		i3.SocketPathHook = func() (string, error) {
			return sock, nil
		}
	}
	if s.name == "sway" {
		i3.IsRunningHook = swayIsRunning
	}

	version, err := i3.GetVersion()
	if err != nil {
		log.Error("Failed to reach window manager", err, "wm", s.name)
		return nil, fmt.Errorf("%w: failed to connect to %s, is it running? %v", ErrUnavailable, s.name, err)
	}

	log.Info("Window manager initialized", "name", s.name, "version", version.HumanReadable)
	return &Manager{log: log, name: s.name, version: version.HumanReadable}, nil
}

func swayIsRunning() bool {
	out, err := exec.Command("pgrep", "-c", "sway$").CombinedOutput()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != "0"
}

// Name returns the name of the current window manager
func (m *Manager) Name() string {
	return m.name
}

// Version returns the version string the WM reported
func (m *Manager) Version() string {
	return m.version
}
