package notify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"i3-last/pkg/core"
)

// Urgency follows the freedesktop notification urgency levels.
type Urgency byte

const (
	Low Urgency = iota
	Normal
	Critical
)

func (u Urgency) String() string {
	switch u {
	case Low:
		return "low"
	case Critical:
		return "critical"
	default:
		return "normal"
	}
}

// Notification is a single desktop message.
type Notification struct {
	Summary string
	Body    string
	Urgency Urgency
}

// ErrNoBackend is returned when every delivery method failed.
var ErrNoBackend = errors.New("no notification backend available")

type backend interface {
	name() string
	send(n Notification) error
}

// NotifyService handles system notifications
type NotifyService struct {
	log      core.Logger
	backends []backend
	stderr   io.Writer
	terminal func() bool
}

// NewNotifyService tries the session bus first, then the usual command line
// tools, and finally stderr when attached to a terminal.
func NewNotifyService(appName string, log core.Logger) *NotifyService {
	backends := []backend{&dbusBackend{appName: appName}}
	for _, tool := range notificationTools {
		backends = append(backends, tool)
	}

	return &NotifyService{
		log:      log,
		backends: backends,
		stderr:   os.Stderr,
		terminal: func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
	}
}

// Show delivers n through the first backend that accepts it.
func (s *NotifyService) Show(n Notification) error {
	for _, b := range s.backends {
		err := b.send(n)
		if err == nil {
			s.log.Debug("Notification sent", "backend", b.name(), "urgency", n.Urgency.String())
			return nil
		}
		s.log.Debug("Notification backend failed", "backend", b.name(), "error", err.Error())
	}

	if s.terminal() {
		return s.printToTerminal(n)
	}
	return ErrNoBackend
}

// Error is a shortcut for a critical notification.
func (s *NotifyService) Error(summary string, err error) error {
	return s.Show(Notification{Summary: summary, Body: err.Error(), Urgency: Critical})
}

func (s *NotifyService) printToTerminal(n Notification) error {
	colorCode := "\x1b[32m" // green
	if n.Urgency == Critical {
		colorCode = "\x1b[31m" // red
	}
	_, err := fmt.Fprintf(s.stderr, "%s%s:\x1b[0m %s\n", colorCode, n.Summary, n.Body)
	return err
}
