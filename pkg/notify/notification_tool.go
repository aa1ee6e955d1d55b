package notify

import (
	"fmt"
	"os/exec"
	"strconv"
)

type notificationTool struct {
	tool         string
	buildCommand func(tool string, n Notification) *exec.Cmd
}

func (t notificationTool) name() string { return t.tool }

func (t notificationTool) send(n Notification) error {
	path, err := exec.LookPath(t.tool)
	if err != nil {
		return fmt.Errorf("%s not installed", t.tool)
	}
	return t.buildCommand(path, n).Run()
}

var notificationTools = []notificationTool{
	{
		tool: "dunstify",
		buildCommand: func(tool string, n Notification) *exec.Cmd {
			return exec.Command(tool, "-u", n.Urgency.String(),
				"-t", strconv.Itoa(int(expireTimeoutMs)), n.Summary, n.Body)
		},
	},
	{
		tool: "notify-send",
		buildCommand: func(tool string, n Notification) *exec.Cmd {
			return exec.Command(tool, "-u", n.Urgency.String(), n.Summary, n.Body)
		},
	},
}
