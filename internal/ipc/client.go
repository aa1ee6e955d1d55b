package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"i3-last/pkg/core"
)

const dialTimeout = time.Second

// SendCommand delivers command to the daemon listening on path.
func SendCommand(path, command string, log core.Logger) (Response, error) {
	log.Debug("Attempting to connect to socket server", "path", path)

	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("daemon not reachable at %s: %w", path, err)
	}
	defer conn.Close()

	req := Request{Command: command}
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}

	log.Debug("Request sent successfully", "command", command)

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	if resp.Status != "success" {
		return resp, fmt.Errorf("daemon: %s", resp.Message)
	}
	return resp, nil
}
