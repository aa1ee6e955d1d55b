package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"i3-last/internal/event"
	"i3-last/internal/history"
	"i3-last/pkg/core"
)

// statusTimeout bounds how long a status request waits for the dispatcher.
const statusTimeout = 2 * time.Second

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	History *history.Snapshot `json:"history,omitempty"`
}

// Commands understood by the server, mapped to the event they queue.
var commands = map[string]event.Kind{
	"back":    event.NavigateBackward,
	"forward": event.NavigateForward,
	"last":    event.RepeatLast,
	"quit":    event.Terminate,
	"status":  event.Status,
}

// IsCommand reports whether name is a known command.
func IsCommand(name string) bool {
	_, ok := commands[name]
	return ok
}

// Server accepts commands on a unix socket and queues them for the dispatcher.
type Server struct {
	path     string
	sink     event.Sink
	log      core.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

func NewServer(path string, sink event.Sink, log core.Logger) *Server {
	return &Server{path: path, sink: sink, log: log}
}

// Start binds the socket and serves connections in the background.
func (s *Server) Start() error {
	// Remove the socket file if it already exists
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Error("Failed to remove existing socket file", err, "path", s.path)
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		s.log.Error("Failed to start socket server", err, "path", s.path)
		return fmt.Errorf("failed to start socket server: %w", err)
	}
	s.listener = listener

	s.log.Info("Socket server started", "path", s.path)

	s.wg.Add(1)
	go s.serve()
	return nil
}

// Close stops accepting connections and removes the socket file.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.wg.Wait()
	os.Remove(s.path)
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("Failed to accept connection", err)
			continue
		}

		s.log.Debug("New connection accepted")
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		s.log.Warn("Dropping malformed request", "error", err.Error())
		s.reply(conn, Response{Status: "error", Message: "malformed request"})
		return
	}

	s.log.Debug("Received request", "command", req.Command)
	s.reply(conn, s.handle(req))
}

func (s *Server) handle(req Request) Response {
	kind, ok := commands[req.Command]
	if !ok {
		s.log.Warn("Unknown command received", "command", req.Command)
		return Response{Status: "error", Message: fmt.Sprintf("unknown command %q", req.Command)}
	}

	if kind == event.Status {
		return s.status()
	}

	if err := s.sink.Push(event.Command(kind)); err != nil {
		s.log.Error("Failed to queue command", err, "command", req.Command)
		return Response{Status: "error", Message: err.Error()}
	}
	return Response{Status: "success", Message: fmt.Sprintf("%s queued", req.Command)}
}

// status asks the dispatcher for a snapshot and waits for the answer.
func (s *Server) status() Response {
	reply := make(chan history.Snapshot, 1)
	if err := s.sink.Push(event.Event{Kind: event.Status, Reply: reply}); err != nil {
		return Response{Status: "error", Message: err.Error()}
	}

	select {
	case snap := <-reply:
		return Response{Status: "success", Message: "ok", History: &snap}
	case <-time.After(statusTimeout):
		return Response{Status: "error", Message: "timed out waiting for history"}
	}
}

func (s *Server) reply(conn net.Conn, resp Response) {
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		s.log.Error("Failed to encode response", err)
		return
	}
	s.log.Debug("Response sent successfully", "status", resp.Status)
}
