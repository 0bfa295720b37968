// Package ipc is the control socket a resident hyprtab listens on, so a
// compositor key binding can run `hyprtab show` to reveal the panel.
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

	"hyprtab/pkg/logger"
)

const (
	CommandShow = "show"
	CommandPing = "ping"

	StatusSuccess = "success"
	StatusError   = "error"

	// requestTimeout bounds how long one connection may take to send its
	// request and read the response.
	requestTimeout = 2 * time.Second
)

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler runs one command and returns the message sent back on success.
type Handler func() (string, error)

type Server struct {
	path     string
	log      *logger.Logger
	handlers map[string]Handler

	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

// NewServer returns a server for path. ping is always handled.
func NewServer(path string, log *logger.Logger) *Server {
	s := &Server{
		path:     path,
		log:      log,
		handlers: make(map[string]Handler),
		conns:    make(map[net.Conn]struct{}),
	}
	s.Handle(CommandPing, func() (string, error) { return "pong", nil })
	return s
}

// Handle registers h for command. Call before Start.
func (s *Server) Handle(command string, h Handler) {
	s.handlers[command] = h
}

// Start binds the socket and serves connections in the background.
func (s *Server) Start() error {
	// The caller holds the instance lock, so a leftover socket is stale.
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("failed to start socket server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Info("Socket server started", "path", s.path)

	s.wg.Add(1)
	go s.serve(listener)
	return nil
}

func (s *Server) serve(listener net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("Failed to accept connection", err)
			continue
		}
		if !s.track(conn) {
			conn.Close()
			return
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// track records conn so Close can interrupt it. It reports false once the
// server is closing.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(requestTimeout)); err != nil {
		s.log.Error("Failed to set connection deadline", err)
		return
	}

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		s.log.Error("Failed to decode request", err)
		return
	}

	s.log.Debug("Received request", "command", req.Command)

	var resp Response
	if h, ok := s.handlers[req.Command]; !ok {
		s.log.Warn("Unknown command received", "command", req.Command)
		resp = Response{Status: StatusError, Message: "unknown command: " + req.Command}
	} else if msg, err := h(); err != nil {
		s.log.Error("Command failed", err, "command", req.Command)
		resp = Response{Status: StatusError, Message: err.Error()}
	} else {
		resp = Response{Status: StatusSuccess, Message: msg}
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.log.Error("Failed to encode response", err)
	}
}

// Close stops accepting, drops connections still in flight, waits for the
// serving goroutines and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed || s.listener == nil {
		s.closed = true
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	listener := s.listener
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	err := listener.Close()
	s.wg.Wait()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}
