package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"hyprtab/pkg/logger"
)

const dialTimeout = 2 * time.Second

// SendCommand sends one request to the server at path and waits for its
// response.
func SendCommand(path, command string, log *logger.Logger) (Response, error) {
	log.Debug("Attempting to connect to socket server", "path", path)

	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(Request{Command: command}); err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}
