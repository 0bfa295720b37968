package ipc

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyprtab/pkg/logger"
)

// socketPath stays short: unix socket paths are limited to ~108 bytes and
// t.TempDir can exceed that on some systems.
func socketPath(t *testing.T) string {
	dir, err := os.MkdirTemp("", "hyprtab")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

func TestServerHandlesCommands(t *testing.T) {
	path := socketPath(t)
	var shown atomic.Int32

	srv := NewServer(path, logger.Nop())
	srv.Handle(CommandShow, func() (string, error) {
		shown.Add(1)
		return "shown", nil
	})
	srv.Handle("broken", func() (string, error) {
		return "", errors.New("window already destroyed")
	})
	require.NoError(t, srv.Start())
	defer srv.Close()

	resp, err := SendCommand(path, CommandShow, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, Response{Status: StatusSuccess, Message: "shown"}, resp)
	assert.Equal(t, int32(1), shown.Load())

	resp, err = SendCommand(path, CommandPing, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Message)

	resp, err = SendCommand(path, "broken", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "window already destroyed", resp.Message)

	resp, err = SendCommand(path, "explode", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "unknown command")
}

func TestServerReplacesStaleSocketAndCleansUp(t *testing.T) {
	path := socketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	srv := NewServer(path, logger.Nop())
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = SendCommand(path, CommandPing, logger.Nop())
	assert.Error(t, err)
}

func TestCloseWithoutStart(t *testing.T) {
	srv := NewServer(socketPath(t), logger.Nop())
	assert.NoError(t, srv.Close())
}

func TestCloseDoesNotWaitForIdleClient(t *testing.T) {
	path := socketPath(t)
	srv := NewServer(path, logger.Nop())
	require.NoError(t, srv.Start())

	idle, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer idle.Close()

	// A client that never sends must not hold up other requests.
	resp, err := SendCommand(path, CommandPing, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Message)

	closed := make(chan error, 1)
	go func() { closed <- srv.Close() }()

	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(requestTimeout):
		t.Fatal("Close blocked on an idle client")
	}
}
