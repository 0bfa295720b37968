package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyprtab/internal/instance"
	"hyprtab/internal/ipc"
	"hyprtab/internal/wm"
	"hyprtab/pkg/config"
	"hyprtab/pkg/logger"
)

func TestSecondInstanceExitsWithMessage(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "hyprtab.lock")
	held, err := instance.Acquire(lockPath)
	require.NoError(t, err)
	defer held.Release()

	cfg := config.Default()
	// A hyprctl that cannot exist: reaching the compositor would show up
	// as a different error.
	cfg.Hyprctl = filepath.Join(t.TempDir(), "no-hyprctl")

	var stdout bytes.Buffer
	root := newRootCommand(cfg)
	root.SetOut(&stdout)
	root.SetArgs([]string{"--lock-file", lockPath})

	err = root.Execute()

	var code exitCode
	require.True(t, errors.As(err, &code), "got %v", err)
	assert.Equal(t, exitCode(1), code)
	assert.Equal(t, "Another instance is already running.\n", stdout.String())
}

func TestWriteWindowsFormats(t *testing.T) {
	windows := []wm.Window{
		{Address: "0x1", Title: "Terminal", Class: "kitty"},
		{Address: "0x2", Title: "Browser", Class: "firefox"},
	}

	var text bytes.Buffer
	require.NoError(t, writeWindows(&text, "text", windows))
	assert.Equal(t, "ADDRESS  CLASS    TITLE\n0x1      kitty    Terminal\n0x2      firefox  Browser\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeWindows(&js, "json", windows))
	assert.JSONEq(t, `[
		{"address":"0x1","title":"Terminal","class":"kitty"},
		{"address":"0x2","title":"Browser","class":"firefox"}
	]`, js.String())

	var yml bytes.Buffer
	require.NoError(t, writeWindows(&yml, "yaml", windows[:1]))
	assert.Contains(t, yml.String(), "- address: ")
	assert.Contains(t, yml.String(), "  title: Terminal\n")
	assert.Contains(t, yml.String(), "  class: kitty\n")

	assert.Error(t, writeWindows(&bytes.Buffer{}, "xml", windows))
}

func TestSendShow(t *testing.T) {
	dir, err := os.MkdirTemp("", "hyprtab")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	socket := filepath.Join(dir, "s.sock")

	var out bytes.Buffer
	assert.Error(t, sendShow(&out, socket, logger.Nop()))

	srv := ipc.NewServer(socket, logger.Nop())
	srv.Handle(ipc.CommandShow, func() (string, error) { return "overlay shown", nil })
	require.NoError(t, srv.Start())
	defer srv.Close()

	require.NoError(t, sendShow(&out, socket, logger.Nop()))
	assert.Equal(t, "overlay shown\n", out.String())
}
