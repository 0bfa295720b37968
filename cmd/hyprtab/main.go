package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hyprtab/internal/app"
	"hyprtab/internal/instance"
	"hyprtab/pkg/config"
	"hyprtab/pkg/logger"
)

const version = "1.0.0"

const lockedMessage = "Another instance is already running."

// exitCode ends the process with a specific status after the command has
// already told the user what happened.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func main() {
	err := newRootCommand(config.Default()).Execute()
	if err == nil {
		return
	}
	var code exitCode
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "hyprtab",
		Short:         "Window switcher overlay for Hyprland",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd, cfg)
		},
	}
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(newListCommand(cfg), newShowCommand(cfg))
	return root
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	logLevel := zerolog.InfoLevel
	if cfg.Debug {
		logLevel = zerolog.DebugLevel
	}

	opts := []logger.Option{logger.WithConsole(), logger.WithLevel(logLevel)}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.LogFile))
	}
	return logger.NewLogger(opts...)
}

func runOverlay(cmd *cobra.Command, cfg *config.Config) error {
	// The lock is taken before anything else so a second instance leaves
	// without touching the compositor or creating a window.
	lock, err := instance.Acquire(cfg.LockFile)
	if err != nil {
		if errors.Is(err, instance.ErrLocked) {
			fmt.Fprintln(cmd.OutOrStdout(), lockedMessage)
			return exitCode(1)
		}
		return fmt.Errorf("failed to acquire instance lock: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		lock.Release()
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Starting hyprtab",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", cfg.Debug)

	// Interrupts keep the default behaviour: the process just dies and the
	// kernel drops the lock with the file descriptor.
	signal.Reset(os.Interrupt)

	exit := func(code int) {
		if err := lock.Release(); err != nil {
			log.Error("Failed to release instance lock", err)
		}
		log.Close()
		os.Exit(code)
	}

	overlay, err := app.NewHyprtab(cfg, log, exit)
	if err != nil {
		log.Error("Failed to create overlay", err)
		lock.Release()
		log.Close()
		return err
	}

	if err := overlay.Run(); err != nil {
		log.Error("Application error", err)
		exit(1)
	}
	exit(0)
	return nil
}
