package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hyprtab/internal/ipc"
	"hyprtab/internal/wm"
	"hyprtab/pkg/config"
	"hyprtab/pkg/logger"
)

func newListCommand(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the windows the overlay would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			hyprland := wm.NewHyprland(cfg.Hyprctl, log)
			windows := wm.NewManager(hyprland, cfg.Class, log).ListWindows()
			return writeWindows(cmd.OutOrStdout(), output, windows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func writeWindows(w io.Writer, format string, windows []wm.Window) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(windows); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ADDRESS\tCLASS\tTITLE")
		for _, win := range windows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", win.Address, win.Class, win.Title)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newShowCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the panel of a running hyprtab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			return sendShow(cmd.OutOrStdout(), cfg.SocketPath, log)
		},
	}
}

func sendShow(w io.Writer, socketPath string, log *logger.Logger) error {
	resp, err := ipc.SendCommand(socketPath, ipc.CommandShow, log)
	if err != nil {
		return fmt.Errorf("no running hyprtab: %w", err)
	}
	if resp.Status != ipc.StatusSuccess {
		return fmt.Errorf("hyprtab refused: %s", resp.Message)
	}
	fmt.Fprintln(w, resp.Message)
	return nil
}
