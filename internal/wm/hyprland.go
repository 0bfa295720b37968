package wm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"hyprtab/pkg/logger"
)

// Runner executes a command and returns its standard output.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, err
	}
	return out, nil
}

type Hyprland struct {
	log *logger.Logger
	bin string
	run Runner
}

type HyprlandOption func(*Hyprland)

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) HyprlandOption {
	return func(h *Hyprland) {
		h.run = r
	}
}

// NewHyprland returns a client for the hyprctl binary bin. It never fails:
// a missing binary surfaces as ErrCompositorUnavailable on first use.
func NewHyprland(bin string, log *logger.Logger, opts ...HyprlandOption) *Hyprland {
	h := &Hyprland{log: log, bin: bin, run: execRunner}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

// Available reports whether the hyprctl binary can be found.
func (h *Hyprland) Available() error {
	path, err := exec.LookPath(h.bin)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", h.bin, err)
	}
	h.log.Debug("Found hyprctl", "path", path)
	return nil
}

func (h *Hyprland) ListWindows() ([]Window, error) {
	output, err := h.run(h.bin, "clients", "-j")
	if err != nil {
		return nil, fmt.Errorf("%w: hyprctl clients: %w", ErrCompositorUnavailable, err)
	}

	output = bytes.TrimSpace(output)
	if len(output) == 0 {
		return []Window{}, nil
	}

	var clients []struct {
		Address string `json:"address"`
		Class   string `json:"class"`
		Title   string `json:"title"`
		Mapped  *bool  `json:"mapped"`
	}
	if err := json.Unmarshal(output, &clients); err != nil {
		return nil, fmt.Errorf("%w: failed to parse hyprctl output: %w", ErrCompositorUnavailable, err)
	}

	windows := make([]Window, 0, len(clients))
	for _, c := range clients {
		if c.Address == "" || (c.Mapped != nil && !*c.Mapped) {
			continue
		}
		windows = append(windows, Window{
			Address: c.Address,
			Title:   c.Title,
			Class:   c.Class,
		})
	}

	h.log.Debug("Listed windows", "reported", len(clients), "kept", len(windows))
	return windows, nil
}

func (h *Hyprland) FocusAndRaise(address string) error {
	h.log.Debug("Focusing window", "address", address)

	target := "address:" + address
	if err := h.command("dispatch", "focuswindow", target); err != nil {
		return fmt.Errorf("%w: focus %s: %w", ErrActivation, address, err)
	}
	if err := h.command("dispatch", "alterzorder", "top,"+target); err != nil {
		return fmt.Errorf("%w: raise %s: %w", ErrActivation, address, err)
	}
	return nil
}

func (h *Hyprland) SuppressTitleBar(class string) error {
	if err := h.windowRule("plugin:hyprbars:nobar", class); err != nil {
		return fmt.Errorf("%w: %w", ErrRuleSetup, err)
	}
	return nil
}

func (h *Hyprland) PlaceWindow(class string, p Placement) error {
	rules := []string{
		"float",
		fmt.Sprintf("size %d %d", p.Width, p.Height),
		fmt.Sprintf("move %d %d", p.X, p.Y),
	}

	var errs []error
	for _, rule := range rules {
		if err := h.windowRule(rule, class); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrRuleSetup, err)
	}
	return nil
}

func (h *Hyprland) Monitors() ([]Monitor, error) {
	output, err := h.run(h.bin, "monitors", "-j")
	if err != nil {
		return nil, fmt.Errorf("%w: hyprctl monitors: %w", ErrCompositorUnavailable, err)
	}

	var monitors []Monitor
	if err := json.Unmarshal(output, &monitors); err != nil {
		return nil, fmt.Errorf("%w: failed to parse monitors: %w", ErrCompositorUnavailable, err)
	}
	return monitors, nil
}

func (h *Hyprland) windowRule(rule, class string) error {
	value := rule + ",class:^(" + regexp.QuoteMeta(class) + ")$"
	h.log.Debug("Registering window rule", "rule", value)
	return h.command("keyword", "windowrulev2", value)
}

// command runs a hyprctl command that answers "ok" on success. hyprctl
// exits 0 for rejected dispatches, so the reply text is checked too.
func (h *Hyprland) command(args ...string) error {
	output, err := h.run(h.bin, args...)
	if err != nil {
		return fmt.Errorf("hyprctl %s: %w", strings.Join(args, " "), err)
	}
	if reply := strings.TrimSpace(string(output)); reply != "" && reply != "ok" {
		return fmt.Errorf("hyprctl %s: %s", strings.Join(args, " "), strconv.Quote(reply))
	}
	return nil
}
