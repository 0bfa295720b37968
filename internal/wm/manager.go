package wm

import (
	"hyprtab/pkg/logger"
)

// Manager is the boundary between the overlay and the compositor. Every
// compositor failure is logged here and turned into an empty or ignored
// result, so nothing above it has to handle errors.
type Manager struct {
	wm       WindowManager
	log      *logger.Logger
	ownClass string
}

// NewManager wraps wm. Windows of ownClass are never listed.
func NewManager(wm WindowManager, ownClass string, log *logger.Logger) *Manager {
	log.Info("Window manager initialized", "name", wm.Name())
	return &Manager{wm: wm, log: log, ownClass: ownClass}
}

// ListWindows returns the open windows, or an empty list when the
// compositor cannot be queried.
func (m *Manager) ListWindows() []Window {
	windows, err := m.wm.ListWindows()
	if err != nil {
		m.log.Error("Failed to list windows", err)
		return []Window{}
	}

	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		if m.ownClass != "" && w.Class == m.ownClass {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Activate focuses and raises the window at address. It reports whether
// the compositor accepted both dispatches.
func (m *Manager) Activate(address string) bool {
	if err := m.wm.FocusAndRaise(address); err != nil {
		m.log.Warn("Failed to activate window", "address", address, "error", err.Error())
		return false
	}
	m.log.Info("Activated window", "address", address)
	return true
}

// PrepareOverlay registers the display rules for the overlay's own window:
// no title bar, floating, and centered on the primary monitor. Each step is
// best effort. Hyprland keeps keyword rules until its config is reloaded,
// so every call adds another copy of each rule.
func (m *Manager) PrepareOverlay(width, height int) {
	if err := m.wm.SuppressTitleBar(m.ownClass); err != nil {
		m.log.Warn("Failed to suppress title bar", "class", m.ownClass, "error", err.Error())
	}

	monitors, err := m.wm.Monitors()
	if err != nil {
		m.log.Warn("Failed to query monitors", "error", err.Error())
		return
	}
	primary, ok := PrimaryMonitor(monitors)
	if !ok {
		m.log.Warn("No monitors reported, leaving placement to the compositor")
		return
	}

	placement := CenteredPlacement(primary, width, height)
	m.log.Debug("Placing overlay", "monitor", primary.Name,
		"x", placement.X, "y", placement.Y,
		"width", placement.Width, "height", placement.Height)

	if err := m.wm.PlaceWindow(m.ownClass, placement); err != nil {
		m.log.Warn("Failed to place overlay", "class", m.ownClass, "error", err.Error())
	}
}

// GetWMName returns the name of the current window manager
func (m *Manager) GetWMName() string {
	return m.wm.Name()
}
