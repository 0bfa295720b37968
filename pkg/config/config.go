package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Config holds the application configuration. It is built from Default and
// command-line flags only; hyprtab reads no configuration file.
type Config struct {
	Debug   bool
	LogFile string

	// Resident starts the overlay hidden and waits for a show request.
	Resident bool

	LockFile   string
	SocketPath string

	Hyprctl string
	// Class is the window class hyprtab's own window is matched by in
	// compositor rules.
	Class string

	// NoRules leaves the overlay's window rules to the compositor config.
	// Rules added at runtime stay until the compositor reloads.
	NoRules bool

	// ShowKey is the fyne key name that reveals a hidden overlay.
	ShowKey string

	PanelWidth  float32
	PanelHeight float32
	TileWidth   float32

	Icons IconConfig
}

// IconConfig drives the icon lookup chain.
type IconConfig struct {
	Theme         string
	ThemeDirs     []string
	PixmapDirs    []string
	DesktopDirs   []string
	FallbackNames []string
	FallbackPath  string
	Size          int
}

// BindFlags registers the configurable fields on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write logs to this file")
	fs.BoolVar(&c.Resident, "hidden", c.Resident, "start hidden and wait for a show request")
	fs.StringVar(&c.LockFile, "lock-file", c.LockFile, "single-instance lock file")
	fs.StringVar(&c.SocketPath, "socket", c.SocketPath, "control socket path")
	fs.StringVar(&c.Hyprctl, "hyprctl", c.Hyprctl, "hyprctl binary")
	fs.StringVar(&c.Class, "class", c.Class, "window class used for compositor rules")
	fs.BoolVar(&c.NoRules, "no-rules", c.NoRules, "do not add window rules at startup, they are set in hyprland.conf")
	fs.StringVar(&c.ShowKey, "show-key", c.ShowKey, "key that shows a hidden overlay")
	fs.StringVar(&c.Icons.Theme, "icon-theme", c.Icons.Theme, "icon theme searched before hicolor")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.LockFile) == "":
		return fmt.Errorf("lock file path must not be empty")
	case strings.TrimSpace(c.Hyprctl) == "":
		return fmt.Errorf("hyprctl binary must not be empty")
	case strings.TrimSpace(c.Class) == "":
		return fmt.Errorf("window class must not be empty")
	case c.PanelWidth <= 0 || c.PanelHeight <= 0:
		return fmt.Errorf("panel size must be positive, got %vx%v", c.PanelWidth, c.PanelHeight)
	case c.TileWidth <= 0:
		return fmt.Errorf("tile width must be positive, got %v", c.TileWidth)
	}
	return nil
}
