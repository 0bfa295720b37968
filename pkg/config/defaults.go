package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	DefaultLockFile   = "/tmp/hyprtab.lock"
	DefaultSocketPath = "/tmp/hyprtab.sock"
	DefaultClass      = "hyprtab"
	DefaultShowKey    = "LeftAlt"
)

// Default returns the configuration hyprtab runs with when no flags are given.
func Default() *Config {
	return &Config{
		LockFile:    DefaultLockFile,
		SocketPath:  DefaultSocketPath,
		Hyprctl:     "hyprctl",
		Class:       DefaultClass,
		ShowKey:     DefaultShowKey,
		PanelWidth:  900,
		PanelHeight: 200,
		TileWidth:   140,
		Icons:       defaultIcons(),
	}
}

func defaultIcons() IconConfig {
	return IconConfig{
		Theme:         "hicolor",
		ThemeDirs:     append([]string{filepath.Join(xdg.Home, ".icons")}, dataSubdirs("icons")...),
		PixmapDirs:    dataSubdirs("pixmaps"),
		DesktopDirs:   dataSubdirs("applications"),
		FallbackNames: []string{"archlinux"},
		FallbackPath:  "/usr/share/icons/hicolor/48x48/apps/archlinux.png",
		Size:          48,
	}
}

// dataSubdirs joins name onto the XDG data home followed by every XDG data
// dir, in lookup order.
func dataSubdirs(name string) []string {
	bases := append([]string{xdg.DataHome}, xdg.DataDirs...)
	dirs := make([]string, 0, len(bases))
	seen := make(map[string]bool, len(bases))
	for _, base := range bases {
		if base == "" {
			continue
		}
		dir := filepath.Join(base, name)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
