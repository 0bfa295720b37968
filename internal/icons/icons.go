// Package icons finds an icon file for a window class by trying a list of
// lookup strategies in order.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkoesters/xdg/desktop"

	"hyprtab/pkg/config"
)

// Strategy returns an icon path for class, or "" when it has none.
type Strategy func(class string) string

// Resolver runs a strategy chain and remembers the answer per class. The
// empty path means no icon and is cached too.
type Resolver struct {
	chain []Strategy
	cache map[string]string
}

func NewResolver(chain ...Strategy) *Resolver {
	return &Resolver{chain: chain, cache: make(map[string]string)}
}

// NewDefaultResolver builds the standard chain: themed class icon, desktop
// entry icon, named fallbacks, fixed fallback file.
func NewDefaultResolver(cfg config.IconConfig) *Resolver {
	theme := &Theme{
		Name:       cfg.Theme,
		Dirs:       cfg.ThemeDirs,
		PixmapDirs: cfg.PixmapDirs,
		Size:       cfg.Size,
	}
	return NewResolver(
		ThemedClass(theme),
		DesktopEntry(cfg.DesktopDirs, theme),
		Named(theme, cfg.FallbackNames...),
		File(cfg.FallbackPath),
	)
}

// Lookup returns the first non-empty path the chain produces for class.
func (r *Resolver) Lookup(class string) string {
	if path, ok := r.cache[class]; ok {
		return path
	}
	var path string
	for _, strategy := range r.chain {
		if path = strategy(class); path != "" {
			break
		}
	}
	r.cache[class] = path
	return path
}

// ThemedClass looks the class name up as an icon name.
func ThemedClass(t *Theme) Strategy {
	return func(class string) string {
		for _, name := range nameVariants(class) {
			if path := t.Find(name); path != "" {
				return path
			}
		}
		return ""
	}
}

// DesktopEntry reads the Icon key of <dir>/<class>.desktop and resolves it
// as an absolute path or through the theme.
func DesktopEntry(dirs []string, t *Theme) Strategy {
	return func(class string) string {
		for _, name := range nameVariants(class) {
			for _, dir := range dirs {
				icon := desktopIcon(filepath.Join(dir, name+".desktop"))
				if icon == "" {
					continue
				}
				if filepath.IsAbs(icon) {
					if fileExists(icon) {
						return icon
					}
					continue
				}
				if path := t.Find(icon); path != "" {
					return path
				}
			}
		}
		return ""
	}
}

// Named ignores the class and returns the first themed icon of names.
func Named(t *Theme, names ...string) Strategy {
	return func(string) string {
		for _, name := range names {
			if path := t.Find(name); path != "" {
				return path
			}
		}
		return ""
	}
}

// File returns path when it exists.
func File(path string) Strategy {
	return func(string) string {
		if path != "" && fileExists(path) {
			return path
		}
		return ""
	}
}

// Theme searches freedesktop icon theme directories.
type Theme struct {
	Name       string
	Dirs       []string
	PixmapDirs []string
	Size       int
}

// Only formats the UI can decode are matched; XPM pixmaps are skipped so
// the chain moves on to a usable fallback.
var iconExts = []string{".png", ".svg"}

// Find returns the path of the icon called name, preferring the theme over
// hicolor and the configured size over other sizes.
func (t *Theme) Find(name string) string {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return ""
	}

	for _, base := range t.Dirs {
		for _, theme := range t.themes() {
			for _, size := range t.sizeDirs() {
				for _, ext := range iconExts {
					path := filepath.Join(base, theme, size, "apps", name+ext)
					if fileExists(path) {
						return path
					}
				}
			}
		}
	}

	for _, dir := range t.PixmapDirs {
		for _, ext := range iconExts {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

func (t *Theme) themes() []string {
	if t.Name == "" || t.Name == "hicolor" {
		return []string{"hicolor"}
	}
	return []string{t.Name, "hicolor"}
}

func (t *Theme) sizeDirs() []string {
	size := t.Size
	if size <= 0 {
		size = 48
	}
	preferred := fmt.Sprintf("%dx%d", size, size)
	dirs := []string{preferred, "scalable"}
	for _, s := range []string{"64x64", "128x128", "256x256", "32x32"} {
		if s != preferred {
			dirs = append(dirs, s)
		}
	}
	return dirs
}

// nameVariants yields the lowercased class first, then the class as is.
func nameVariants(class string) []string {
	lower := strings.ToLower(class)
	if lower == class {
		return []string{class}
	}
	return []string{lower, class}
}

// desktopIcon returns the Icon value of the desktop entry at path.
func desktopIcon(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	entry, err := desktop.New(f)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(entry.Icon)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
