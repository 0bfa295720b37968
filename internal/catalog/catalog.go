// Package catalog holds the windows shown by the overlay and the
// selection cursor over them.
package catalog

import "hyprtab/internal/wm"

// Catalog is an ordered list of windows plus a selected index. It is not
// safe for concurrent use; the overlay only touches it from the UI thread.
type Catalog struct {
	windows  []wm.Window
	selected int
}

func New() *Catalog {
	return &Catalog{}
}

// Replace swaps in a new window list. The selection is kept when it still
// fits and reset to the first window otherwise.
func (c *Catalog) Replace(windows []wm.Window) {
	c.windows = append([]wm.Window(nil), windows...)
	if c.selected < 0 || c.selected >= len(c.windows) {
		c.selected = 0
	}
}

// Advance moves the selection to the next window, wrapping at the end.
func (c *Catalog) Advance() {
	if len(c.windows) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.windows)
}

// Selected returns the window under the cursor.
func (c *Catalog) Selected() (wm.Window, bool) {
	if len(c.windows) == 0 {
		return wm.Window{}, false
	}
	return c.windows[c.selected], true
}

// Index returns the selected position, or -1 when the catalog is empty.
func (c *Catalog) Index() int {
	if len(c.windows) == 0 {
		return -1
	}
	return c.selected
}

func (c *Catalog) Len() int {
	return len(c.windows)
}

// Windows returns a copy of the current list.
func (c *Catalog) Windows() []wm.Window {
	return append([]wm.Window(nil), c.windows...)
}
