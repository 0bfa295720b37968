package wm

// PrimaryMonitor picks the focused monitor, falling back to the first one.
func PrimaryMonitor(monitors []Monitor) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Focused {
			return m, true
		}
	}
	return monitors[0], true
}

// CenteredPlacement centers a width×height window horizontally on m with
// its top edge at one quarter of the monitor height. Monitor pixels are
// converted to layout units through the monitor scale.
func CenteredPlacement(m Monitor, width, height int) Placement {
	scale := m.Scale
	if scale <= 0 {
		scale = 1
	}
	logicalWidth := int(float64(m.Width) / scale)
	logicalHeight := int(float64(m.Height) / scale)

	x := m.X + (logicalWidth-width)/2
	if x < m.X {
		x = m.X
	}

	return Placement{
		X:      x,
		Y:      m.Y + logicalHeight/4,
		Width:  width,
		Height: height,
	}
}
