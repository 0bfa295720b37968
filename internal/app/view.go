package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"hyprtab/internal/icons"
	"hyprtab/internal/wm"
	"hyprtab/pkg/logger"
)

var (
	panelBackground = color.NRGBA{R: 20, G: 20, B: 20, A: 217}
	panelBorder     = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
)

// fyneView renders the tile row into a fyne window.
type fyneView struct {
	window    fyne.Window
	log       *logger.Logger
	icons     *icons.Resolver
	tileWidth float32

	row       *fyne.Container
	content   fyne.CanvasObject
	resources map[string]fyne.Resource
	tiles     []*tile

	onPress func(address string)
}

func newFyneView(w fyne.Window, resolver *icons.Resolver, tileWidth float32, log *logger.Logger) *fyneView {
	background := canvas.NewRectangle(panelBackground)
	background.StrokeColor = panelBorder
	background.StrokeWidth = 1
	background.CornerRadius = 20

	row := container.NewHBox()
	v := &fyneView{
		window:    w,
		log:       log,
		icons:     resolver,
		tileWidth: tileWidth,
		row:       row,
		content:   container.NewStack(background, container.NewPadded(container.NewCenter(row))),
		resources: make(map[string]fyne.Resource),
	}
	w.SetContent(v.content)
	return v
}

// Render rebuilds the whole tile row from windows.
func (v *fyneView) Render(windows []wm.Window, selected int) {
	objects := make([]fyne.CanvasObject, 0, len(windows))
	v.tiles = v.tiles[:0]
	for i, w := range windows {
		t := newTile(w, i == selected, v.icon(w.Class), v.tileWidth, v.press)
		v.tiles = append(v.tiles, t)
		objects = append(objects, t)
	}

	v.row.Objects = objects
	v.row.Refresh()
	v.log.Debug("Rendered tiles", "count", len(objects), "selected", selected)
}

func (v *fyneView) press(address string) {
	if v.onPress != nil {
		v.onPress(address)
	}
}

func (v *fyneView) Show() {
	v.window.Show()
	v.window.RequestFocus()
}

func (v *fyneView) Hide() {
	v.window.Hide()
}

// icon loads the resolved icon for class. Unreadable files and classes
// without an icon give a nil resource, which draws nothing.
func (v *fyneView) icon(class string) fyne.Resource {
	path := v.icons.Lookup(class)
	if path == "" {
		return nil
	}
	if res, ok := v.resources[path]; ok {
		return res
	}

	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		v.log.Debug("Failed to load icon", "class", class, "path", path, "error", err.Error())
		res = nil
	}
	v.resources[path] = res
	return res
}
