package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"hyprtab/internal/wm"
)

const (
	iconBoxSize     = 80
	iconSize        = 48
	titleHeight     = 40
	tileSidePadding = 10
)

var (
	tileBackground         = color.NRGBA{R: 25, G: 25, B: 25, A: 242}
	tileBorder             = color.NRGBA{R: 40, G: 40, B: 40, A: 230}
	selectedTileBackground = color.NRGBA{R: 40, G: 40, B: 40, A: 242}
	selectedTileBorder     = color.NRGBA{R: 60, G: 60, B: 60, A: 230}
	hoverTileBackground    = color.NRGBA{R: 50, G: 50, B: 50, A: 242}
	hoverTileBorder        = color.NRGBA{R: 70, G: 70, B: 70, A: 230}
	iconBackground         = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	selectedIconBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 38}
)

// tile shows one window: icon box on top, wrapped title below.
type tile struct {
	widget.BaseWidget

	window   wm.Window
	selected bool
	hovered  bool
	icon     fyne.Resource
	width    float32
	onPress  func(address string)
}

var (
	_ desktop.Mouseable = (*tile)(nil)
	_ desktop.Hoverable = (*tile)(nil)
)

func newTile(w wm.Window, selected bool, icon fyne.Resource, width float32, onPress func(string)) *tile {
	t := &tile{
		window:   w,
		selected: selected,
		icon:     icon,
		width:    width,
		onPress:  onPress,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tile) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(tileBackground)
	background.StrokeWidth = 1
	background.CornerRadius = 15

	iconBg := canvas.NewRectangle(iconBackground)
	iconBg.CornerRadius = 20

	img := canvas.NewImageFromResource(t.icon)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSquareSize(iconSize))

	iconBox := container.NewGridWrap(fyne.NewSquareSize(iconBoxSize),
		container.NewStack(iconBg, container.NewCenter(img)))

	title := widget.NewLabel(t.window.Title)
	title.Wrapping = fyne.TextWrapWord
	title.Alignment = fyne.TextAlignCenter
	titleBox := container.NewGridWrap(fyne.NewSize(t.width-2*tileSidePadding, titleHeight), title)

	content := container.NewVBox(
		container.NewCenter(iconBox),
		layout.NewSpacer(),
		container.NewCenter(titleBox),
	)

	r := &tileRenderer{
		tile:       t,
		background: background,
		iconBg:     iconBg,
		root:       container.NewStack(background, container.NewPadded(content)),
	}
	r.applyColors()
	return r
}

// MinSize pins the tile to its configured width.
func (t *tile) MinSize() fyne.Size {
	size := t.BaseWidget.MinSize()
	return fyne.NewSize(t.width, size.Height)
}

func (t *tile) MouseDown(*desktop.MouseEvent) {
	if t.onPress != nil {
		t.onPress(t.window.Address)
	}
}

func (t *tile) MouseUp(*desktop.MouseEvent) {}

func (t *tile) MouseIn(*desktop.MouseEvent) {
	t.hovered = true
	t.Refresh()
}

func (t *tile) MouseMoved(*desktop.MouseEvent) {}

func (t *tile) MouseOut() {
	t.hovered = false
	t.Refresh()
}

type tileRenderer struct {
	tile       *tile
	background *canvas.Rectangle
	iconBg     *canvas.Rectangle
	root       *fyne.Container
}

func (r *tileRenderer) applyColors() {
	switch {
	case r.tile.selected:
		r.background.FillColor = selectedTileBackground
		r.background.StrokeColor = selectedTileBorder
	case r.tile.hovered:
		r.background.FillColor = hoverTileBackground
		r.background.StrokeColor = hoverTileBorder
	default:
		r.background.FillColor = tileBackground
		r.background.StrokeColor = tileBorder
	}
	if r.tile.selected {
		r.iconBg.FillColor = selectedIconBackground
	} else {
		r.iconBg.FillColor = iconBackground
	}
}

func (r *tileRenderer) Layout(size fyne.Size) {
	r.root.Resize(size)
}

func (r *tileRenderer) MinSize() fyne.Size {
	return r.root.MinSize()
}

func (r *tileRenderer) Refresh() {
	r.applyColors()
	r.background.Refresh()
	r.iconBg.Refresh()
}

func (r *tileRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.root}
}

func (r *tileRenderer) Destroy() {}
