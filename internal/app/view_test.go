package app

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyprtab/internal/icons"
	"hyprtab/internal/wm"
	"hyprtab/pkg/logger"
)

func newTestView(t *testing.T, resolver *icons.Resolver) *fyneView {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewTempWindow(t, nil)
	w.Resize(fyne.NewSize(900, 200))
	if resolver == nil {
		resolver = icons.NewResolver()
	}
	return newFyneView(w, resolver, 140, logger.Nop())
}

type tileSnapshot struct {
	address  string
	title    string
	selected bool
}

func snapshot(v *fyneView) []tileSnapshot {
	out := make([]tileSnapshot, 0, len(v.row.Objects))
	for _, obj := range v.row.Objects {
		t := obj.(*tile)
		out = append(out, tileSnapshot{address: t.window.Address, title: t.window.Title, selected: t.selected})
	}
	return out
}

func TestRenderIsIdempotent(t *testing.T) {
	v := newTestView(t, nil)

	v.Render(scenarioWindows, 1)
	first := snapshot(v)
	firstObjects := append([]fyne.CanvasObject(nil), v.row.Objects...)

	v.Render(scenarioWindows, 1)
	second := snapshot(v)

	assert.Equal(t, first, second)
	assert.Equal(t, []tileSnapshot{
		{address: "0x1", title: "Terminal"},
		{address: "0x2", title: "Browser", selected: true},
		{address: "0x3", title: "Editor"},
	}, second)
	for i := range firstObjects {
		assert.NotSame(t, firstObjects[i], v.row.Objects[i], "tiles are rebuilt, not reused")
	}
}

func TestRenderReplacesPreviousTiles(t *testing.T) {
	v := newTestView(t, nil)

	v.Render(scenarioWindows, 0)
	v.Render(scenarioWindows[:1], 0)
	assert.Len(t, v.row.Objects, 1)

	v.Render(nil, -1)
	assert.Empty(t, v.row.Objects)
	assert.Empty(t, v.tiles)
}

func TestTileWidthIsFixed(t *testing.T) {
	v := newTestView(t, nil)
	v.Render([]wm.Window{
		{Address: "0x1", Title: "a", Class: "kitty"},
		{Address: "0x2", Title: "a very long window title that has to wrap over several lines", Class: "code"},
	}, 0)

	for _, tl := range v.tiles {
		assert.Equal(t, float32(140), tl.MinSize().Width)
	}
}

func TestTilePressReportsAddress(t *testing.T) {
	v := newTestView(t, nil)
	var pressed []string
	v.onPress = func(address string) { pressed = append(pressed, address) }

	v.Render(scenarioWindows, 0)
	v.tiles[2].MouseDown(&desktop.MouseEvent{})

	assert.Equal(t, []string{"0x3"}, pressed)
}

func TestTileHoverStyle(t *testing.T) {
	v := newTestView(t, nil)
	v.Render(scenarioWindows, 0)

	tl := v.tiles[1]
	r := test.TempWidgetRenderer(t, tl).(*tileRenderer)
	assert.Equal(t, tileBackground, r.background.FillColor)

	tl.MouseIn(&desktop.MouseEvent{})
	r.Refresh()
	assert.Equal(t, hoverTileBackground, r.background.FillColor)

	tl.MouseOut()
	r.Refresh()
	assert.Equal(t, tileBackground, r.background.FillColor)

	selected := test.TempWidgetRenderer(t, v.tiles[0]).(*tileRenderer)
	assert.Equal(t, selectedTileBackground, selected.background.FillColor)
	assert.Equal(t, selectedIconBackground, selected.iconBg.FillColor)
}

func TestSelectedTileKeepsStyleWhileHovered(t *testing.T) {
	v := newTestView(t, nil)
	v.Render(scenarioWindows, 0)

	tl := v.tiles[0]
	r := test.TempWidgetRenderer(t, tl).(*tileRenderer)

	tl.MouseIn(&desktop.MouseEvent{})
	r.Refresh()
	assert.Equal(t, selectedTileBackground, r.background.FillColor)
	assert.Equal(t, selectedTileBorder, r.background.StrokeColor)

	// Tab moves the selection away while the pointer stays put.
	v.Render(scenarioWindows, 1)
	moved := test.TempWidgetRenderer(t, v.tiles[1]).(*tileRenderer)
	v.tiles[1].MouseIn(&desktop.MouseEvent{})
	moved.Refresh()
	assert.Equal(t, selectedTileBorder, moved.background.StrokeColor)
}

func TestIconsAreLoadedOncePerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kitty.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0644))

	resolver := icons.NewResolver(func(class string) string {
		switch class {
		case "kitty", "foot":
			return path
		case "broken":
			return filepath.Join(dir, "missing.png")
		}
		return ""
	})
	v := newTestView(t, resolver)

	v.Render([]wm.Window{
		{Address: "0x1", Class: "kitty"},
		{Address: "0x2", Class: "foot"},
		{Address: "0x3", Class: "broken"},
		{Address: "0x4", Class: "unknown"},
	}, 0)

	require.Len(t, v.tiles, 4)
	require.NotNil(t, v.tiles[0].icon)
	assert.Same(t, v.tiles[0].icon, v.tiles[1].icon)
	assert.Nil(t, v.tiles[2].icon)
	assert.Nil(t, v.tiles[3].icon)
	assert.Len(t, v.resources, 2)
}
