package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"hyprtab/internal/icons"
	"hyprtab/internal/ipc"
	"hyprtab/internal/wm"
	"hyprtab/pkg/config"
	"hyprtab/pkg/logger"
)

const appID = "io.github.hyprtab"

// Hyprtab wires the compositor, the fyne window and the switcher together.
type Hyprtab struct {
	config   *config.Config
	log      *logger.Logger
	manager  *wm.Manager
	app      fyne.App
	window   fyne.Window
	view     *fyneView
	switcher *Switcher
	server   *ipc.Server
}

type options struct {
	app      fyne.App
	runner   wm.Runner
	dispatch func(func())
}

type HyprtabOption func(*options)

// WithFyneApp uses a instead of creating a new fyne application.
func WithFyneApp(a fyne.App) HyprtabOption {
	return func(o *options) {
		o.app = a
	}
}

// WithHyprctlRunner replaces the subprocess runner used for hyprctl.
func WithHyprctlRunner(r wm.Runner) HyprtabOption {
	return func(o *options) {
		o.runner = r
	}
}

// WithUIDispatcher sets how background work is posted to the UI thread.
func WithUIDispatcher(dispatch func(func())) HyprtabOption {
	return func(o *options) {
		o.dispatch = dispatch
	}
}

// NewHyprtab registers the compositor rules for the overlay window and
// builds it hidden. exit is called once the overlay is dismissed.
func NewHyprtab(cfg *config.Config, log *logger.Logger, exit func(int), opts ...HyprtabOption) (*Hyprtab, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var hyprland *wm.Hyprland
	if o.runner != nil {
		hyprland = wm.NewHyprland(cfg.Hyprctl, log, wm.WithRunner(o.runner))
	} else {
		hyprland = wm.NewHyprland(cfg.Hyprctl, log)
		if err := hyprland.Available(); err != nil {
			log.Warn("Compositor control interface unavailable", "error", err.Error())
		}
	}
	manager := wm.NewManager(hyprland, cfg.Class, log)
	if cfg.NoRules {
		log.Info("Skipping window rules, expecting them in the compositor config", "class", cfg.Class)
	} else {
		manager.PrepareOverlay(int(cfg.PanelWidth), int(cfg.PanelHeight))
	}

	a := o.app
	if a == nil {
		a = fyneapp.NewWithID(appID)
	}
	window := newOverlayWindow(a, cfg)

	h := &Hyprtab{
		config:  cfg,
		log:     log,
		manager: manager,
		app:     a,
		window:  window,
		server:  ipc.NewServer(cfg.SocketPath, log),
	}

	h.view = newFyneView(window, icons.NewDefaultResolver(cfg.Icons), cfg.TileWidth, log)
	switcherOpts := []Option{
		WithShowKey(fyne.KeyName(cfg.ShowKey)),
		WithExit(exit),
		WithCleanup(h.closeServer),
	}
	if o.dispatch != nil {
		switcherOpts = append(switcherOpts, WithDispatcher(o.dispatch))
	}
	h.switcher = NewSwitcher(manager, h.view, log, switcherOpts...)
	h.view.onPress = h.switcher.Activate

	h.bindInput()
	window.SetCloseIntercept(h.switcher.Dismiss)
	a.Lifecycle().SetOnStopped(h.switcher.Dismiss)

	h.server.Handle(ipc.CommandShow, func() (string, error) {
		h.switcher.RequestShow()
		return "overlay shown", nil
	})

	return h, nil
}

// newOverlayWindow prefers a borderless splash window and falls back to a
// regular one on drivers without desktop support.
func newOverlayWindow(a fyne.App, cfg *config.Config) fyne.Window {
	var w fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		w = drv.CreateSplashWindow()
		w.SetTitle(cfg.Class)
	} else {
		w = a.NewWindow(cfg.Class)
	}
	w.Resize(fyne.NewSize(cfg.PanelWidth, cfg.PanelHeight))
	w.SetFixedSize(true)
	w.CenterOnScreen()
	w.SetPadded(false)
	return w
}

// bindInput routes key presses to the switcher. Key-down events are used
// on desktop so that Tab and the modifier show key arrive too; typed keys
// would have Tab consumed by focus traversal.
func (h *Hyprtab) bindInput() {
	if dc, ok := h.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			h.switcher.HandleKey(ev.Name)
		})
		return
	}
	h.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		h.switcher.HandleKey(ev.Name)
	})
}

func (h *Hyprtab) closeServer() {
	if err := h.server.Close(); err != nil {
		h.log.Error("Failed to close control socket", err)
	}
}

// Run starts the overlay and blocks in the UI event loop.
func (h *Hyprtab) Run() error {
	h.start()
	h.app.Run()
	return nil
}

// start opens the control socket, kicks off the refresh and shows the
// panel unless running resident.
func (h *Hyprtab) start() {
	h.log.Info("Starting overlay",
		"resident", h.config.Resident,
		"class", h.config.Class,
		"show_key", h.config.ShowKey)

	if err := h.server.Start(); err != nil {
		h.log.Warn("Control socket unavailable", "path", h.config.SocketPath, "error", err.Error())
	}

	h.switcher.Refresh()
	if !h.config.Resident {
		h.switcher.Show()
	}
}
