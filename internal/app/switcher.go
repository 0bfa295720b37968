package app

import (
	"fyne.io/fyne/v2"

	"hyprtab/internal/catalog"
	"hyprtab/internal/wm"
	"hyprtab/pkg/logger"
)

// State is the visibility of the overlay.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Compositor is what the switcher needs from the window manager. wm.Manager
// satisfies it and never returns errors.
type Compositor interface {
	ListWindows() []wm.Window
	Activate(address string) bool
}

// View draws the switcher. All calls happen on the UI thread.
type View interface {
	Render(windows []wm.Window, selected int)
	Show()
	Hide()
}

// Switcher owns the catalog and maps input to selection, activation and
// dismissal. Apart from the refresh worker everything runs on the UI
// thread; the worker hands its result over through dispatch.
type Switcher struct {
	log     *logger.Logger
	wm      Compositor
	view    View
	catalog *catalog.Catalog
	state   State
	showKey fyne.KeyName

	dispatch func(func())
	exit     func(int)
	cleanups []func()

	refreshDone chan struct{}
	dismissed   bool
}

type Option func(*Switcher)

// WithShowKey sets the key that reveals a hidden overlay.
func WithShowKey(key fyne.KeyName) Option {
	return func(s *Switcher) {
		s.showKey = key
	}
}

// WithDispatcher sets how work is posted to the UI thread.
func WithDispatcher(dispatch func(func())) Option {
	return func(s *Switcher) {
		s.dispatch = dispatch
	}
}

// WithExit sets the function that ends the process after dismissal.
func WithExit(exit func(int)) Option {
	return func(s *Switcher) {
		s.exit = exit
	}
}

// WithCleanup adds a hook run after the refresh worker is joined and
// before exit.
func WithCleanup(fn func()) Option {
	return func(s *Switcher) {
		s.cleanups = append(s.cleanups, fn)
	}
}

func NewSwitcher(compositor Compositor, view View, log *logger.Logger, opts ...Option) *Switcher {
	s := &Switcher{
		log:      log,
		wm:       compositor,
		view:     view,
		catalog:  catalog.New(),
		state:    Hidden,
		showKey:  "LeftAlt",
		dispatch: fyne.Do,
		exit:     func(int) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh lists the windows on a background goroutine. It runs at most
// once per switcher; later calls are ignored.
func (s *Switcher) Refresh() {
	if s.refreshDone != nil {
		return
	}
	done := make(chan struct{})
	s.refreshDone = done

	go func() {
		defer close(done)
		windows := s.wm.ListWindows()
		s.log.Debug("Window list ready", "count", len(windows))
		s.dispatch(func() {
			s.applyWindows(windows)
		})
	}()
}

// WaitRefresh blocks until the refresh worker has finished.
func (s *Switcher) WaitRefresh() {
	if s.refreshDone != nil {
		<-s.refreshDone
	}
}

func (s *Switcher) applyWindows(windows []wm.Window) {
	if s.dismissed {
		return
	}
	s.catalog.Replace(windows)
	s.render()
}

func (s *Switcher) render() {
	s.view.Render(s.catalog.Windows(), s.catalog.Index())
}

// HandleKey maps a key press to a switcher action. While hidden only the
// show key does anything.
func (s *Switcher) HandleKey(key fyne.KeyName) {
	if s.dismissed {
		return
	}
	if key == s.showKey {
		s.Show()
		return
	}
	if s.state != Visible {
		return
	}

	switch key {
	case fyne.KeyEscape:
		s.Dismiss()
	case fyne.KeyTab:
		if s.catalog.Len() == 0 {
			return
		}
		s.catalog.Advance()
		s.render()
	case fyne.KeyReturn, fyne.KeyEnter:
		s.ActivateSelected()
	}
}

// Show makes the panel visible without touching the catalog.
func (s *Switcher) Show() {
	if s.dismissed || s.state == Visible {
		return
	}
	s.state = Visible
	s.view.Show()
	s.log.Debug("Overlay shown")
}

// RequestShow posts Show to the UI thread. Safe from any goroutine.
func (s *Switcher) RequestShow() {
	s.dispatch(s.Show)
}

// ActivateSelected activates the window under the cursor. It does nothing
// when there are no windows.
func (s *Switcher) ActivateSelected() {
	w, ok := s.catalog.Selected()
	if !ok {
		return
	}
	s.Activate(w.Address)
}

// Activate focuses and raises address, then dismisses. A failed
// activation is dismissed the same way; the window is usually gone.
func (s *Switcher) Activate(address string) {
	if s.dismissed {
		return
	}
	s.wm.Activate(address)
	s.Dismiss()
}

// Dismiss hides the panel, joins the refresh worker, runs the cleanup
// hooks and exits with status 0.
func (s *Switcher) Dismiss() {
	if s.dismissed {
		return
	}
	s.dismissed = true
	s.state = Hidden
	s.view.Hide()

	s.WaitRefresh()
	for _, fn := range s.cleanups {
		fn()
	}

	s.log.Info("Overlay dismissed")
	s.exit(0)
}

func (s *Switcher) State() State {
	return s.state
}

// Selected returns the selected index, -1 when there are no windows.
func (s *Switcher) Selected() int {
	return s.catalog.Index()
}

func (s *Switcher) Windows() []wm.Window {
	return s.catalog.Windows()
}
