package wm

import "errors"

var (
	// ErrCompositorUnavailable means hyprctl could not be run or replied
	// with something that is not the expected JSON.
	ErrCompositorUnavailable = errors.New("compositor unavailable")
	// ErrActivation means a focus or raise dispatch was rejected, usually
	// because the window closed after it was listed.
	ErrActivation = errors.New("window activation failed")
	// ErrRuleSetup means a window rule could not be registered.
	ErrRuleSetup = errors.New("window rule setup failed")
)

type WindowManager interface {
	// ListWindows returns the open windows in the order the compositor reports them
	ListWindows() ([]Window, error)
	// FocusAndRaise focuses the window and moves it to the top of the stack
	FocusAndRaise(address string) error
	// SuppressTitleBar registers a rule hiding the title bar for class
	SuppressTitleBar(class string) error
	// PlaceWindow registers float, size and position rules for class
	PlaceWindow(class string, p Placement) error
	// Monitors returns the connected outputs
	Monitors() ([]Monitor, error)
	// Name returns the WM name for logging/display
	Name() string
}

// Window is one open window as reported by the compositor.
type Window struct {
	Address string `json:"address" yaml:"address"`
	Title   string `json:"title" yaml:"title"`
	Class   string `json:"class" yaml:"class"`
}

type Monitor struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Scale   float64 `json:"scale"`
	Focused bool    `json:"focused"`
}

// Placement is a window rectangle in compositor layout coordinates.
type Placement struct {
	X, Y          int
	Width, Height int
}
