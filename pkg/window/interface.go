package window

// Unknown is the reserved application identifier recorded when the focused
// application cannot be determined. Probe failures degrade to it at the
// call site; they never abort a run.
const Unknown = "UNKNOWN"

// Info represents information about the currently focused window
type Info struct {
	AppName       string
	WindowTitle   string
	DisplayServer string // "x11" or "wayland"
}

// Probe is the interface that all focused-window lookup implementations
// must satisfy
type Probe interface {
	// ActiveWindow returns information about the currently focused window
	ActiveWindow() (*Info, error)

	// IsAvailable checks if this probe can run on the current system
	IsAvailable() bool

	// DisplayServer returns the display server type ("x11" or "wayland")
	DisplayServer() string

	// Close cleans up any resources used by the probe
	Close() error
}
