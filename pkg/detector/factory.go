package detector

import (
	"os"

	"github.com/screentrack/screentrack/pkg/integrations/wayland"
	"github.com/screentrack/screentrack/pkg/integrations/x11"
	"github.com/screentrack/screentrack/pkg/window"
)

// New picks a probe for the current session. GNOME Wayland gets the Shell
// probe; everything else falls through to X11, which also covers XWayland
// setups where the compositor keeps an X socket around.
func New() (window.Probe, error) {
	if DisplayServer() == "wayland" {
		if p := wayland.New(); p.IsAvailable() {
			return p, nil
		}
	}

	return x11.New()
}

// DisplayServer inspects the session environment and returns "x11",
// "wayland" or "unknown".
func DisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
