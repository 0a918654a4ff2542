package wayland

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/screentrack/screentrack/pkg/window"
)

// gnomeShellScript asks Mutter for the window holding input focus. The
// result is serialized to JSON inside the gdbus reply.
const gnomeShellScript = `
	let fw = global.get_window_actors()
		.map(a => a.meta_window)
		.find(w => w.has_focus());
	if (!fw) {
		fw = global.display.get_focus_window();
	}
	if (fw) {
		JSON.stringify({
			wm_class: fw.get_wm_class() || '',
			title: fw.get_title() || ''
		});
	} else {
		'null';
	}
`

// Probe implements window.Probe for GNOME on Wayland via the Shell's Eval
// D-Bus method. Other Wayland compositors expose no focused-window query,
// so availability is limited to GNOME-like desktops.
type Probe struct {
	hasGdbus bool
}

// New creates a new Wayland probe
func New() *Probe {
	_, err := exec.LookPath("gdbus")
	return &Probe{hasGdbus: err == nil}
}

// IsAvailable checks for a GNOME Wayland session with gdbus present
func (p *Probe) IsAvailable() bool {
	if !p.hasGdbus {
		return false
	}
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	return strings.Contains(desktop, "gnome") || strings.Contains(desktop, "ubuntu")
}

// DisplayServer returns "wayland"
func (p *Probe) DisplayServer() string {
	return "wayland"
}

// Close cleans up resources
func (p *Probe) Close() error {
	return nil
}

// ActiveWindow returns the currently focused window as reported by the
// GNOME Shell.
func (p *Probe) ActiveWindow() (*window.Info, error) {
	if !p.hasGdbus {
		return nil, fmt.Errorf("gdbus not available")
	}

	cmd := exec.Command("gdbus", "call", "--session",
		"--dest", "org.gnome.Shell",
		"--object-path", "/org/gnome/Shell",
		"--method", "org.gnome.Shell.Eval",
		gnomeShellScript)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gnome shell eval failed: %w", err)
	}

	payload, err := extractPayload(string(output))
	if err != nil {
		return nil, err
	}

	var result struct {
		WMClass string `json:"wm_class"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to parse shell response: %w", err)
	}

	appName := result.WMClass
	if appName == "" {
		appName = result.Title
	}

	return &window.Info{
		AppName:       appName,
		WindowTitle:   result.Title,
		DisplayServer: "wayland",
	}, nil
}

// extractPayload pulls the JSON object out of the gdbus tuple reply, which
// looks like (true, '"{\"wm_class\":...}"').
func extractPayload(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no focused window in shell response")
	}

	payload := reply[start : end+1]
	payload = strings.ReplaceAll(payload, `\"`, `"`)
	payload = strings.ReplaceAll(payload, `\'`, `'`)
	return payload, nil
}
