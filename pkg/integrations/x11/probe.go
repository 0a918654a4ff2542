package x11

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/screentrack/screentrack/pkg/window"
)

// Probe implements window.Probe for X11 using the EWMH properties exposed
// by the window manager. The connection is opened once and reused across
// lookups.
type Probe struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// New connects to the X server and interns the atoms the probe needs.
func New() (*Probe, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	p := &Probe{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	atomNames := []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_WM_NAME",
		"WM_NAME",
		"WM_CLASS",
		"UTF8_STRING",
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		p.atoms[name] = reply.Atom
	}

	return p, nil
}

// IsAvailable reports whether the X connection is open
func (p *Probe) IsAvailable() bool {
	return p.conn != nil
}

// DisplayServer returns "x11"
func (p *Probe) DisplayServer() string {
	return "x11"
}

// Close shuts down the X connection
func (p *Probe) Close() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	return nil
}

// ActiveWindow returns the currently focused window. The application name
// comes from WM_CLASS (instance part), falling back to the class part and
// finally the window title.
func (p *Probe) ActiveWindow() (*window.Info, error) {
	if p.conn == nil {
		return nil, fmt.Errorf("X connection is closed")
	}

	win, err := p.activeWindow()
	if err != nil {
		return nil, err
	}

	instance, class := p.windowClass(win)
	title := p.windowName(win)

	appName := instance
	if appName == "" {
		appName = class
	}
	if appName == "" {
		appName = title
	}

	return &window.Info{
		AppName:       appName,
		WindowTitle:   title,
		DisplayServer: "x11",
	}, nil
}

// activeWindow resolves the focused window, preferring the EWMH
// _NET_ACTIVE_WINDOW property and falling back to the input focus for
// window managers that do not maintain it. Focus can be transiently unset
// during a switch, so the lookup retries briefly.
func (p *Probe) activeWindow() (xproto.Window, error) {
	for i := 0; i < 3; i++ {
		win := p.activeWindowFromProperty()
		if win != 0 && p.hasName(win) {
			return win, nil
		}

		win = p.activeWindowFromInputFocus()
		if win != 0 && win != p.root {
			top := p.topLevelParent(win)
			if top != 0 && p.hasName(top) {
				return top, nil
			}
		}

		time.Sleep(20 * time.Millisecond)
	}

	return 0, fmt.Errorf("no active window found")
}

func (p *Probe) activeWindowFromProperty() xproto.Window {
	data, err := p.property(p.root, p.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (p *Probe) activeWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(p.conn).Reply()
	if err != nil {
		return 0
	}
	return reply.Focus
}

// topLevelParent walks up the tree until the direct child of the root.
func (p *Probe) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(p.conn, win).Reply()
		if err != nil || reply.Parent == p.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (p *Probe) hasName(win xproto.Window) bool {
	data, _ := p.property(win, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 1)
	if len(data) > 0 {
		return true
	}
	data, _ = p.property(win, p.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

func (p *Probe) windowName(win xproto.Window) string {
	data, err := p.property(win, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = p.property(win, p.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

// windowClass returns the WM_CLASS instance and class, which are stored as
// two NUL-separated strings.
func (p *Probe) windowClass(win xproto.Window) (instance, class string) {
	data, err := p.property(win, p.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return "", ""
	}

	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

func (p *Probe) property(win xproto.Window, atom xproto.Atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(p.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}
