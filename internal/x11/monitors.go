package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Rect is an integer rectangle in root window coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Monitor is an active RandR output with its usable work area.
type Monitor struct {
	Name string
	Main Rect
	// Work is Main minus dock struts that intersect it.
	Work Rect
}

// Monitors returns every active CRTC, with work areas reduced by the struts
// of dock windows.
func (c *Connection) Monitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		main := Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)}
		monitors = append(monitors, Monitor{Name: name, Main: main, Work: main})
	}

	rootGeom, err := xproto.GetGeometry(conn, xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return monitors, nil
	}
	struts := c.dockStruts(int(rootGeom.Width), int(rootGeom.Height))
	for i := range monitors {
		monitors[i].Work = applyStruts(monitors[i].Main, int(rootGeom.Width), int(rootGeom.Height), struts)
	}
	return monitors, nil
}

// dockStruts collects the partial struts of all dock windows. Docks that
// only set _NET_WM_STRUT are expanded to span the whole root edge.
func (c *Connection) dockStruts(rootWidth, rootHeight int) []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out []ewmh.WmStrutPartial
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil || !isDock(types) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out = append(out, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			out = append(out, fullEdgeStrut(s, rootWidth, rootHeight))
		}
	}
	return out
}

func isDock(types []string) bool {
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func fullEdgeStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(rootHeight - 1),
		RightEndY:  uint(rootHeight - 1),
		TopEndX:    uint(rootWidth - 1),
		BottomEndX: uint(rootWidth - 1),
	}
}

// applyStruts shrinks mon by the largest strut reaching into it from each
// edge. The result is at least 1x1.
func applyStruts(mon Rect, rootWidth, rootHeight int, struts []ewmh.WmStrutPartial) Rect {
	var left, right, top, bottom int
	mx1, my1 := mon.X, mon.Y
	mx2, my2 := mon.X+mon.Width, mon.Y+mon.Height

	for _, sp := range struts {
		if sp.Top > 0 {
			isect := intersection(mx1, my1, mx2, my2, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
			top = max(top, isect.Height)
		}
		if sp.Bottom > 0 {
			isect := intersection(mx1, my1, mx2, my2, int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
			bottom = max(bottom, isect.Height)
		}
		if sp.Left > 0 {
			isect := intersection(mx1, my1, mx2, my2, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
			left = max(left, isect.Width)
		}
		if sp.Right > 0 {
			isect := intersection(mx1, my1, mx2, my2, rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
			right = max(right, isect.Width)
		}
	}

	work := Rect{
		X:      mon.X + left,
		Y:      mon.Y + top,
		Width:  max(mon.Width-left-right, 1),
		Height: max(mon.Height-top-bottom, 1),
	}
	return work
}

func intersection(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) Rect {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
