package wm

import "github.com/hubastard/railhud/engine/ui"

// DragMinimumDistance is how far the pointer must travel before a press on
// the window background becomes a drag.
const DragMinimumDistance = 2

// dragEdge keeps presses near the right and bottom edges from dragging.
const dragEdge = 20

// rootLayout is the top of a window's control tree. Presses no child
// consumes drag the window.
type rootLayout struct {
	*ui.Layout
	window *Window

	dragOffset ui.Point
	canDrag    bool
	dragging   bool
}

func newRootLayout(w *Window, width, height int) *rootLayout {
	return &rootLayout{Layout: ui.NewLayout(0, 0, width, height), window: w}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (r *rootLayout) HandleMouseDown(e *ui.MouseEvent) bool {
	r.canDrag = false
	if r.Layout.HandleMouseDown(e) {
		return true
	}
	if abs(r.RemainingWidth()-e.Position.X) < dragEdge || abs(r.RemainingHeight()-e.Position.Y) < dragEdge {
		return false
	}
	r.dragOffset = e.DownScreenPosition.Sub(r.window.location.Min())
	r.canDrag = true
	return true
}

// HandleMouseUp lets the control under the press see the release before
// any drag ends, so a press that drifted into a drag still clicks.
func (r *rootLayout) HandleMouseUp(e *ui.MouseEvent) bool {
	r.Layout.HandleMouseUp(e)
	r.dragging = false
	return true
}

func (r *rootLayout) HandleMouseMove(e *ui.MouseEvent) bool {
	if r.Layout.HandleMouseMove(e) {
		return true
	}
	if !e.Input.LeftDown {
		return true
	}
	if !r.dragging && r.canDrag {
		d := e.ScreenPosition.Sub(e.DownScreenPosition)
		if abs(d.X) > DragMinimumDistance || abs(d.Y) > DragMinimumDistance {
			r.dragging = true
		}
	} else if r.dragging {
		p := e.ScreenPosition.Sub(r.dragOffset)
		r.window.MoveTo(p.X, p.Y)
	}
	return true
}

func (r *rootLayout) HandleUserInput(e *ui.MouseEvent) bool {
	r.Layout.HandleUserInput(e)
	return true
}
