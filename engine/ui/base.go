package ui

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/railhud/engine/core"
)

// MouseEvent carries one pointer gesture step to a control tree. Position
// and DownPosition are relative to the window, the screen variants are
// absolute.
type MouseEvent struct {
	Position           Point
	DownPosition       Point
	ScreenPosition     Point
	DownScreenPosition Point
	Input              core.InputState
}

// ClickFunc is notified when a control is clicked. The point is where the
// gesture started, relative to the control.
type ClickFunc func(c Control, at Point)

type Drawable interface {
	Draw(s Surface, offset Point)
}

type InputHandler interface {
	HandleMouseDown(e *MouseEvent) bool
	HandleMouseUp(e *MouseEvent) bool
	HandleMouseMove(e *MouseEvent) bool
	HandleUserInput(e *MouseEvent) bool
}

// Control is a rectangular element of a window's layout tree.
type Control interface {
	Drawable
	InputHandler
	Node() *Base
	Initialize(th *Theme)
	MoveBy(dx, dy int)
}

// Base holds the state every control shares. Concrete controls embed it and
// provide Draw.
type Base struct {
	Position Rect
	Tag      any

	owner  Control
	clicks []ClickFunc
}

func newBase(owner Control, x, y, w, h int) Base {
	return Base{owner: owner, Position: Rect{X: x, Y: y, W: w, H: h}}
}

func (b *Base) Node() *Base       { return b }
func (b *Base) Initialize(*Theme) {}

func (b *Base) MoveBy(dx, dy int) {
	b.Position.X += dx
	b.Position.Y += dy
}

// OnClick registers fn for clicks on this control.
func (b *Base) OnClick(fn ClickFunc) {
	if fn != nil {
		b.clicks = append(b.clicks, fn)
	}
}

func (b *Base) Clickable() bool { return len(b.clicks) > 0 }

func (b *Base) HandleMouseDown(*MouseEvent) bool { return false }
func (b *Base) HandleMouseMove(*MouseEvent) bool { return false }
func (b *Base) HandleUserInput(*MouseEvent) bool { return false }

// HandleMouseUp fires the click listeners at the gesture start point.
func (b *Base) HandleMouseUp(e *MouseEvent) bool {
	b.MouseClick(e.DownPosition.Sub(b.Position.Min()))
	return false
}

// MouseClick notifies every listener in registration order. A panicking
// listener is logged and does not stop the others.
func (b *Base) MouseClick(at Point) {
	for _, fn := range b.clicks {
		b.notify(fn, at)
	}
}

func (b *Base) notify(fn ClickFunc, at Point) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("click listener failed", "control", fmt.Sprintf("%T", b.owner), "at", at, "panic", r)
		}
	}()
	fn(b.owner, at)
}
