package wm

import (
	"math"
	"time"

	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
)

// BaseFontSize is the text height window sizes are specified against.
const BaseFontSize = 16

var (
	// DecorationOffset is where content starts relative to the window origin.
	DecorationOffset = ui.Point{X: 4, Y: 4 + BaseFontSize + 5}
	// DecorationSize is the space the frame and caption take up.
	DecorationSize = ui.Point{X: 4 + 4, Y: 4 + BaseFontSize + 5 + 4}
)

// Popup is implemented by concrete windows. Layout composes the window's
// content into parent; implementations call (*Window).Layout first and add
// to the layout it returns.
type Popup interface {
	Layout(parent *ui.Layout) *ui.Layout
}

// FramePreparer is implemented by popups that refresh content every frame.
// updateFull is set on the throttled cadence for expensive updates.
type FramePreparer interface {
	PrepareFrame(elapsed time.Duration, updateFull bool)
}

// ScreenChanger is implemented by popups that react to display resizes.
type ScreenChanger interface {
	ScreenChanged(screen ui.Point)
}

// TabActioner is implemented by popups with a keyboard cycle action.
type TabActioner interface {
	TabAction()
}

type Options struct {
	// Name identifies the window in saved settings. Defaults to Caption.
	Name    string
	Caption string
	Width   int
	Height  int
	TopMost bool
	// NonInteractive windows never take the pointer.
	NonInteractive bool
	// Frameless windows draw only their controls.
	Frameless bool
	// MinSize is the smallest size the window accepts. It never goes
	// below DecorationSize.
	MinSize ui.Point
}

// Window is a movable rectangle drawn over the scene with a framed
// background and a control tree.
type Window struct {
	owner *Manager
	impl  Popup
	opts  Options

	visible  bool
	location ui.Rect
	root     *rootLayout
	chrome   []chromePiece
}

// NewWindow registers a window with owner. impl receives the layout and frame
// callbacks; nil uses the plain captioned frame.
func NewWindow(owner *Manager, impl Popup, opts Options) *Window {
	if opts.Name == "" {
		opts.Name = opts.Caption
	}
	w := &Window{owner: owner, impl: impl, opts: opts}
	if w.impl == nil {
		w.impl = w
	}
	opts.MinSize = ui.Pt(max(opts.MinSize.X, DecorationSize.X), max(opts.MinSize.Y, DecorationSize.Y))
	w.opts.MinSize = opts.MinSize
	w.location = ui.Rect{
		W: max(opts.Width, opts.MinSize.X),
		H: max(opts.Height-BaseFontSize+owner.TextHeight(), opts.MinSize.Y),
	}
	owner.Add(w)
	return w
}

func (w *Window) Name() string      { return w.opts.Name }
func (w *Window) Caption() string   { return w.opts.Caption }
func (w *Window) Owner() *Manager   { return w.owner }
func (w *Window) Visible() bool     { return w.visible }
func (w *Window) Interactive() bool { return !w.opts.NonInteractive }
func (w *Window) TopMost() bool     { return w.opts.TopMost }
func (w *Window) Location() ui.Rect { return w.location }
func (w *Window) HasLayout() bool   { return w.root != nil }
func (w *Window) SetVisible(v bool) { w.setVisible(v) }
func (w *Window) ToggleVisible()    { w.setVisible(!w.visible) }

// Root is the current control tree, nil before the first layout.
func (w *Window) Root() *ui.Layout {
	if w.root == nil {
		return nil
	}
	return w.root.Layout
}

// Initialize applies the saved position and builds the first layout.
func (w *Window) Initialize() {
	w.restorePosition()
	w.visibilityChanged()
	w.locationChanged()
	w.sizeChanged()
}

func (w *Window) restorePosition() {
	if w.owner.store == nil {
		return
	}
	px, py, ok := w.owner.store.WindowPosition(w.opts.Name)
	if !ok {
		return
	}
	screen := w.owner.screen
	w.location.X = int(math.Round(float64(px) * float64(screen.X-w.location.W) / 100))
	w.location.Y = int(math.Round(float64(py) * float64(screen.Y-w.location.H) / 100))
	w.location.X = clampAxis(w.location.X, screen.X-w.location.W)
	w.location.Y = clampAxis(w.location.Y, screen.Y-w.location.H)
}

func (w *Window) setVisible(v bool) {
	if w.visible == v {
		return
	}
	w.visible = v
	w.visibilityChanged()
}

func (w *Window) visibilityChanged() {
	if w.visible {
		w.owner.BringWindowToTop(w)
	} else {
		w.owner.release(w)
		w.owner.logZOrder()
	}
	if w.visible && w.root != nil {
		w.prepareFrame(0, true)
	}
}

func (w *Window) locationChanged() {
	if w.owner.store == nil {
		return
	}
	screen := w.owner.screen
	w.owner.store.SetWindowPosition(w.opts.Name,
		percentOf(w.location.X, screen.X-w.location.W),
		percentOf(w.location.Y, screen.Y-w.location.H))
}

func percentOf(v, free int) int {
	if free <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(v) / float64(free)))
}

func (w *Window) sizeChanged() {
	w.Relayout()
	w.chrome = nil
}

// clampAxis keeps v within [0, free], preferring 0 when the window is
// larger than the screen.
func clampAxis(v, free int) int {
	return max(0, min(v, free))
}

// MoveTo places the window, keeping it fully on screen.
func (w *Window) MoveTo(x, y int) {
	screen := w.owner.screen
	x = clampAxis(x, screen.X-w.location.W)
	y = clampAxis(y, screen.Y-w.location.H)
	if x == w.location.X && y == w.location.Y {
		return
	}
	w.location.X, w.location.Y = x, y
	w.locationChanged()
}

func (w *Window) MoveBy(dx, dy int) {
	w.MoveTo(w.location.X+dx, w.location.Y+dy)
}

// SizeTo resizes the window and rebuilds its layout. Sizes below MinSize
// are raised to it.
func (w *Window) SizeTo(width, height int) {
	width, height = max(width, w.opts.MinSize.X), max(height, w.opts.MinSize.Y)
	if w.location.W == width && w.location.H == height {
		return
	}
	w.location.W, w.location.H = width, height
	w.MoveTo(w.location.X, w.location.Y)
	w.sizeChanged()
}

// SizeToAnchored resizes the window keeping the anchor point in place on
// screen.
func (w *Window) SizeToAnchored(width, height int, a Anchor) {
	old := w.location
	width, height = max(width, w.opts.MinSize.X), max(height, w.opts.MinSize.Y)
	if old.W == width && old.H == height {
		return
	}
	x, y := a.Reposition(old, width, height)
	w.SizeTo(width, height)
	w.MoveTo(x, y)
}

// Relayout discards the control tree and builds a new one.
func (w *Window) Relayout() {
	root := newRootLayout(w, w.location.W, w.location.H)
	root.SetTextHeight(w.owner.TextHeight())
	if w.owner.screen != (ui.Point{}) {
		w.impl.Layout(root.Layout)
	}
	root.Initialize(w.owner.theme)
	w.root = root
}

// Layout adds the padded frame and caption, returning the content column.
func (w *Window) Layout(parent *ui.Layout) *ui.Layout {
	content := parent.AddLayoutOffset(4, 4, 4, 4).AddLayoutVertical()
	content.Add(ui.NewLabel(0, 0, content.RemainingWidth(), w.owner.TextHeight(), w.opts.Caption, ui.AlignCenter))
	content.AddSpace(0, 5)
	return content
}

// prepareFrame forwards to the popup while the window is visible.
func (w *Window) prepareFrame(elapsed time.Duration, updateFull bool) {
	if !w.visible {
		return
	}
	if p, ok := w.impl.(FramePreparer); ok {
		p.PrepareFrame(elapsed, updateFull)
	}
}

// Draw paints the frame and then the controls.
func (w *Window) Draw(s ui.Surface) {
	if !w.opts.Frameless {
		w.drawChrome(s)
	}
	if w.root != nil {
		w.root.Draw(s, w.location.Min())
	}
}

func (w *Window) event(in core.InputState) *ui.MouseEvent {
	pointer := ui.Point{X: in.MouseX, Y: in.MouseY}
	down := w.owner.mouseDown
	origin := w.location.Min()
	return &ui.MouseEvent{
		Position:           pointer.Sub(origin),
		DownPosition:       down.Sub(origin),
		ScreenPosition:     pointer,
		DownScreenPosition: down,
		Input:              in,
	}
}

func (w *Window) mouseDown(in core.InputState) {
	if w.root != nil {
		w.root.HandleMouseDown(w.event(in))
	}
}

func (w *Window) mouseUp(in core.InputState) {
	if w.root != nil {
		w.root.HandleMouseUp(w.event(in))
	}
}

func (w *Window) mouseMove(in core.InputState) {
	if w.root != nil {
		w.root.HandleMouseMove(w.event(in))
	}
}

func (w *Window) userInput(e *ui.MouseEvent) {
	if w.root != nil {
		w.root.HandleUserInput(e)
	}
}
