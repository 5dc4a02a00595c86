package ui

const (
	SeparatorSize    = 5
	SeparatorPadding = 2
)

// Flow selects how a layout places children.
type Flow int

const (
	// FlowNone stacks every child at the layout origin.
	FlowNone Flow = iota
	// FlowHorizontal places children left to right.
	FlowHorizontal
	// FlowVertical places children top to bottom.
	FlowVertical
)

// Container is a control that owns children.
type Container interface {
	Control
	Controls() []Control
	CurrentLeft() int
	CurrentTop() int
	RemainingWidth() int
	RemainingHeight() int
	TextHeight() int
	SetTextHeight(h int)
}

// Layout is an ordered set of children. Children are positioned once, when
// they are added; insertion order is both draw order and hit-test order.
type Layout struct {
	Base
	Flow Flow

	controls   []Control
	textHeight int
	reserve    Point
}

func newLayout(flow Flow, x, y, w, h int) *Layout {
	l := &Layout{Flow: flow, textHeight: 16}
	l.Base = newBase(l, x, y, w, h)
	return l
}

// NewLayout returns a layout that stacks children at its origin.
func NewLayout(x, y, w, h int) *Layout { return newLayout(FlowNone, x, y, w, h) }

func NewLayoutHorizontal(w, h int) *Layout { return newLayout(FlowHorizontal, 0, 0, w, h) }
func NewLayoutVertical(w, h int) *Layout   { return newLayout(FlowVertical, 0, 0, w, h) }

// NewLayoutOffset returns a layout inset by the given margins inside a
// w by h area.
func NewLayoutOffset(w, h, left, top, right, bottom int) *Layout {
	return newLayout(FlowNone, left, top, w-left-right, h-top-bottom)
}

func (l *Layout) Controls() []Control { return l.controls }
func (l *Layout) TextHeight() int     { return l.textHeight }
func (l *Layout) SetTextHeight(h int) { l.textHeight = h }

// CurrentLeft is how far the horizontal flow has advanced from the origin.
func (l *Layout) CurrentLeft() int {
	if l.Flow != FlowHorizontal || len(l.controls) == 0 {
		return 0
	}
	right := l.Position.X
	for _, c := range l.controls {
		right = max(right, c.Node().Position.Right())
	}
	return right - l.Position.X
}

// CurrentTop is how far the vertical flow has advanced from the origin.
func (l *Layout) CurrentTop() int {
	if l.Flow != FlowVertical || len(l.controls) == 0 {
		return 0
	}
	bottom := l.Position.Y
	for _, c := range l.controls {
		bottom = max(bottom, c.Node().Position.Bottom())
	}
	return bottom - l.Position.Y
}

func (l *Layout) RemainingWidth() int {
	return max(0, l.Position.W-l.reserve.X-l.CurrentLeft())
}

func (l *Layout) RemainingHeight() int {
	return max(0, l.Position.H-l.reserve.Y-l.CurrentTop())
}

// Add places c at the current flow position and appends it.
func (l *Layout) Add(c Control) {
	if sub, ok := c.(Container); ok {
		sub.SetTextHeight(l.textHeight)
	}
	c.MoveBy(l.Position.X+l.CurrentLeft(), l.Position.Y+l.CurrentTop())
	l.controls = append(l.controls, c)
}

func (l *Layout) AddSpace(w, h int) *Spacer {
	sp := NewSpacer(w, h)
	l.Add(sp)
	return sp
}

// AddHorizontalSeparator adds a full-width rule.
func (l *Layout) AddHorizontalSeparator() *Separator {
	sep := NewSeparator(0, 0, l.RemainingWidth(), SeparatorSize, SeparatorPadding)
	l.Add(sep)
	return sep
}

// AddVerticalSeparator adds a full-height rule.
func (l *Layout) AddVerticalSeparator() *Separator {
	sep := NewSeparator(0, 0, SeparatorSize, l.RemainingHeight(), SeparatorPadding)
	l.Add(sep)
	return sep
}

func (l *Layout) AddLayoutOffset(left, top, right, bottom int) *Layout {
	sub := NewLayoutOffset(l.RemainingWidth(), l.RemainingHeight(), left, top, right, bottom)
	l.Add(sub)
	return sub
}

// AddLayoutHorizontal adds a row using the remaining height.
func (l *Layout) AddLayoutHorizontal() *Layout {
	return l.AddLayoutHorizontalOf(l.RemainingHeight())
}

func (l *Layout) AddLayoutHorizontalOf(h int) *Layout {
	sub := NewLayoutHorizontal(l.RemainingWidth(), h)
	l.Add(sub)
	return sub
}

// AddLayoutHorizontalLineOfText adds a row one text line high.
func (l *Layout) AddLayoutHorizontalLineOfText() *Layout {
	return l.AddLayoutHorizontalOf(l.textHeight)
}

// AddLayoutVertical adds a column using the remaining width.
func (l *Layout) AddLayoutVertical() *Layout {
	return l.AddLayoutVerticalOf(l.RemainingWidth())
}

func (l *Layout) AddLayoutVerticalOf(w int) *Layout {
	sub := NewLayoutVertical(w, l.RemainingHeight())
	l.Add(sub)
	return sub
}

// AddLayoutScrollboxHorizontal adds a horizontally scrolling area h pixels
// high and returns it; add content to its Client.
func (l *Layout) AddLayoutScrollboxHorizontal(h int) *Scrollbox {
	sb := NewScrollboxHorizontal(l.RemainingWidth(), h)
	l.Add(sb)
	return sb
}

// AddLayoutScrollboxVertical adds a vertically scrolling area w pixels
// wide and returns it; add content to its Client.
func (l *Layout) AddLayoutScrollboxVertical(w int) *Scrollbox {
	sb := NewScrollboxVertical(w, l.RemainingHeight())
	l.Add(sb)
	return sb
}

func (l *Layout) Initialize(th *Theme) {
	for _, c := range l.controls {
		c.Initialize(th)
	}
}

func (l *Layout) Draw(s Surface, offset Point) {
	for _, c := range l.controls {
		c.Draw(s, offset)
	}
}

func (l *Layout) MoveBy(dx, dy int) {
	l.Base.MoveBy(dx, dy)
	for _, c := range l.controls {
		c.MoveBy(dx, dy)
	}
}

// hit returns the children under the gesture start point, in order.
func (l *Layout) hit(e *MouseEvent, fn func(Control) bool) bool {
	for _, c := range l.controls {
		if c.Node().Position.Contains(e.DownPosition) && fn(c) {
			return true
		}
	}
	return false
}

func (l *Layout) HandleMouseDown(e *MouseEvent) bool {
	if l.hit(e, func(c Control) bool { return c.HandleMouseDown(e) }) {
		return true
	}
	return l.Base.HandleMouseDown(e)
}

func (l *Layout) HandleMouseUp(e *MouseEvent) bool {
	if l.hit(e, func(c Control) bool { return c.HandleMouseUp(e) }) {
		return true
	}
	return l.Base.HandleMouseUp(e)
}

func (l *Layout) HandleMouseMove(e *MouseEvent) bool {
	if l.hit(e, func(c Control) bool { return c.HandleMouseMove(e) }) {
		return true
	}
	return l.Base.HandleMouseMove(e)
}

func (l *Layout) HandleUserInput(e *MouseEvent) bool {
	if l.hit(e, func(c Control) bool { return c.HandleUserInput(e) }) {
		return true
	}
	return l.Base.HandleUserInput(e)
}

// Walk calls fn for c and every control below it, depth first.
func Walk(c Control, fn func(Control)) {
	fn(c)
	if ct, ok := c.(Container); ok {
		for _, child := range ct.Controls() {
			Walk(child, fn)
		}
	}
}
