package ui

import "github.com/hubastard/railhud/engine/colors"

const (
	ScrollButtonStep = 10
	ScrollGutterStep = 100
	// ScrollWheelLines is how many text lines one wheel notch scrolls.
	ScrollWheelLines = 3
)

// Scrollbox shows a window onto its Client layout with a scrollbar along
// one edge. The scrollbar is one text line thick.
type Scrollbox struct {
	Layout
	Client *Layout

	axis       Flow
	position   int
	dragging   bool
	dragOffset int
	theme      *Theme
}

func newScrollbox(axis Flow, w, h int) *Scrollbox {
	sb := &Scrollbox{axis: axis}
	sb.Layout = Layout{textHeight: 16}
	sb.Base = newBase(sb, 0, 0, w, h)
	sb.updateReserve()
	sb.Client = newLayout(axis, 0, 0, sb.RemainingWidth(), sb.RemainingHeight())
	sb.Layout.Add(sb.Client)
	return sb
}

// NewScrollboxHorizontal returns a box scrolling left and right with the
// scrollbar along its bottom edge.
func NewScrollboxHorizontal(w, h int) *Scrollbox { return newScrollbox(FlowHorizontal, w, h) }

// NewScrollboxVertical returns a box scrolling up and down with the
// scrollbar along its right edge.
func NewScrollboxVertical(w, h int) *Scrollbox { return newScrollbox(FlowVertical, w, h) }

func (sb *Scrollbox) Axis() Flow { return sb.axis }

func (sb *Scrollbox) updateReserve() {
	sb.reserve = Point{}
	if sb.axis == FlowVertical {
		sb.reserve.X = sb.textHeight
	} else {
		sb.reserve.Y = sb.textHeight
	}
}

// SetTextHeight also resizes the scrollbar and the client's cross axis.
func (sb *Scrollbox) SetTextHeight(h int) {
	sb.textHeight = h
	sb.updateReserve()
	if sb.Client == nil {
		return
	}
	sb.Client.SetTextHeight(h)
	if sb.axis == FlowVertical {
		sb.Client.Position.W = max(0, sb.Position.W-h)
	} else {
		sb.Client.Position.H = max(0, sb.Position.H-h)
	}
}

// viewport is the area the client shows through.
func (sb *Scrollbox) viewport() Rect {
	r := sb.Position
	r.W -= sb.reserve.X
	r.H -= sb.reserve.Y
	return r
}

func (sb *Scrollbox) extent() int {
	if sb.axis == FlowVertical {
		return sb.Position.H
	}
	return sb.Position.W
}

// ScrollSize is how far the client extends beyond the box. It is negative
// when everything fits.
func (sb *Scrollbox) ScrollSize() int {
	if sb.axis == FlowVertical {
		return sb.Client.CurrentTop() - sb.Position.H
	}
	return sb.Client.CurrentLeft() - sb.Position.W
}

func (sb *Scrollbox) ScrollPosition() int { return sb.position }

// SetScrollPosition clamps p into range and shifts the client to match.
func (sb *Scrollbox) SetScrollPosition(p int) {
	sb.fitClient()
	p = clampInt(p, 0, max(0, sb.ScrollSize()))
	d := sb.position - p
	if sb.axis == FlowVertical {
		sb.Client.MoveBy(0, d)
	} else {
		sb.Client.MoveBy(d, 0)
	}
	sb.position = p
}

func (sb *Scrollbox) track() int {
	return max(0, sb.extent()-3*sb.textHeight)
}

func (sb *Scrollbox) thumbOffset() int {
	size := sb.ScrollSize()
	if size <= 0 {
		return 0
	}
	return sb.track() * sb.position / size
}

// along returns the coordinate of p along the scroll axis relative to the
// box origin, and whether p is on the scrollbar.
func (sb *Scrollbox) along(p Point) (int, bool) {
	if sb.axis == FlowVertical {
		return p.Y - sb.Position.Y, p.X >= sb.Position.Right()-sb.textHeight
	}
	return p.X - sb.Position.X, p.Y >= sb.Position.Bottom()-sb.textHeight
}

// fitClient grows the client along the scroll axis so content scrolled out
// of the initial area stays hittable.
func (sb *Scrollbox) fitClient() {
	if sb.axis == FlowVertical {
		sb.Client.Position.H = max(sb.Client.CurrentTop(), sb.viewport().H)
	} else {
		sb.Client.Position.W = max(sb.Client.CurrentLeft(), sb.viewport().W)
	}
}

// press applies a scrollbar press at coordinate a along the axis.
func (sb *Scrollbox) press(a int, e *MouseEvent) {
	unit := sb.textHeight
	thumb := sb.thumbOffset()
	switch {
	case a < unit:
		sb.SetScrollPosition(sb.position - ScrollButtonStep)
	case a < unit+thumb:
		sb.SetScrollPosition(sb.position - ScrollGutterStep)
	case a >= sb.extent()-unit:
		sb.SetScrollPosition(sb.position + ScrollButtonStep)
	case a >= 2*unit+thumb:
		sb.SetScrollPosition(sb.position + ScrollGutterStep)
	default:
		cur, _ := sb.along(e.Position)
		sb.dragging = true
		sb.dragOffset = cur - (unit + thumb)
	}
}

func (sb *Scrollbox) HandleMouseDown(e *MouseEvent) bool {
	sb.fitClient()
	if a, on := sb.along(e.DownPosition); on {
		sb.press(a, e)
		return true
	}
	return sb.Layout.HandleMouseDown(e)
}

// HandleUserInput repeats scrollbar presses while the button is held and
// scrolls the vertical box with the wheel.
func (sb *Scrollbox) HandleUserInput(e *MouseEvent) bool {
	sb.fitClient()
	if e.Input.LeftDown {
		if a, on := sb.along(e.DownPosition); on {
			if !sb.dragging {
				sb.press(a, e)
			}
			return true
		}
	}
	if sb.axis == FlowVertical && e.Input.WheelChanged() {
		sb.SetScrollPosition(sb.position - int(e.Input.WheelDelta*float64(ScrollWheelLines*sb.textHeight)))
		return true
	}
	return sb.Layout.HandleUserInput(e)
}

func (sb *Scrollbox) HandleMouseMove(e *MouseEvent) bool {
	if sb.dragging && e.Input.LeftDown {
		if size, track := sb.ScrollSize(), sb.track(); size > 0 && track > 0 {
			cur, _ := sb.along(e.Position)
			thumb := cur - sb.textHeight - sb.dragOffset
			sb.SetScrollPosition(thumb * size / track)
		}
		return true
	}
	return sb.Layout.HandleMouseMove(e)
}

func (sb *Scrollbox) HandleMouseUp(e *MouseEvent) bool {
	if sb.dragging {
		sb.dragging = false
		return true
	}
	if _, on := sb.along(e.DownPosition); on {
		return true
	}
	return sb.Layout.HandleMouseUp(e)
}

func (sb *Scrollbox) Initialize(th *Theme) {
	sb.theme = th
	sb.Layout.Initialize(th)
}

func (sb *Scrollbox) Draw(s Surface, offset Point) {
	sb.drawBar(s, offset)
	s.PushClip(sb.viewport().Offset(offset))
	sb.Layout.Draw(s, offset)
	s.PopClip()
}

// scrollbar pieces in texture cell order
const (
	barStart = iota
	barThumb
	barGutter
	barEnd
)

func (sb *Scrollbox) drawBar(s Surface, offset Point) {
	unit := sb.textHeight
	thumb := sb.thumbOffset()
	ext := sb.extent()
	thumbCell := barThumb
	if sb.ScrollSize() <= 0 {
		thumbCell = barGutter
	}
	pieces := []struct{ at, length, cell int }{
		{0, unit, barStart},
		{unit, thumb, barGutter},
		{unit + thumb, unit, thumbCell},
		{2*unit + thumb, ext - 3*unit - thumb, barGutter},
		{ext - unit, unit, barEnd},
	}
	for _, p := range pieces {
		if p.length <= 0 {
			continue
		}
		var dst Rect
		if sb.axis == FlowVertical {
			dst = Rect{X: sb.Position.Right() - unit, Y: sb.Position.Y + p.at, W: unit, H: p.length}
		} else {
			dst = Rect{X: sb.Position.X + p.at, Y: sb.Position.Bottom() - unit, W: p.length, H: unit}
		}
		sb.drawCell(s, dst.Offset(offset), p.cell)
	}
}

func (sb *Scrollbox) drawCell(s Surface, dst Rect, cell int) {
	if sb.theme != nil && sb.theme.Scrollbar != nil {
		row := 0
		if sb.axis == FlowVertical {
			row = 1
		}
		src := Rect{X: cell * ScrollbarCell, Y: row * ScrollbarCell, W: ScrollbarCell, H: ScrollbarCell}
		s.DrawImage(sb.theme.Scrollbar, dst, src, colors.White)
		return
	}
	c := colors.Gray.WithAlpha(0.6)
	if cell == barThumb {
		c = colors.White.WithAlpha(0.8)
	}
	s.FillRect(dst, c)
}
