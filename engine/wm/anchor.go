package wm

import "github.com/hubastard/railhud/engine/ui"

// Anchor is a point of a window given as fractions of its size. Resizing
// around an anchor keeps that point fixed on screen.
type Anchor struct{ X, Y float64 }

var (
	AnchorTopLeft      = Anchor{0, 0}
	AnchorTopCenter    = Anchor{0.5, 0}
	AnchorCenter       = Anchor{0.5, 0.5}
	AnchorBottomCenter = Anchor{0.5, 1}
	AnchorBottomRight  = Anchor{1, 1}
)

// Reposition returns the top-left corner for a window resized from r to
// w by h around a.
func (a Anchor) Reposition(r ui.Rect, w, h int) (x, y int) {
	x = r.X + int(a.X*float64(r.W-w))
	y = r.Y + int(a.Y*float64(r.H-h))
	return x, y
}
