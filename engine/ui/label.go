package ui

import (
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
)

// Label draws a single line of text inside its rectangle.
type Label struct {
	Base
	Text  string
	Align Align
	Color colors.Color

	font Font
}

func NewLabel(x, y, w, h int, text string, align Align) *Label {
	l := &Label{Text: text, Align: align, Color: colors.White}
	l.Base = newBase(l, x, y, w, h)
	return l
}

func (l *Label) Font() Font { return l.font }

func (l *Label) Initialize(th *Theme) {
	if l.font == nil {
		l.font = th.TextFont()
	}
}

func (l *Label) Draw(s Surface, offset Point) {
	if l.font == nil || l.Text == "" {
		return
	}
	s.DrawText(l.font, l.Position.Offset(offset), l.Text, l.Align, l.Color)
}

// LabelMono is a Label rendered with the fixed-width font.
type LabelMono struct {
	Label
}

func NewLabelMono(x, y, w, h int, text string, align Align) *LabelMono {
	l := &LabelMono{Label: Label{Text: text, Align: align, Color: colors.White}}
	l.Base = newBase(l, x, y, w, h)
	return l
}

func (l *LabelMono) Initialize(th *Theme) {
	if th.Mono != nil {
		l.font = th.Mono
		return
	}
	l.Label.Initialize(th)
}

const (
	LabelShadowSize  = 8
	LabelShadowExtra = 4
)

// LabelShadow paints a soft dark band behind text laid over the world view.
type LabelShadow struct {
	Base
	Color colors.Color

	tex core.Texture
}

func NewLabelShadow(x, y, w, h int) *LabelShadow {
	l := &LabelShadow{Color: colors.White}
	l.Base = newBase(l, x, y, w, h)
	return l
}

func (l *LabelShadow) Initialize(th *Theme) {
	if th.Shadow != nil {
		l.tex = th.Shadow
	}
}

func (l *LabelShadow) Draw(s Surface, offset Point) {
	r := l.Position.Offset(offset)
	r.X -= LabelShadowExtra
	r.W += 2 * LabelShadowExtra
	if l.tex == nil {
		s.FillRect(r, colors.Black.WithAlpha(0.5))
		return
	}
	const n = LabelShadowSize
	_, th := l.tex.Size()
	mid := r.W - 2*n
	if mid < 0 {
		mid = 0
	}
	s.DrawImage(l.tex, Rect{X: r.X, Y: r.Y, W: n, H: r.H}, Rect{X: 0, Y: 0, W: n, H: th}, l.Color)
	s.DrawImage(l.tex, Rect{X: r.X + n, Y: r.Y, W: mid, H: r.H}, Rect{X: n, Y: 0, W: n, H: th}, l.Color)
	s.DrawImage(l.tex, Rect{X: r.X + n + mid, Y: r.Y, W: n, H: r.H}, Rect{X: 2 * n, Y: 0, W: n, H: th}, l.Color)
}
