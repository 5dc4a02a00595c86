package ui

import (
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
)

// Image draws a texture region stretched over its rectangle.
type Image struct {
	Base
	Texture core.Texture
	Source  Rect // texture pixels, whole texture when empty
	Tint    colors.Color
}

func NewImage(x, y, w, h int) *Image {
	img := &Image{Tint: colors.White}
	img.Base = newBase(img, x, y, w, h)
	return img
}

func (img *Image) Draw(s Surface, offset Point) {
	if img.Texture == nil {
		s.FillRect(img.Position.Offset(offset), img.Tint)
		return
	}
	src := img.Source
	if src.Empty() {
		tw, th := img.Texture.Size()
		src = Rect{W: tw, H: th}
	}
	s.DrawImage(img.Texture, img.Position.Offset(offset), src, img.Tint)
}

// Separator is a thin line inset by Padding on every side.
type Separator struct {
	Base
	Padding int
	Color   colors.Color
}

func NewSeparator(x, y, w, h, padding int) *Separator {
	sep := &Separator{Padding: padding, Color: colors.White}
	sep.Base = newBase(sep, x, y, w, h)
	return sep
}

func (sep *Separator) Draw(s Surface, offset Point) {
	r := sep.Position.Offset(offset)
	r.X += sep.Padding
	r.Y += sep.Padding
	r.W -= 2 * sep.Padding
	r.H -= 2 * sep.Padding
	if r.Empty() {
		return
	}
	s.FillRect(r, sep.Color)
}

// Spacer takes up room and draws nothing.
type Spacer struct {
	Base
}

func NewSpacer(w, h int) *Spacer {
	sp := &Spacer{}
	sp.Base = newBase(sp, 0, 0, w, h)
	return sp
}

func (sp *Spacer) Draw(Surface, Point) {}
