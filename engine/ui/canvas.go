package ui

import (
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/gfx/renderer2d"
	"github.com/hubastard/railhud/engine/text"
)

// Canvas draws controls through a batched 2D renderer. The renderer's scene
// must be begun with a top-left pixel projection.
type Canvas struct {
	R2D *renderer2d.Renderer2D
	// Outline colours the outline of fonts that carry one.
	Outline colors.Color
	// Glass is the backdrop laid under each window in glass mode.
	Glass colors.Color
}

func NewCanvas(r2d *renderer2d.Renderer2D) *Canvas {
	return &Canvas{R2D: r2d, Outline: colors.Black, Glass: colors.Black.WithAlpha(0.35)}
}

func (c *Canvas) FillRect(r Rect, col colors.Color) {
	if r.Empty() {
		return
	}
	c.R2D.DrawRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col)
}

func (c *Canvas) DrawImage(tex core.Texture, dst, src Rect, tint colors.Color) {
	if tex == nil {
		c.FillRect(dst, tint)
		return
	}
	if dst.Empty() {
		return
	}
	tw, th := tex.Size()
	if tw == 0 || th == 0 {
		return
	}
	u0, v0 := float32(src.X)/float32(tw), float32(src.Y)/float32(th)
	u1, v1 := float32(src.Right())/float32(tw), float32(src.Bottom())/float32(th)
	c.R2D.DrawTexturedRect(float32(dst.X), float32(dst.Y), float32(dst.W), float32(dst.H), tex, tint, u0, v0, u1, v1)
}

// DrawText aligns s horizontally within r, top aligned. Fonts other than
// *text.Font are skipped.
func (c *Canvas) DrawText(f Font, r Rect, s string, align Align, col colors.Color) {
	font, ok := f.(*text.Font)
	if !ok || s == "" {
		return
	}
	x := r.X
	switch align {
	case AlignCenter:
		x += (r.W - font.MeasureString(s)) / 2
	case AlignRight:
		x += r.W - font.MeasureString(s)
	}
	if font.Outline > 0 {
		text.DrawTextOutlined(c.R2D, font, float32(x), float32(r.Y), s, col, c.Outline)
		return
	}
	text.DrawText(c.R2D, font, float32(x), float32(r.Y), s, col)
}

func (c *Canvas) PushClip(r Rect) {
	c.R2D.PushScissor(renderer2d.ScissorRect{X: r.X, Y: r.Y, W: max(0, r.W), H: max(0, r.H)})
}

func (c *Canvas) PopClip() { c.R2D.PopScissor() }

// BeginGlass darkens the area behind a window and clips its drawing to r.
func (c *Canvas) BeginGlass(r Rect) {
	c.FillRect(r, c.Glass)
	c.PushClip(r)
}

func (c *Canvas) EndGlass() { c.PopClip() }
