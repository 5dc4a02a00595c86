package text

import "github.com/hubastard/railhud/engine/gfx/renderer2d"

// LineHeight is the baseline-to-baseline distance in pixels.
func LineHeight(font *Font) float32 { return font.Ascent - font.Descent + font.LineGap }

// DrawText draws s with its top-left corner at (x,y). Positive Y goes down,
// matching the overlay projection. Newlines start a new line at x.
func DrawText(r2d *renderer2d.Renderer2D, font *Font, x, y float32, s string, color [4]float32) {
	penX, baseY := x, y+font.Ascent
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX, baseY, prev = x, baseY+LineHeight(font), -1
			continue
		}
		g, ok := font.glyph(r)
		if !ok {
			prev = r
			continue
		}
		penX += font.kern(prev, r)
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX
			top := baseY - g.BearingY
			r2d.DrawTexturedRect(left, top, float32(g.W), float32(g.H), font.Texture, color, g.U0, g.V0, g.U1, g.V1)
		}
		penX += g.Advance
		prev = r
	}
}

// DrawTextOutlined draws s with a dark outline of font.Outline pixels behind it.
func DrawTextOutlined(r2d *renderer2d.Renderer2D, font *Font, x, y float32, s string, color, outline [4]float32) {
	o := float32(font.Outline)
	if o > 0 {
		outline[3] *= color[3]
		for _, d := range [...][2]float32{{-o, 0}, {o, 0}, {0, -o}, {0, o}} {
			DrawText(r2d, font, x+o+d[0], y+o+d[1], s, outline)
		}
		x, y = x+o, y+o
	}
	DrawText(r2d, font, x, y, s, color)
}

// MeasureText reports the size of s scaled to size pixels.
func MeasureText(font *Font, s string, size float32) (width, height float32) {
	lineH := LineHeight(font)
	height = lineH
	var lineW float32
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW, height, prev = 0, height+lineH, -1
			continue
		}
		g, ok := font.glyph(r)
		if !ok {
			prev = r
			continue
		}
		lineW += font.kern(prev, r) + g.Advance
		prev = r
	}

	scale := size / font.SizePx
	return max(width, lineW) * scale, height * scale
}
