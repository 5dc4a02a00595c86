package ui

import (
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
)

// Surface is everything a control needs from the renderer. Positions are
// absolute framebuffer pixels with a top-left origin.
type Surface interface {
	FillRect(r Rect, c colors.Color)
	// DrawImage draws the src sub-rectangle (texture pixels) of tex into dst.
	DrawImage(tex core.Texture, dst, src Rect, tint colors.Color)
	DrawText(f Font, r Rect, s string, align Align, c colors.Color)
	// PushClip restricts drawing to r until the matching PopClip.
	PushClip(r Rect)
	PopClip()
}

// Font measures text. *text.Font implements it.
type Font interface {
	Height() int
	MeasureString(s string) int
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ScrollbarCell is the size of one cell of the scrollbar texture. Row 0
// holds horizontal pieces, row 1 vertical ones: start button, thumb,
// gutter, end button.
const ScrollbarCell = 16

// Theme holds the shared drawing resources handed to controls when a
// layout tree is initialised. Resources are immutable once created.
type Theme struct {
	Font       Font
	Bold       Font
	Mono       Font
	PreferBold bool

	Scrollbar core.Texture // optional, see ScrollbarCell
	Shadow    core.Texture // optional, 3 cells of LabelShadowSize px
}

// TextFont is the font labels use by default.
func (th *Theme) TextFont() Font {
	if th.PreferBold && th.Bold != nil {
		return th.Bold
	}
	return th.Font
}

// TextHeight is the default line height, or 16 without a font.
func (th *Theme) TextHeight() int {
	if th == nil || th.Font == nil {
		return 16
	}
	return th.Font.Height()
}
