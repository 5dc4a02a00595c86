package wm

import (
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/ui"
)

// chromePiece is one cell of the nine-slice window background, relative to
// the window origin.
type chromePiece struct {
	dst, src ui.Rect
}

// chromeCorner is the corner size of the frame texture in texels.
func chromeCorner(texW int) int { return texW / 4 }

func (w *Window) chromePieces() []chromePiece {
	if w.chrome != nil {
		return w.chrome
	}
	tex := w.owner.chromeTexture
	if tex == nil {
		return nil
	}
	tw, th := tex.Size()
	// frame corners grow with the text size
	gp := 32 - BaseFontSize + w.owner.TextHeight()
	gp = min(gp, w.location.W/2, w.location.H/2)

	cu, cv := chromeCorner(tw), chromeCorner(th)
	dx := [4]int{0, gp, w.location.W - gp, w.location.W}
	dy := [4]int{0, gp, w.location.H - gp, w.location.H}
	sx := [4]int{0, cu, tw - cu, tw}
	sy := [4]int{0, cv, th - cv, th}

	pieces := make([]chromePiece, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			pieces = append(pieces, chromePiece{
				dst: ui.Rect{X: dx[col], Y: dy[row], W: dx[col+1] - dx[col], H: dy[row+1] - dy[row]},
				src: ui.Rect{X: sx[col], Y: sy[row], W: sx[col+1] - sx[col], H: sy[row+1] - sy[row]},
			})
		}
	}
	w.chrome = pieces
	return pieces
}

func (w *Window) drawChrome(s ui.Surface) {
	origin := w.location.Min()
	pieces := w.chromePieces()
	if pieces == nil {
		s.FillRect(w.location, colors.DarkGray.WithAlpha(0.75))
		return
	}
	for _, p := range pieces {
		if p.dst.Empty() {
			continue
		}
		s.DrawImage(w.owner.chromeTexture, p.dst.Offset(origin), p.src, colors.White)
	}
}
