package renderer2d

import "github.com/hubastard/railhud/engine/core"

// SubTexture2D describes a UV sub-rect of a full texture. V grows downward
// from the first row of pixels.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from a pixel rectangle of tex.
func FromPixels(tex core.Texture, x, y, w, h int) SubTexture2D {
	tw, th := tex.Size()
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) / float32(tw),
		V0:      float32(y) / float32(th),
		U1:      float32(x+w) / float32(tw),
		V1:      float32(y+h) / float32(th),
	}
}

// FromGrid builds a subtexture from tile (cx,cy) of a sheet of cw x ch cells.
func FromGrid(tex core.Texture, cx, cy, cw, ch int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch)
}
