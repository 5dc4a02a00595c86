package text

import (
	"fmt"
	"image"
	"math"

	"github.com/hubastard/railhud/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = 'ÿ' // Latin-1
	// fallbackRune is drawn for runes outside the atlas.
	fallbackRune = '?'

	atlasPadding = 2
	minAtlasSize = 256
	maxAtlasSize = 4096
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a rasterised glyph atlas for one family/size/outline. It is
// immutable once built and safe to share between popups.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Outline                  int // outline thickness in pixels, 0 = none
	Glyphs                   map[rune]Glyph
	Kerning                  map[rune]map[rune]float32
	Texture                  core.Texture
	AtlasW, AtlasH           int
	Face                     font.Face
	closeFace                func()
}

// TextureFactory uploads the atlas; core.Renderer satisfies it.
type TextureFactory interface {
	CreateTexture(desc core.TextureDesc) (core.Texture, error)
}

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// Height is the line height rounded up to whole pixels.
func (f *Font) Height() int {
	return int(math.Ceil(float64(LineHeight(f)))) + 2*f.Outline
}

// MeasureString returns the pixel width of a single line of s.
func (f *Font) MeasureString(s string) int {
	w, _ := MeasureText(f, s, f.SizePx)
	return int(math.Ceil(float64(w))) + 2*f.Outline
}

// glyph returns the atlas entry for r, or the fallback glyph.
func (f *Font) glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs[fallbackRune]
	return g, ok
}

func (f *Font) kern(prev, r rune) float32 {
	if prev < 0 {
		return 0
	}
	return f.Kerning[prev][r]
}

// glyphMetrics is a glyph measured before packing.
type glyphMetrics struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// NewFont rasterises the Latin-1 range of a TTF into a white atlas with
// alpha coverage and uploads it.
func NewFont(f TextureFactory, ttfData []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	metrics := measureGlyphs(face)
	size, pos, err := packShelves(metrics)
	if err != nil {
		face.Close()
		return nil, err
	}
	atlas, glyphs := rasterize(face, metrics, pos, size)

	tex, err := f.CreateTexture(core.TextureDesc{
		Width:     size,
		Height:    size,
		Format:    core.TextureRGBA8,
		Pixels:    atlas.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		face.Close()
		return nil, fmt.Errorf("upload atlas: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	return &Font{
		SizePx:    sizePx,
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   float32(m.Height.Round()) - ascent + descent,
		Glyphs:    glyphs,
		Kerning:   kerningTable(face, metrics),
		Texture:   tex,
		AtlasW:    size,
		AtlasH:    size,
		Face:      face,
		closeFace: func() { _ = face.Close() },
	}, nil
}

func measureGlyphs(face font.Face) []glyphMetrics {
	out := make([]glyphMetrics, 0, lastRune-firstRune+1)
	for r := rune(firstRune); r <= lastRune; r++ {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		out = append(out, glyphMetrics{
			r:   r,
			w:   (b.Max.X - b.Min.X).Round(),
			h:   (b.Max.Y - b.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(b.Min.X.Round()),
			by:  float32(-b.Min.Y.Round()),
		})
	}
	return out
}

// packShelves places glyphs left to right in rows, doubling the square
// atlas until everything fits.
func packShelves(glyphs []glyphMetrics) (int, map[rune]image.Point, error) {
	for size := minAtlasSize; size <= maxAtlasSize; size *= 2 {
		if pos, ok := tryPack(glyphs, size); ok {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas larger than %d", maxAtlasSize)
}

func tryPack(glyphs []glyphMetrics, size int) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, len(glyphs))
	x, y, rowH := atlasPadding, atlasPadding, 0
	for _, g := range glyphs {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if x+g.w+atlasPadding > size {
			x, y, rowH = atlasPadding, y+rowH+atlasPadding, 0
		}
		if x+g.w+atlasPadding > size || y+g.h+atlasPadding > size {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + atlasPadding
		rowH = max(rowH, g.h)
	}
	return pos, true
}

func rasterize(face font.Face, metrics []glyphMetrics, pos map[rune]image.Point, size int) (*image.RGBA, map[rune]Glyph) {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	glyphs := make(map[rune]Glyph, len(metrics))
	inv := 1 / float32(size)

	for _, m := range metrics {
		g := Glyph{Rune: m.r, Advance: m.adv, BearingX: m.bx, BearingY: m.by, W: m.w, H: m.h}
		p, placed := pos[m.r]
		if placed {
			// the dot sits on the baseline, left of the ink by the bearing
			drawer.Dot = fixed.P(p.X-int(m.bx), p.Y+int(m.by))
			drawer.DrawString(string(m.r))
			g.U0, g.V0 = float32(p.X)*inv, float32(p.Y)*inv
			g.U1, g.V1 = float32(p.X+m.w)*inv, float32(p.Y+m.h)*inv
		}
		glyphs[m.r] = g
	}
	return dst, glyphs
}

func kerningTable(face font.Face, metrics []glyphMetrics) map[rune]map[rune]float32 {
	kerning := make(map[rune]map[rune]float32)
	for _, a := range metrics {
		for _, b := range metrics {
			dx := face.Kern(a.r, b.r)
			if dx == 0 {
				continue
			}
			if kerning[a.r] == nil {
				kerning[a.r] = make(map[rune]float32)
			}
			kerning[a.r][b.r] = float32(dx.Round())
		}
	}
	return kerning
}
