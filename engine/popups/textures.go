package popups

import (
	"fmt"
	"math"
	"sync"

	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
)

// NoticeTextureSize is the edge of the rounded notice background. The pause
// texture is NoticeTextureSize wide and twice as tall.
const NoticeTextureSize = 256

// TextureFactory creates GPU textures; core.Renderer satisfies it.
type TextureFactory interface {
	CreateTexture(desc core.TextureDesc) (core.Texture, error)
}

// Textures are the procedurally drawn images shared by every popup.
type Textures struct {
	// Notice is a translucent rounded square.
	Notice core.Texture
	// Pause holds the play glyph in its top half and the pause glyph in its
	// bottom half, both over the notice background.
	Pause     core.Texture
	Chrome    core.Texture
	Scrollbar core.Texture
	Shadow    core.Texture
}

// PlaySource and PauseSource select the glyphs inside Textures.Pause.
var (
	PlaySource  = ui.Rect{W: NoticeTextureSize, H: NoticeTextureSize}
	PauseSource = ui.Rect{Y: NoticeTextureSize, W: NoticeTextureSize, H: NoticeTextureSize}
)

var (
	sharedOnce sync.Once
	shared     *Textures
	sharedErr  error
)

// SharedTextures builds the textures on first use. Later calls return the
// same set whatever factory they pass.
func SharedTextures(f TextureFactory) (*Textures, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = NewTextures(f)
	})
	return shared, sharedErr
}

// NewTextures draws and uploads a fresh set.
func NewTextures(f TextureFactory) (*Textures, error) {
	var t Textures
	bg := noticePixels(NoticeTextureSize)
	uploads := []struct {
		name string
		dst  *core.Texture
		w, h int
		pix  []byte
	}{
		{"notice", &t.Notice, NoticeTextureSize, NoticeTextureSize, bg},
		{"pause", &t.Pause, NoticeTextureSize, 2 * NoticeTextureSize, pausePixels(bg, NoticeTextureSize)},
		{"chrome", &t.Chrome, chromeTextureSize, chromeTextureSize, chromePixels(chromeTextureSize)},
		{"scrollbar", &t.Scrollbar, 4 * ui.ScrollbarCell, 2 * ui.ScrollbarCell, scrollbarPixels()},
		{"shadow", &t.Shadow, 3 * ui.LabelShadowSize, shadowHeight, shadowPixels()},
	}
	for _, u := range uploads {
		tex, err := f.CreateTexture(core.TextureDesc{
			Width:     u.w,
			Height:    u.h,
			Format:    core.TextureRGBA8,
			Pixels:    u.pix,
			MinFilter: "linear",
			MagFilter: "linear",
			WrapU:     "clamp",
			WrapV:     "clamp",
		})
		if err != nil {
			return nil, fmt.Errorf("create %s texture: %w", u.name, err)
		}
		*u.dst = tex
	}
	return &t, nil
}

type rgba [4]byte

var (
	white     = rgba{255, 255, 255, 255}
	halfBlack = rgba{0, 0, 0, 128}
)

func set(pix []byte, stride, x, y int, c rgba) {
	copy(pix[(y*stride+x)*4:], c[:])
}

// noticePixels is a size x size square with corners rounded by size/7.
func noticePixels(size int) []byte {
	pix := make([]byte, size*size*4)
	r := size / 7
	inCorner := func(x, y, cx, cy int) bool {
		return math.Hypot(float64(x-cx), float64(y-cy)) < float64(r)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x > r && x < size-r) || (y > r && y < size-r) ||
				inCorner(x, y, r, r) || inCorner(x, y, size-r, r) ||
				inCorner(x, y, r, size-r) || inCorner(x, y, size-r, size-r) {
				set(pix, size, x, y, halfBlack)
			}
		}
	}
	return pix
}

// pausePixels stacks two copies of bg, drawing a play triangle on the upper
// one and two pause bars on the lower one.
func pausePixels(bg []byte, size int) []byte {
	pix := make([]byte, 2*len(bg))
	copy(pix, bg)
	copy(pix[len(bg):], bg)

	m := size / 7
	for y := m; y < size-m; y++ {
		half := y - size/2
		if half < 0 {
			half = -half
		}
		for x := m; x < size-m-2*half; x++ {
			set(pix, size, x, y, white)
		}
	}
	for y := size + m; y < 2*size-m; y++ {
		for x := size * 2 / 7; x < size*3/7; x++ {
			set(pix, size, x, y, white)
		}
		for x := size * 4 / 7; x < size*5/7; x++ {
			set(pix, size, x, y, white)
		}
	}
	return pix
}

const chromeTextureSize = 128

// chromePixels is the window background: a dark translucent body inside a
// lighter one pixel border, sliced by the window into nine pieces.
func chromePixels(size int) []byte {
	pix := make([]byte, size*size*4)
	border := rgba{160, 170, 180, 220}
	body := rgba{20, 26, 31, 200}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := body
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				c = border
			}
			set(pix, size, x, y, c)
		}
	}
	return pix
}

// scrollbarPixels lays out the start, thumb, gutter and end cells of the
// horizontal bar on row 0 and of the vertical bar on row 1.
func scrollbarPixels() []byte {
	const n = ui.ScrollbarCell
	stride := 4 * n
	pix := make([]byte, stride*2*n*4)
	gutter := rgba{128, 128, 128, 150}
	button := rgba{200, 200, 200, 220}
	thumb := rgba{255, 255, 255, 220}
	for row := 0; row < 2; row++ {
		for cell, c := range []rgba{button, thumb, gutter, button} {
			for y := 1; y < n-1; y++ {
				for x := 1; x < n-1; x++ {
					set(pix, stride, cell*n+x, row*n+y, c)
				}
			}
		}
	}
	return pix
}

const shadowHeight = 16

// shadowPixels fades in over the left cell, holds in the middle one and
// fades out over the right one.
func shadowPixels() []byte {
	const n = ui.LabelShadowSize
	stride := 3 * n
	pix := make([]byte, stride*shadowHeight*4)
	for y := 0; y < shadowHeight; y++ {
		for x := 0; x < stride; x++ {
			a := 128
			switch {
			case x < n:
				a = 128 * (x + 1) / n
			case x >= 2*n:
				a = 128 * (stride - x) / n
			}
			set(pix, stride, x, y, rgba{0, 0, 0, byte(a)})
		}
	}
	return pix
}
