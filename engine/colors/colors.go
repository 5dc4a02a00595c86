package colors

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}

	// Status colours used by the popups.
	LightSalmon = RGBA8(255, 160, 122, 255)
	LightGreen  = RGBA8(144, 238, 144, 255)
	Orange      = RGBA8(255, 165, 0, 255)

	// Scenery.
	Brown     = RGBA8(110, 78, 48, 255)
	LightGray = RGBA8(200, 200, 205, 255)
)

// RGBA8 builds a colour from 0..255 channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Fade scales the alpha channel by f, clamped to [0,1].
func (c Color) Fade(f float32) Color {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	c[3] *= f
	return c
}
