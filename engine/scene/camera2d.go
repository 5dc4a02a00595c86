package scene

// Camera2D looks at a y-down world plane. X,Y is the world point shown at
// the viewport centre.
type Camera2D struct {
	X, Y          float32
	Zoom          float32 // 1 = one world unit per pixel
	Width, Height float32
	vp            [16]float32
	dirty         bool
}

const minZoom = 0.05

func NewCamera2D(width, height int) *Camera2D {
	c := &Camera2D{Zoom: 1}
	c.SetViewportPixels(width, height)
	return c
}

func (c *Camera2D) SetViewportPixels(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *Camera2D) Move(dx, dy float32)     { c.X += dx; c.Y += dy; c.dirty = true }
func (c *Camera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *Camera2D) SetZoom(z float32) {
	c.Zoom = max(z, minZoom)
	c.dirty = true
}

func (c *Camera2D) VP() [16]float32 {
	if c.dirty {
		hw, hh := c.Width*0.5/c.Zoom, c.Height*0.5/c.Zoom
		c.vp = ortho(c.X-hw, c.X+hw, c.Y+hh, c.Y-hh, -1, 1)
		c.dirty = false
	}
	return c.vp
}

// ToWorld converts a framebuffer pixel to world coordinates.
func (c *Camera2D) ToWorld(px, py float32) (float32, float32) {
	return c.X + (px-c.Width*0.5)/c.Zoom, c.Y + (py-c.Height*0.5)/c.Zoom
}

// Screen is the pixel projection used for overlays: origin top-left, one
// unit per framebuffer pixel.
func Screen(w, h int) [16]float32 {
	return ortho(0, float32(w), float32(h), 0, -1, 1)
}

// column-major, GLSL-style
func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}
