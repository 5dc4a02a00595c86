package scene

import "github.com/hubastard/railhud/engine/core"

// Controller2D pans with WASD (pixels per second at zoom 1) and zooms with
// the wheel.
type Controller2D struct {
	MoveSpeed float32
	ZoomSpeed float32
	Camera    *Camera2D
}

func NewController2D(cam *Camera2D) *Controller2D {
	return &Controller2D{
		MoveSpeed: 400,
		ZoomSpeed: 1.1,
		Camera:    cam,
	}
}

// Update applies held keys. wheel is false when the pointer is over a window.
func (cc *Controller2D) Update(in core.InputState, dt float32, wheel bool) {
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}

	if wheel && in.WheelChanged() {
		z := cc.Camera.Zoom
		if in.WheelDelta > 0 {
			z *= cc.ZoomSpeed
		} else {
			z /= cc.ZoomSpeed
		}
		cc.Camera.SetZoom(z)
	}
}
