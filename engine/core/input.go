package core

import "math"

// Input accumulates platform events between update ticks. Edge flags
// (pressed/released, wheel, key presses) survive until EndTick.
type Input struct {
	keys        map[Key]bool
	keysPressed []Key
	mods        Mod

	mouseX, mouseY float64
	lastX, lastY   float64
	leftDown       bool
	leftPressed    bool
	leftReleased   bool
	wheel          float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !in.keys[e.Key] {
			in.keysPressed = append(in.keysPressed, e.Key)
		}
		in.keys[e.Key] = e.Down
		in.mods = e.Mods
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button != MouseLeft {
			return
		}
		if e.Down && !in.leftDown {
			in.leftPressed = true
		}
		if !e.Down && in.leftDown {
			in.leftReleased = true
		}
		in.leftDown = e.Down
	case EventScroll:
		in.wheel += e.Yoff
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// Snapshot returns the polled state for the current update tick.
func (in *Input) Snapshot() InputState {
	s := InputState{
		MouseX:       int(math.Round(in.mouseX)),
		MouseY:       int(math.Round(in.mouseY)),
		MouseDeltaX:  int(math.Round(in.mouseX - in.lastX)),
		MouseDeltaY:  int(math.Round(in.mouseY - in.lastY)),
		LeftDown:     in.leftDown,
		LeftPressed:  in.leftPressed,
		LeftReleased: in.leftReleased,
		WheelDelta:   in.wheel,
		Mods:         in.mods,
		KeysPressed:  append([]Key(nil), in.keysPressed...),
	}
	for k, down := range in.keys {
		if down {
			s.KeysDown = append(s.KeysDown, k)
		}
	}
	return s
}

// EndTick clears the edge flags after an update consumed them.
func (in *Input) EndTick() {
	in.leftPressed = false
	in.leftReleased = false
	in.wheel = 0
	in.keysPressed = in.keysPressed[:0]
	in.lastX, in.lastY = in.mouseX, in.mouseY
}

// InputState is an immutable per-tick view of the pointer and keyboard.
type InputState struct {
	MouseX, MouseY           int
	MouseDeltaX, MouseDeltaY int
	LeftDown                 bool
	LeftPressed              bool
	LeftReleased             bool
	WheelDelta               float64 // lines, positive = away from the user
	Mods                     Mod
	KeysDown                 []Key
	KeysPressed              []Key
}

func (s InputState) MouseMoved() bool { return s.MouseDeltaX != 0 || s.MouseDeltaY != 0 }

func (s InputState) WheelChanged() bool { return s.WheelDelta != 0 }

func (s InputState) IsKeyDown(k Key) bool {
	for _, d := range s.KeysDown {
		if d == k {
			return true
		}
	}
	return false
}

func (s InputState) Shift() bool {
	return s.Mods&ModShift != 0 || s.IsKeyDown(KeyLeftShift) || s.IsKeyDown(KeyRightShift)
}
