package ui

import (
	"fmt"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
)

// fixedFont gives every byte the same advance.
type fixedFont struct{ w, h int }

func (f fixedFont) Height() int                { return f.h }
func (f fixedFont) MeasureString(s string) int { return len(s) * f.w }

// recorder is a Surface that logs draw calls.
type recorder struct {
	ops      []string
	clips    []Rect
	depth    int
	maxDepth int
}

func (r *recorder) FillRect(rc Rect, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("fill %v", rc))
}

func (r *recorder) DrawImage(_ core.Texture, dst, src Rect, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("image %v %v", dst, src))
}

func (r *recorder) DrawText(_ Font, rc Rect, s string, _ Align, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %q %v", s, rc))
}

func (r *recorder) PushClip(rc Rect) {
	r.clips = append(r.clips, rc)
	r.depth++
	r.maxDepth = max(r.maxDepth, r.depth)
	r.ops = append(r.ops, "push")
}

func (r *recorder) PopClip() {
	r.depth--
	r.ops = append(r.ops, "pop")
}

func press(down Point) *MouseEvent {
	return &MouseEvent{
		Position:     down,
		DownPosition: down,
		Input:        core.InputState{LeftDown: true, LeftPressed: true},
	}
}

func release(down, at Point) *MouseEvent {
	return &MouseEvent{
		Position:     at,
		DownPosition: down,
		Input:        core.InputState{LeftReleased: true},
	}
}
