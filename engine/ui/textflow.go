package ui

import (
	"strings"

	"github.com/hubastard/railhud/engine/colors"
)

const whitespace = " \t\r\n"

// TextFlow is a block of text wrapped to its width. Its height follows the
// number of wrapped lines.
type TextFlow struct {
	Base
	Color colors.Color

	font  Font
	text  string
	lines []string
}

func NewTextFlow(x, y, w int, text string) *TextFlow {
	t := &TextFlow{Color: colors.White}
	t.Base = newBase(t, x, y, w, 0)
	t.text = sanitize(text)
	return t
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

func (t *TextFlow) Text() string    { return t.text }
func (t *TextFlow) Lines() []string { return t.lines }

// SetText replaces the text and rewraps it.
func (t *TextFlow) SetText(s string) {
	t.text = sanitize(s)
	t.reflow()
}

func (t *TextFlow) Initialize(th *Theme) {
	if t.font == nil {
		t.font = th.TextFont()
	}
	t.reflow()
}

func (t *TextFlow) reflow() {
	if t.font == nil {
		return
	}
	t.lines = wrapText(t.font, t.text, t.Position.W)
	t.Position.H = len(t.lines) * t.font.Height()
}

// wrapText breaks s into lines narrower than width. A word that does not
// fit on an empty line is kept whole.
func wrapText(f Font, s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var lines []string
	pos := 0
	for pos < len(s) {
		wrap, search := pos, pos
		for search != -1 && s[search] != '\n' && f.MeasureString(s[pos:search]) < width {
			wrap = search
			search = nextSpace(s, search+1)
		}
		var w int
		if search == -1 {
			w = f.MeasureString(s[pos:])
		} else {
			w = f.MeasureString(s[pos:search])
		}
		if w < width || wrap == pos {
			if search == -1 {
				wrap = len(s)
			} else {
				wrap = search
			}
		}
		lines = append(lines, s[pos:wrap])
		pos = wrap + 1
	}
	return lines
}

func nextSpace(s string, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexAny(s[from:], whitespace)
	if i < 0 {
		return -1
	}
	return from + i
}

func (t *TextFlow) Draw(s Surface, offset Point) {
	if t.font == nil {
		return
	}
	h := t.font.Height()
	r := t.Position.Offset(offset)
	r.H = h
	for _, line := range t.lines {
		s.DrawText(t.font, r, line, AlignLeft, t.Color)
		r.Y += h
	}
}
