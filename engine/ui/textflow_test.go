package ui

import (
	"math/rand"
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	f := fixedFont{w: 10, h: 20}
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello", 100, []string{"hello"}},
		{"wraps at space", "hello world foo", 100, []string{"hello", "world foo"}},
		{"hard break", "a\nb", 100, []string{"a", "b"}},
		{"blank line", "a\n\nb", 100, []string{"a", "", "b"}},
		{"trailing newline", "a\n", 100, []string{"a"}},
		{"long word overflows", "supercalifragilistic ok", 100, []string{"supercalifragilistic", "ok"}},
		{"empty", "", 100, nil},
		{"no width", "a b\nc", 0, []string{"a b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(f, tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapText(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("wrapText(%q) = %q, want %q", tt.text, got, tt.want)
				}
			}
		})
	}
}

func TestWrappedLinesFitWidth(t *testing.T) {
	f := fixedFont{w: 7, h: 14}
	const width = 140
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		var words []string
		for i := 0; i < 40; i++ {
			// keep every word strictly narrower than the box
			words = append(words, strings.Repeat("x", 1+rng.Intn(width/f.w-1)))
		}
		text := strings.Join(words, " ")
		for _, line := range wrapText(f, text, width) {
			if f.MeasureString(line) >= width {
				t.Fatalf("line %q is %dpx, box is %dpx", line, f.MeasureString(line), width)
			}
		}
	}
}

func TestTextFlowHeightFollowsLines(t *testing.T) {
	tf := NewTextFlow(0, 0, 100, "hello world foo")
	tf.Initialize(&Theme{Font: fixedFont{w: 10, h: 20}})
	if len(tf.Lines()) != 2 || tf.Position.H != 40 {
		t.Fatalf("lines %q height %d", tf.Lines(), tf.Position.H)
	}
	tf.SetText("a\tb")
	if tf.Text() != "a b" {
		t.Fatalf("tab not replaced by a space: %q", tf.Text())
	}
	if tf.Position.H != 20 {
		t.Fatalf("height = %d, want 20", tf.Position.H)
	}
	narrow := NewTextFlow(0, 0, 50, "a\tb")
	narrow.Initialize(&Theme{Font: fixedFont{w: 10, h: 20}})
	if got := narrow.Lines(); len(got) != 1 || got[0] != "a b" {
		t.Fatalf("tab wrapped to %q, want [\"a b\"]", got)
	}
	tf.SetText("")
	if tf.Position.H != 0 {
		t.Fatalf("empty text height = %d", tf.Position.H)
	}
}

func TestTextFlowDrawsEachLine(t *testing.T) {
	tf := NewTextFlow(0, 0, 100, "hello world foo")
	tf.Initialize(&Theme{Font: fixedFont{w: 10, h: 20}})
	rec := &recorder{}
	tf.Draw(rec, Pt(0, 100))
	want := []string{`text "hello" {0 100 100 20}`, `text "world foo" {0 120 100 20}`}
	if len(rec.ops) != len(want) || rec.ops[0] != want[0] || rec.ops[1] != want[1] {
		t.Fatalf("ops = %q", rec.ops)
	}
}
