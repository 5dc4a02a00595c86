package popups

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

const (
	// MessageFade is how long, in seconds, an expired message takes to
	// disappear.
	MessageFade = 2.0
	// MaxMessages is how many messages the log keeps.
	MaxMessages = 10

	maxSavedString = 1 << 16
)

var errSavedString = errors.New("saved string too long")

// Message is one line of the on-screen log. Start and End are clock seconds.
type Message struct {
	Key   string
	Text  string
	Start float64
	End   float64
}

// Alpha is the opacity of m at now: opaque until End, then fading out.
func (m Message) Alpha(now float64) float32 {
	if now <= m.End {
		return 1
	}
	return float32(max(0, 1-(now-m.End)/MessageFade))
}

func (m Message) expired(now float64) bool { return now >= m.End+MessageFade }

// MessageLog is a message list that any goroutine may post to while the
// viewer reads it. Readers get immutable snapshots; writers publish a new
// slice with compare-and-swap.
type MessageLog struct {
	entries atomic.Pointer[[]Message]
}

// Snapshot returns the current messages, oldest first. The slice must not
// be modified.
func (l *MessageLog) Snapshot() []Message {
	if p := l.entries.Load(); p != nil {
		return *p
	}
	return nil
}

// update retries fn until its result is published over the slice it was
// computed from. fn reports false to leave the log as it is.
func (l *MessageLog) update(fn func(cur []Message) ([]Message, bool)) {
	for {
		old := l.entries.Load()
		var cur []Message
		if old != nil {
			cur = *old
		}
		next, changed := fn(cur)
		if !changed {
			return
		}
		if l.entries.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Add appends m. A message with a key replaces the earlier message with the
// same key.
func (l *MessageLog) Add(m Message) {
	l.update(func(cur []Message) ([]Message, bool) {
		next := make([]Message, 0, len(cur)+1)
		for _, e := range cur {
			if m.Key != "" && e.Key == m.Key {
				continue
			}
			next = append(next, e)
		}
		next = append(next, m)
		if len(next) > MaxMessages {
			next = next[len(next)-MaxMessages:]
		}
		return next, true
	})
}

// Expire drops the messages that finished fading by now.
func (l *MessageLog) Expire(now float64) {
	l.update(func(cur []Message) ([]Message, bool) {
		next := make([]Message, 0, len(cur))
		for _, e := range cur {
			if !e.expired(now) {
				next = append(next, e)
			}
		}
		return next, len(next) != len(cur)
	})
}

func (l *MessageLog) Clear() {
	l.update(func(cur []Message) ([]Message, bool) { return nil, len(cur) > 0 })
}

func (l *MessageLog) replace(ms []Message) {
	l.update(func([]Message) ([]Message, bool) { return ms, true })
}

// MessagesWindow shows the message log over the scene, newest at the bottom.
type MessagesWindow struct {
	*wm.Window
	Log *MessageLog

	clock func() float64
	shown *[]Message
	lines []messageLine
}

type messageLine struct {
	msg    Message
	label  *ui.Label
	shadow *ui.LabelShadow
}

// NewMessagesWindow registers the message overlay with m. clock returns
// seconds; nil uses the manager's clock.
func NewMessagesWindow(m *wm.Manager, cat *catalog.Catalog, clock func() float64) *MessagesWindow {
	if clock == nil {
		clock = func() float64 { return float64(m.Now().UnixNano()) / 1e9 }
	}
	w := &MessagesWindow{Log: &MessageLog{}, clock: clock}
	th := m.TextHeight()
	w.Window = wm.NewWindow(m, w, wm.Options{
		Name:           "Messages",
		Caption:        cat.GetString("Messages"),
		Width:          8 + th*30,
		Height:         8 + th*MaxMessages,
		NonInteractive: true,
		Frameless:      true,
	})
	return w
}

// AddMessage posts text for duration. A non-empty key replaces the
// previous message posted under it.
func (w *MessagesWindow) AddMessage(key, text string, duration time.Duration) {
	now := w.clock()
	w.Log.Add(Message{Key: key, Text: text, Start: now, End: now + duration.Seconds()})
	w.SetVisible(true)
	if w.HasLayout() && w.Log.entries.Load() != w.shown {
		w.Relayout()
	}
}

func (w *MessagesWindow) Layout(parent *ui.Layout) *ui.Layout {
	vbox := parent.AddLayoutOffset(4, 4, 4, 4).AddLayoutVertical()
	th := vbox.TextHeight()
	font := w.Owner().Theme().TextFont()

	p := w.Log.entries.Load()
	w.shown = p
	w.lines = w.lines[:0]
	var msgs []Message
	if p != nil {
		msgs = *p
	}
	// bottom align
	if free := vbox.RemainingHeight() - len(msgs)*th; free > 0 {
		vbox.AddSpace(0, free)
	}
	for _, msg := range msgs {
		if vbox.RemainingHeight() < th {
			break
		}
		width := vbox.RemainingWidth()
		if font != nil {
			width = min(width, font.MeasureString(msg.Text))
		}
		line := ui.NewLayout(0, 0, vbox.RemainingWidth(), th)
		vbox.Add(line)
		shadow := ui.NewLabelShadow(0, 0, width, th)
		label := ui.NewLabel(0, 0, width, th, msg.Text, ui.AlignLeft)
		line.Add(shadow)
		line.Add(label)
		w.lines = append(w.lines, messageLine{msg: msg, label: label, shadow: shadow})
	}
	return vbox
}

// PrepareFrame rebuilds the lines when the log changed and fades out
// expired messages.
func (w *MessagesWindow) PrepareFrame(_ time.Duration, updateFull bool) {
	now := w.clock()
	if updateFull {
		w.Log.Expire(now)
		if w.Log.entries.Load() != w.shown {
			w.Relayout()
		}
		if len(w.lines) == 0 {
			w.SetVisible(false)
			return
		}
	}
	for _, l := range w.lines {
		a := l.msg.Alpha(now)
		l.label.Color = colors.White.Fade(a)
		l.shadow.Color = colors.White.Fade(a)
	}
}

// SavePayload writes an int32 count, then per message the key and text as
// uvarint-prefixed UTF-8 and the start and end times as float64.
func (w *MessagesWindow) SavePayload(out io.Writer) error {
	msgs := w.Log.Snapshot()
	if err := binary.Write(out, binary.LittleEndian, int32(len(msgs))); err != nil {
		return err
	}
	for _, m := range msgs {
		if err := writeString(out, m.Key); err != nil {
			return err
		}
		if err := writeString(out, m.Text); err != nil {
			return err
		}
		if err := binary.Write(out, binary.LittleEndian, [2]float64{m.Start, m.End}); err != nil {
			return err
		}
	}
	return nil
}

func (w *MessagesWindow) RestorePayload(in io.Reader) error {
	var n int32
	if err := binary.Read(in, binary.LittleEndian, &n); err != nil {
		return err
	}
	if n < 0 || n > MaxMessages {
		return fmt.Errorf("message count %d out of range", n)
	}
	msgs := make([]Message, 0, n)
	for i := int32(0); i < n; i++ {
		var m Message
		var err error
		if m.Key, err = readString(in); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		if m.Text, err = readString(in); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		var times [2]float64
		if err := binary.Read(in, binary.LittleEndian, &times); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		m.Start, m.End = times[0], times[1]
		msgs = append(msgs, m)
	}
	w.Log.replace(msgs)
	return nil
}

func writeString(out io.Writer, s string) error {
	buf := binary.AppendUvarint(nil, uint64(len(s)))
	buf = append(buf, s...)
	_, err := out.Write(buf)
	return err
}

// byteReader reads one byte at a time so nothing past the string is
// consumed from the shared stream.
type byteReader struct{ io.Reader }

func (r byteReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r.Reader, b[:])
	return b[0], err
}

func readString(in io.Reader) (string, error) {
	n, err := binary.ReadUvarint(byteReader{in})
	if err != nil {
		return "", err
	}
	if n > maxSavedString {
		return "", errSavedString
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(in, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
