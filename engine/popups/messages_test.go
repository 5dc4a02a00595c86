package popups

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"testing"
	"time"
)

func texts(ms []Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func TestMessageLogKeyedReplace(t *testing.T) {
	var l MessageLog
	l.Add(Message{Key: "speed", Text: "10 km/h"})
	l.Add(Message{Text: "signal at danger"})
	before := l.Snapshot()
	l.Add(Message{Key: "speed", Text: "20 km/h"})

	got := fmt.Sprint(texts(l.Snapshot()))
	if got != "[signal at danger 20 km/h]" {
		t.Errorf("got %s", got)
	}
	if fmt.Sprint(texts(before)) != "[10 km/h signal at danger]" {
		t.Errorf("earlier snapshot changed: %v", texts(before))
	}
}

func TestMessageLogKeepsNewest(t *testing.T) {
	var l MessageLog
	for i := 0; i < MaxMessages+3; i++ {
		l.Add(Message{Text: fmt.Sprint(i)})
	}
	snap := l.Snapshot()
	if len(snap) != MaxMessages {
		t.Fatalf("got %d messages, want %d", len(snap), MaxMessages)
	}
	if snap[0].Text != "3" {
		t.Errorf("oldest kept is %q, want 3", snap[0].Text)
	}
}

func TestMessageLogExpire(t *testing.T) {
	var l MessageLog
	l.Add(Message{Text: "short", End: 10})
	l.Add(Message{Text: "long", End: 100})

	l.Expire(10 + MessageFade/2)
	if len(l.Snapshot()) != 2 {
		t.Fatal("expired a message that is still fading")
	}
	p := l.entries.Load()
	l.Expire(10 + MessageFade/2)
	if l.entries.Load() != p {
		t.Error("expiring nothing published a new snapshot")
	}
	l.Expire(10 + MessageFade)
	if got := fmt.Sprint(texts(l.Snapshot())); got != "[long]" {
		t.Errorf("got %s", got)
	}
}

func TestMessageAlpha(t *testing.T) {
	m := Message{Start: 0, End: 10}
	tests := []struct {
		now  float64
		want float32
	}{
		{5, 1},
		{10, 1},
		{10 + MessageFade/2, 0.5},
		{10 + MessageFade, 0},
		{100, 0},
	}
	for _, tt := range tests {
		if got := m.Alpha(tt.now); got != tt.want {
			t.Errorf("Alpha(%v) got %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestMessageLogConcurrentWriters(t *testing.T) {
	var l MessageLog
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				l.Add(Message{Key: fmt.Sprint("writer", g), Text: fmt.Sprint(i)})
				_ = l.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := l.Snapshot()
	if len(snap) != 8 {
		t.Fatalf("got %d messages, want one per writer", len(snap))
	}
	for _, m := range snap {
		if m.Text != "199" {
			t.Errorf("%s ended on %q, want its last message", m.Key, m.Text)
		}
	}
}

func TestMessagesWindowShowsAndHides(t *testing.T) {
	env := newTestEnv()
	w := NewMessagesWindow(env.m, nil, nil)
	env.start()

	w.AddMessage("", "Switch thrown", 3*time.Second)
	w.AddMessage("speed", "Speed limit 40", 10*time.Second)
	if !w.Visible() {
		t.Fatal("window hidden after a message")
	}
	if len(w.lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(w.lines))
	}
	last := w.lines[1].label
	if last.Text != "Speed limit 40" || last.Position.W != len("Speed limit 40")*8 {
		t.Errorf("last line is %q, %d wide", last.Text, last.Position.W)
	}
	if bottom := last.Position.Bottom(); bottom != w.Location().H-4 {
		t.Errorf("lines end at %d, want the bottom of the window", bottom)
	}

	env.frame(4 * time.Second)
	if a := w.lines[0].label.Color[3]; a <= 0 || a >= 1 {
		t.Errorf("fading message alpha %v", a)
	}
	env.frame(2 * time.Second)
	if len(w.lines) != 1 {
		t.Fatalf("got %d lines after expiry, want 1", len(w.lines))
	}
	env.frame(10 * time.Second)
	if w.Visible() {
		t.Error("window still visible with an empty log")
	}
}

func TestMessagesPayloadRoundTrip(t *testing.T) {
	env := newTestEnv()
	w := NewMessagesWindow(env.m, nil, nil)
	w.Log.Add(Message{Key: "k", Text: "héllo", Start: 1.5, End: 4.25})
	w.Log.Add(Message{Text: "", Start: 2, End: 3})

	var buf bytes.Buffer
	if err := w.SavePayload(&buf); err != nil {
		t.Fatalf("SavePayload: %v", err)
	}
	buf.WriteString("next window")

	back := NewMessagesWindow(env.m, nil, nil)
	if err := back.RestorePayload(&buf); err != nil {
		t.Fatalf("RestorePayload: %v", err)
	}
	got, want := back.Log.Snapshot(), w.Log.Snapshot()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if buf.String() != "next window" {
		t.Errorf("restore read into the following record, left %q", buf.String())
	}
}

func TestMessagesRestoreRejectsBadPayloads(t *testing.T) {
	env := newTestEnv()
	w := NewMessagesWindow(env.m, nil, nil)

	count := func(n int32) []byte { return binary.LittleEndian.AppendUint32(nil, uint32(n)) }
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"negative count", count(-1)},
		{"too many", count(MaxMessages + 1)},
		{"truncated entry", append(count(1), 3, 'a')},
		{"huge string", binary.AppendUvarint(count(1), 1<<40)},
		{"missing times", append(count(1), 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := w.RestorePayload(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
