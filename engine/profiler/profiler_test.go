package profiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestRecorder(capacity int) (*recorder, *int64) {
	clock := new(int64)
	r := &recorder{now: func() int64 { return *clock }}
	r.init(capacity)
	return r, clock
}

func TestNestedScopes(t *testing.T) {
	r, clock := newTestRecorder(16)
	outer := r.start("frame")
	*clock += 1000
	inner := r.start("hud")
	*clock += 3000
	inner()
	*clock += 1000
	outer()

	got, end := speedscopeEvents(r.events())
	want := []ssEvent{{"O", 0, 0}, {"O", 1, 1}, {"C", 4, 1}, {"C", 5, 0}}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if end != 5 {
		t.Errorf("end = %d, want 5", end)
	}
	if names := r.frameNames(); len(names) != 2 || names[0] != "frame" || names[1] != "hud" {
		t.Errorf("names = %v", names)
	}
}

func TestRingKeepsNewestInOrder(t *testing.T) {
	r, clock := newTestRecorder(4)
	for range 3 {
		*clock += 1000
		r.start("tick")()
	}
	evs := r.events()
	if len(evs) != 4 {
		t.Fatalf("len = %d, want 4", len(evs))
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].at < evs[i-1].at {
			t.Fatalf("events out of order: %v", evs)
		}
	}
	if !evs[0].open || evs[3].open {
		t.Errorf("ring should start on an open and end on a close: %v", evs)
	}
}

func TestUnbalancedEventsAreRepaired(t *testing.T) {
	evs := []event{
		{at: 0, frame: 1},
		{at: 1000, frame: 0, open: true},
		{at: 2000, frame: 2},
		{at: 3000, frame: 1, open: true},
	}
	got, _ := speedscopeEvents(evs)
	want := []ssEvent{{"O", 1, 0}, {"O", 3, 1}, {"C", 3, 1}, {"C", 3, 0}}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStartBeforeInitIsNoop(t *testing.T) {
	var r recorder
	r.start("x")()
	if r.events() != nil {
		t.Fatalf("recorded without a ring")
	}
	if err := r.dump(filepath.Join(t.TempDir(), "p.json")); !errors.Is(err, ErrNoEvents) {
		t.Fatalf("dump err = %v, want ErrNoEvents", err)
	}
}

func TestDumpWritesSpeedscope(t *testing.T) {
	r, clock := newTestRecorder(8)
	end := r.start("render")
	*clock += 2000
	end()

	path := filepath.Join(t.TempDir(), "p.json")
	if err := r.dump(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var f ssFile
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		t.Fatal(err)
	}
	if f.Schema != speedscopeSchema || len(f.Profiles) != 1 || f.Profiles[0].EndValue != 2 {
		t.Fatalf("file = %+v", f)
	}
	if len(f.Shared.Frames) != 1 || f.Shared.Frames[0].Name != "render" {
		t.Fatalf("frames = %v", f.Shared.Frames)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestReadMemory(t *testing.T) {
	if m := ReadMemory(); m.Alloc == 0 || m.Mallocs == 0 {
		t.Fatalf("memory = %+v", m)
	}
	if MemoryUsage() == 0 || MemoryAllocs() == 0 {
		t.Fatalf("usage %d allocs %d", MemoryUsage(), MemoryAllocs())
	}
	if NumGoroutine() < 1 || NumCPU() < 1 {
		t.Fatalf("goroutines %d cpus %d", NumGoroutine(), NumCPU())
	}
}
