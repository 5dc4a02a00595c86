// Package profiler records nested timing scopes into a ring buffer and dumps
// them as a speedscope evented profile. Recording only happens in binaries
// built with the "profile" tag; elsewhere Start returns a no-op.
package profiler

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCapacity is the ring size used when Init gets a non-positive value.
const DefaultCapacity = 1 << 20

// ErrNoEvents is returned when a dump is asked for before anything was
// recorded.
var ErrNoEvents = errors.New("profiler: no events recorded")

// Init prepares the global recorder. It does nothing unless the binary was
// built with the "profile" tag.
func Init(capacity int) {
	if !Enabled {
		return
	}
	global.init(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !Enabled {
		return func() {}
	}
	return global.start(name)
}

// Dump writes the recorded scopes to path.
func Dump(path string) error {
	return global.dump(path)
}

// OpenGraph dumps the recorded scopes into the temp directory and launches
// the speedscope viewer on them. The path is returned even when the viewer
// cannot be started.
func OpenGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "railhud.profile.speedscope.json")
	if err := Dump(path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	hideConsole(cmd)
	return path, cmd.Start()
}

type event struct {
	at    int64
	frame int
	open  bool
}

// recorder is a fixed-size ring of scope events plus the interned scope
// names they refer to.
type recorder struct {
	ready atomic.Bool
	next  atomic.Uint64
	ring  []event
	now   func() int64

	mu     sync.Mutex
	names  []string
	byName map[string]int
}

var global recorder

func (r *recorder) init(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r.ring = make([]event, capacity)
	r.next.Store(0)
	if r.now == nil {
		r.now = func() int64 { return time.Now().UnixNano() }
	}
	r.ready.Store(true)
}

func (r *recorder) start(name string) func() {
	if !r.ready.Load() {
		return func() {}
	}
	id := r.intern(name)
	begin := r.now()
	r.push(event{at: begin, frame: id, open: true})
	return func() {
		r.push(event{at: max(r.now(), begin), frame: id})
	}
}

func (r *recorder) push(e event) {
	i := r.next.Add(1) - 1
	r.ring[i%uint64(len(r.ring))] = e
}

func (r *recorder) intern(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	if r.byName == nil {
		r.byName = map[string]int{}
	}
	id := len(r.names)
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

// events returns what the ring still holds, oldest first.
func (r *recorder) events() []event {
	n := r.next.Load()
	if n == 0 || len(r.ring) == 0 {
		return nil
	}
	size := uint64(len(r.ring))
	from := uint64(0)
	if n > size {
		from = n - size
	}
	out := make([]event, 0, n-from)
	for i := from; i < n; i++ {
		out = append(out, r.ring[i%size])
	}
	return out
}

func (r *recorder) frameNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func (r *recorder) dump(path string) error {
	evs := r.events()
	if len(evs) == 0 {
		return ErrNoEvents
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := writeSpeedscope(f, r.frameNames(), evs); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
