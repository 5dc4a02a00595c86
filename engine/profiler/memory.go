package profiler

import "runtime"

// Memory is a snapshot of the runtime counters shown in overlays.
type Memory struct {
	Alloc   uint64
	Mallocs uint64
	NumGC   uint32
}

// ReadMemory reads the runtime memory counters once.
func ReadMemory() Memory {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Memory{Alloc: m.Alloc, Mallocs: m.Mallocs, NumGC: m.NumGC}
}

func MemoryUsage() uint64  { return ReadMemory().Alloc }
func MemoryAllocs() uint64 { return ReadMemory().Mallocs }
func NumGoroutine() int    { return runtime.NumGoroutine() }
func NumCPU() int          { return runtime.NumCPU() }
