//go:build profile

package profiler

// Enabled reports whether scopes are recorded in this build.
const Enabled = true
