//go:build !tickengine_telemetry

package telemetry

// NewTracer returns the build's active Tracer implementation. Without
// the tickengine_telemetry build tag this is always the zero-cost no-op,
// regardless of enabled — there is no recording implementation to fall
// back to in this build.
func NewTracer(enabled bool) Tracer {
	return noopTracer{}
}

// Enabled reports whether this build retains span records.
const Enabled = false
