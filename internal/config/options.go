// Package config holds the functional options used to construct an
// Engine, grounded on the teacher's construct-with-options style
// (pkg/vcs/repository.go's Open/Init taking a plain options struct,
// generalized here into the functional-options idiom common across the
// pack for fixed-size, pre-dimensioned resources).
package config

// Options collects an Engine's construction-time parameters. Zero values
// are replaced by the package defaults.
type Options struct {
	MaxSubjects      int
	MaxPredicates    int
	MaxObjects       int
	ArenaCapacity    int
	TelemetryEnabled bool
	TypePredicate    uint32
}

// Option mutates an Options under construction.
type Option func(*Options)

// Default dimensions, chosen to comfortably hold a small demo graph
// without requiring a multi-gigabyte arena (see internal/store's
// dense-bitmap memory model: cost scales with maxSubjects * maxObjects
// per predicate, times maxPredicates). Production deployments size these
// explicitly via MaxSubjects/MaxPredicates/MaxObjects/ArenaCapacity.
const (
	DefaultMaxSubjects   = 1 << 10
	DefaultMaxPredicates = 1 << 6
	DefaultMaxObjects    = 1 << 10
	DefaultArenaCapacity = 16 << 20 // 16 MiB
)

// MaxSubjects overrides the subject dimension.
func MaxSubjects(n int) Option {
	return func(o *Options) { o.MaxSubjects = n }
}

// MaxPredicates overrides the predicate dimension.
func MaxPredicates(n int) Option {
	return func(o *Options) { o.MaxPredicates = n }
}

// MaxObjects overrides the object dimension.
func MaxObjects(n int) Option {
	return func(o *Options) { o.MaxObjects = n }
}

// ArenaCapacity overrides the backing arena's byte capacity.
func ArenaCapacity(n int) Option {
	return func(o *Options) { o.ArenaCapacity = n }
}

// TelemetryEnabled toggles whether the engine's tracer retains span
// records. Defaults to true; set false to force the zero-cost no-op
// tracer even in a binary built with the tickengine_telemetry tag. Has
// no effect in a binary built without that tag, which is always the
// no-op regardless — see internal/telemetry.
func TelemetryEnabled(enabled bool) Option {
	return func(o *Options) { o.TelemetryEnabled = enabled }
}

// TypePredicate sets the predicate ID treated as rdf:type.
func TypePredicate(id uint32) Option {
	return func(o *Options) { o.TypePredicate = id }
}

// New applies opts over the package defaults.
func New(opts ...Option) Options {
	o := Options{
		MaxSubjects:      DefaultMaxSubjects,
		MaxPredicates:    DefaultMaxPredicates,
		MaxObjects:       DefaultMaxObjects,
		ArenaCapacity:    DefaultArenaCapacity,
		TelemetryEnabled: true,
		TypePredicate:    0,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
