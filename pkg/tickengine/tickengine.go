// Package tickengine is the public façade over the internal engine
// handle, grounded on pkg/vcs/repository.go's pattern of a thin exported
// wrapper that re-exposes an internal/ subsystem's API under a stable
// public name.
package tickengine

import (
	"context"

	"github.com/fenilsonani/tickengine/internal/config"
	"github.com/fenilsonani/tickengine/internal/engine"
	"github.com/fenilsonani/tickengine/internal/kernel"
	"github.com/fenilsonani/tickengine/internal/shacl"
)

// Engine is the reasoning substrate handle: one arena-backed triple
// store, dictionary, query plan executor, and constraint validator.
type Engine = engine.Engine

// Option configures an Engine at construction.
type Option = config.Option

// Row is one query result tuple.
type Row = kernel.Row

// Report collects a validation run's results.
type Report = shacl.Report

// Result is one non-conforming check outcome within a Report.
type Result = shacl.Result

// Constraint is one SHACL-like check attached to a shape.
type Constraint = shacl.Constraint

// Errors re-exported for callers that want to errors.Is against them
// without importing internal/engine directly.
var (
	ErrInvalidArg    = engine.ErrInvalidArg
	ErrNotFound      = engine.ErrNotFound
	ErrCapacity      = engine.ErrCapacity
	ErrCorruption    = engine.ErrCorruption
	ErrAlreadyExists = engine.ErrAlreadyExists
)

// Constraint kind constants, re-exported from internal/shacl.
const (
	MinCount    = shacl.MinCount
	MaxCount    = shacl.MaxCount
	Class       = shacl.Class
	NodeKind    = shacl.NodeKind
	Datatype    = shacl.Datatype
	MemoryBound = shacl.MemoryBound
)

// Option constructors, re-exported from internal/config.
var (
	MaxSubjects      = config.MaxSubjects
	MaxPredicates    = config.MaxPredicates
	MaxObjects       = config.MaxObjects
	ArenaCapacity    = config.ArenaCapacity
	TelemetryEnabled = config.TelemetryEnabled
	TypePredicate    = config.TypePredicate
)

// Open constructs a new Engine with the given options.
func Open(opts ...Option) (*Engine, error) {
	return engine.Create(opts...)
}

// RunParallel runs n independently constructed engines concurrently.
func RunParallel(ctx context.Context, n int, newEngine func(i int) (*Engine, error), work func(ctx context.Context, e *Engine) error) error {
	return engine.RunParallel(ctx, n, newEngine, work)
}
