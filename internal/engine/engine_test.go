package engine

import (
	"context"
	"testing"

	"github.com/fenilsonani/tickengine/internal/config"
	"github.com/fenilsonani/tickengine/internal/kernel"
	"github.com/fenilsonani/tickengine/internal/shacl"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Create(
		config.MaxSubjects(64),
		config.MaxPredicates(16),
		config.MaxObjects(64),
		config.ArenaCapacity(1<<20),
	)
	require.NoError(t, err)
	t.Cleanup(e.Destroy)
	return e
}

func TestCreate_AllocatesUsableEngine(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTriple(1, 0, 9))
	require.True(t, e.Ask(1, 0, 9))
	require.False(t, e.Ask(2, 0, 9))
}

func TestAddTriple_OutOfRangeReturnsInvalidArg(t *testing.T) {
	e := newTestEngine(t)
	err := e.AddTriple(999, 0, 9)
	require.ErrorIs(t, err, ErrInvalidArg)
}

func TestQueryExecute_UnknownPlanReturnsNotFound(t *testing.T) {
	e := newTestEngine(t)
	out := make([]kernel.Row, 4)
	_, err := e.QueryExecute("doesNotExist", out, len(out))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShapeLifecycle_RegisterAddValidate(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTriple(1, 0, 9))   // (1, rdf:type, 9)
	require.NoError(t, e.AddTriple(1, 1, 10))  // (1, hasEmail, 10)

	require.NoError(t, e.ShapeRegister(1, 9))
	require.NoError(t, e.ConstraintAdd(1, shacl.Constraint{Kind: shacl.MinCount, Path: 1, N: 1}))

	report := &shacl.Report{Conforms: true}
	require.True(t, e.Validate(1, report))
	require.Empty(t, report.Results)
}

func TestShapeRegister_Duplicate(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ShapeRegister(1, 9))
	err := e.ShapeRegister(1, 9)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestConstraintAdd_UnregisteredShape(t *testing.T) {
	e := newTestEngine(t)
	err := e.ConstraintAdd(42, shacl.Constraint{Kind: shacl.MinCount, Path: 1, N: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRunParallel_IndependentEnginesConcurrently(t *testing.T) {
	ctx := context.Background()
	err := RunParallel(ctx, 4, func(i int) (*Engine, error) {
		return Create(
			config.MaxSubjects(16),
			config.MaxPredicates(4),
			config.MaxObjects(16),
			config.ArenaCapacity(64*1024),
		)
	}, func(ctx context.Context, e *Engine) error {
		return e.AddTriple(1, 0, 2)
	})
	require.NoError(t, err)
}
