package planner

import (
	"fmt"
	"testing"

	"github.com/fenilsonani/tickengine/internal/arena"
	"github.com/fenilsonani/tickengine/internal/dictionary"
	"github.com/fenilsonani/tickengine/internal/kernel"
	"github.com/fenilsonani/tickengine/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	testRdfType       = TermID(0)
	customerClass     = TermID(9)  // must match plans_generated.go's getHighValueCustomersPlan
	hasNamePred       = TermID(10) // must match plans_generated.go's getHighValueCustomersPlan
	lifetimeValuePred = TermID(11) // must match plans_generated.go's getHighValueCustomersPlan
)

// buildCustomerStore seeds customers 0..9, each with rdf:type Customer,
// hasName, and lifetimeValue cycling through {2000,4000,6000,8000,10000},
// per spec Scenario E. Term IDs are kept small deliberately: the store's
// dense bitmaps are sized by maxSubjects*maxObjects per predicate, so a
// realistic ID range would require a correspondingly large arena.
func buildCustomerStore(t *testing.T) (*store.Store, *dictionary.Dictionary) {
	t.Helper()
	a, err := arena.Create(1024*1024, 0)
	require.NoError(t, err)
	st, err := store.New(a, 64, 16, 64, testRdfType)
	require.NoError(t, err)

	// literal range starts at 30: names occupy [30,40), values [40,50).
	b := dictionary.NewBuilder("http://example.org/", 20, 30)
	values := []int{2000, 4000, 6000, 8000, 10000}
	nameNext := TermID(30)
	litNext := TermID(40)
	for i := 0; i < 10; i++ {
		sub := TermID(i)
		require.NoError(t, st.AddTriple(sub, testRdfType, customerClass))

		nameObj := nameNext
		nameNext++
		b.Intern(nameObj, fmt.Sprintf("Customer %d", i))
		require.NoError(t, st.AddTriple(sub, hasNamePred, nameObj))

		valObj := litNext
		litNext++
		v := values[i%len(values)]
		b.Intern(valObj, fmt.Sprintf("%d", v))
		require.NoError(t, st.AddTriple(sub, lifetimeValuePred, valObj))
	}
	return st, b.Build()
}

func TestScenarioE_GetHighValueCustomers(t *testing.T) {
	st, dict := buildCustomerStore(t)
	exec := NewExecutor(st, dict, testRdfType, Table())

	out := make([]kernel.Row, MaxRows)
	n := exec.Execute("getHighValueCustomers", out, len(out))
	require.GreaterOrEqual(t, n, 0)

	// values cycle 2000,4000,6000,8000,10000 across 10 customers: 3 of
	// every 5 (6000,8000,10000) exceed 5000, across 2 full cycles -> 6.
	require.Equal(t, 6, n)

	seen := make([]store.TermID, n)
	for i := 0; i < n; i++ {
		seen[i] = out[i].SubjectID
	}
	for i := 1; i < len(seen); i++ {
		require.Less(t, seen[i-1], seen[i], "results must be in ascending subject order")
	}
}

func TestExecute_UnknownPlanReturnsMinusOne(t *testing.T) {
	st, dict := buildCustomerStore(t)
	exec := NewExecutor(st, dict, testRdfType, Table())
	out := make([]kernel.Row, 4)
	require.Equal(t, -1, exec.Execute("doesNotExist", out, len(out)))
}

func TestExecute_EmptyScanShortCircuitsToZero(t *testing.T) {
	a, err := arena.Create(1024*1024, 0)
	require.NoError(t, err)
	st, err := store.New(a, 64, 16, 64, testRdfType)
	require.NoError(t, err)
	dict := dictionary.NewBuilder("http://example.org/", 32, 48).Build()

	exec := NewExecutor(st, dict, testRdfType, Table())
	out := make([]kernel.Row, 16)
	n := exec.Execute("getHighValueCustomers", out, len(out))
	require.Equal(t, 0, n)
}

func TestExecute_RespectsMaxResults(t *testing.T) {
	st, dict := buildCustomerStore(t)
	exec := NewExecutor(st, dict, testRdfType, Table())
	out := make([]kernel.Row, MaxRows)
	n := exec.Execute("getHighValueCustomers", out, 2)
	require.Equal(t, 2, n)
}
