package kernel

import (
	"testing"

	"github.com/fenilsonani/tickengine/internal/arena"
	"github.com/fenilsonani/tickengine/internal/store"
)

func TestFilterGTF32_AscendingIndices(t *testing.T) {
	values := []float32{1, 9, 2, 8, 3, 7, 4, 6, 5, 10}
	out := make([]int, len(values))
	n := FilterGTF32(values, len(values), 5, out)

	want := []int{1, 3, 5, 7, 9}
	if n != len(want) {
		t.Fatalf("FilterGTF32() returned %d, want %d", n, len(want))
	}
	for i, idx := range want {
		if out[i] != idx {
			t.Errorf("out[%d] = %d, want %d", i, out[i], idx)
		}
	}
}

func TestFilterGTF32_MatchesScalarReference(t *testing.T) {
	values := make([]float32, 137) // not a multiple of 4 or 8, to exercise the tail loop
	for i := range values {
		values[i] = float32(i%23) - 10
	}
	threshold := float32(3.5)

	gotDispatch := make([]int, len(values))
	nDispatch := FilterGTF32(values, len(values), threshold, gotDispatch)

	gotScalar := make([]int, len(values))
	nScalar := scalarFilterGT(values, len(values), threshold, gotScalar)

	if nDispatch != nScalar {
		t.Fatalf("dispatch count = %d, scalar count = %d", nDispatch, nScalar)
	}
	for i := 0; i < nScalar; i++ {
		if gotDispatch[i] != gotScalar[i] {
			t.Errorf("index %d: dispatch = %d, scalar = %d", i, gotDispatch[i], gotScalar[i])
		}
	}
}

func TestFilterGTF32_RespectsOutputCapacity(t *testing.T) {
	values := []float32{10, 10, 10, 10}
	out := make([]int, 2)
	n := FilterGTF32(values, len(values), 0, out)
	if n != 2 {
		t.Errorf("FilterGTF32() with cap=2 returned %d, want 2", n)
	}
}

func TestHashJoin_MultiplicityFollowsRight(t *testing.T) {
	left := []store.TermID{1, 2, 3}
	right := []store.TermID{5, 2, 2, 1, 9}

	out := make([]store.TermID, len(right))
	n := HashJoin(left, right, out)

	want := []store.TermID{2, 2, 1}
	if n != len(want) {
		t.Fatalf("HashJoin() returned %d matches, want %d", n, len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestHashJoin_NoMatches(t *testing.T) {
	left := []store.TermID{1, 2, 3}
	right := []store.TermID{100, 200}
	out := make([]store.TermID, len(right))
	if n := HashJoin(left, right, out); n != 0 {
		t.Errorf("HashJoin() with no overlap returned %d, want 0", n)
	}
}

func TestProject_CopiesSubjectIDs(t *testing.T) {
	ids := []store.TermID{7, 8, 9}
	rows := make([]Row, 3)
	n := Project(ids, rows)
	if n != 3 {
		t.Fatalf("Project() returned %d, want 3", n)
	}
	for i, id := range ids {
		if rows[i].SubjectID != id {
			t.Errorf("rows[%d].SubjectID = %d, want %d", i, rows[i].SubjectID, id)
		}
	}
}

func TestScanKernels_WrapStore(t *testing.T) {
	a, err := arena.Create(4*1024*1024, 0)
	if err != nil {
		t.Fatalf("arena.Create() error = %v", err)
	}
	s, err := store.New(a, 32, 4, 32, 0)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	if err := s.AddTriple(3, 0, 1); err != nil {
		t.Fatalf("AddTriple() error = %v", err)
	}
	if err := s.AddTriple(1, 2, 9); err != nil {
		t.Fatalf("AddTriple() error = %v", err)
	}

	typeOut := make([]store.TermID, 32)
	if n := ScanByType(s, 1, typeOut, len(typeOut)); n != 1 || typeOut[0] != 3 {
		t.Errorf("ScanByType() = %v (n=%d), want [3] (n=1)", typeOut[:n], n)
	}

	predOut := make([]store.TermID, 32)
	if n := ScanByPredicate(s, 2, predOut, len(predOut)); n != 1 || predOut[0] != 1 {
		t.Errorf("ScanByPredicate() = %v (n=%d), want [1] (n=1)", predOut[:n], n)
	}
}
