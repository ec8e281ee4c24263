package nominal

import (
	"reflect"
	"testing"
)

func TestInheritanceChainStopsOnCycle(t *testing.T) {
	e := New()
	// A -> B -> A (cycle)
	e.AddEdge(1, 2, nil)
	e.AddEdge(2, 1, nil)

	chain := e.GetInheritanceChain(1)
	want := []int{1, 2}
	got := make([]int, len(chain))
	for i, id := range chain {
		got[i] = int(id)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected cycle-safe chain %v, got %v", want, got)
	}
}

func TestGetInstantiationThroughHierarchy(t *testing.T) {
	e := New()
	// interface Container<T>
	e.Declare(1, []string{"T"})
	// class IntBox implements Container<number>  (derived(2) -> base(1) with args ["number"])
	e.Declare(2, nil)
	e.AddEdge(2, 1, []string{"number"})

	subst, ok := e.GetInstantiation(2, nil, 1)
	if !ok {
		t.Fatal("expected instantiation to be found")
	}
	if subst["T"] != "number" {
		t.Fatalf("expected T -> number, got %+v", subst)
	}
}

func TestGetInstantiationMissingAncestor(t *testing.T) {
	e := New()
	e.Declare(1, nil)
	if _, ok := e.GetInstantiation(1, nil, 999); ok {
		t.Fatal("expected lookup miss for an unrelated base")
	}
}
