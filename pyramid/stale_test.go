package pyramid

import "testing"

func TestStaleRegistryCountsIndependently(t *testing.T) {
	s := newStaleRegistry()
	c := TileCoord{Z: 2, X: 1, Y: 1}

	if s.isStale(c) {
		t.Fatalf("fresh registry should not report %v stale", c)
	}

	s.incr(c)
	s.incr(c)
	if !s.isStale(c) {
		t.Fatalf("expected %v to be stale after two incr", c)
	}

	s.decr(c)
	if !s.isStale(c) {
		t.Fatalf("one outstanding stale callback should remain after one decr of two")
	}

	s.decr(c)
	if s.isStale(c) {
		t.Fatalf("expected %v to no longer be stale after consuming both", c)
	}
}

func TestStaleRegistryDecrOnAbsentIsNoop(t *testing.T) {
	s := newStaleRegistry()
	c := TileCoord{Z: 1, X: 0, Y: 0}
	s.decr(c) // must not panic
	if s.isStale(c) {
		t.Fatalf("decrementing an absent coord should not mark it stale")
	}
}
