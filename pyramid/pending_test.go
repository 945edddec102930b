package pyramid

import "testing"

func TestPendingRegistryAddHasRemove(t *testing.T) {
	p := newPendingRegistry()
	c := TileCoord{Z: 3, X: 1, Y: 1}

	if p.has(c) {
		t.Fatalf("new registry should not have %v", c)
	}
	p.add(c, nil)
	if !p.has(c) {
		t.Fatalf("expected %v to be pending after add", c)
	}
	if p.len() != 1 {
		t.Fatalf("len() = %d, want 1", p.len())
	}
	if !p.remove(c) {
		t.Fatalf("remove(%v) should report true the first time", c)
	}
	if p.remove(c) {
		t.Fatalf("remove(%v) should report false once already removed", c)
	}
	if p.has(c) {
		t.Fatalf("%v should no longer be pending after remove", c)
	}
}

func TestPendingRegistryDrainCancelsAll(t *testing.T) {
	p := newPendingRegistry()
	var canceled []TileCoord
	a := TileCoord{Z: 1, X: 0, Y: 0}
	b := TileCoord{Z: 2, X: 1, Y: 1}

	p.add(a, func() { canceled = append(canceled, a) })
	p.add(b, func() { canceled = append(canceled, b) })

	drained := p.drain()
	if len(drained) != 2 {
		t.Fatalf("drain() returned %d coords, want 2", len(drained))
	}
	if len(canceled) != 2 {
		t.Fatalf("expected both cancel funcs invoked, got %d calls", len(canceled))
	}
	if p.len() != 0 {
		t.Fatalf("registry should be empty after drain, len = %d", p.len())
	}
}

func TestPendingRegistryDrainToleratesNilCancel(t *testing.T) {
	p := newPendingRegistry()
	c := TileCoord{Z: 4, X: 2, Y: 2}
	p.add(c, nil)
	drained := p.drain() // must not panic on a nil cancel func
	if len(drained) != 1 || drained[0] != c {
		t.Fatalf("drain() = %v, want [%v]", drained, c)
	}
}
