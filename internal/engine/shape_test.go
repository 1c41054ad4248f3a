package engine

import (
	"testing"

	"github.com/vovakirdan/shapefall/internal/core"
)

type positions map[TileID]core.Coord

func (p positions) Position(id TileID) core.Coord {
	return p[id]
}

func TestShapeAddContainsRemove(t *testing.T) {
	s := NewShape(2)
	s.Add(1)
	s.Add(4)
	s.Add(1) // duplicate is ignored

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains(4) || s.Contains(7) {
		t.Error("Contains reports wrong membership")
	}
	if s.Kind() != 2 {
		t.Errorf("Kind() = %d, want 2", s.Kind())
	}

	if empty := s.Remove(1); empty {
		t.Error("Remove(1) reported empty with one member left")
	}
	if empty := s.Remove(99); empty {
		t.Error("removing a non-member should not empty the shape")
	}
	if empty := s.Remove(4); !empty {
		t.Error("Remove(4) should report the shape empty")
	}
}

func TestShapeMergeInto(t *testing.T) {
	a := NewShape(0)
	a.Add(1)
	a.Add(2)
	b := NewShape(0)
	b.Add(3)

	a.MergeInto(b)

	if a.Len() != 0 {
		t.Errorf("source Len() = %d after merge, want 0", a.Len())
	}
	if b.Len() != 3 {
		t.Errorf("target Len() = %d after merge, want 3", b.Len())
	}
	for _, id := range []TileID{1, 2, 3} {
		if !b.Contains(id) {
			t.Errorf("target missing tile %d", id)
		}
	}

	// Merging into itself keeps the members.
	b.MergeInto(b)
	if b.Len() != 3 {
		t.Errorf("self merge changed Len() to %d", b.Len())
	}
}

func TestShapeCoordinatesSorted(t *testing.T) {
	s := NewShape(1)
	pos := positions{
		10: core.C(2, 1),
		11: core.C(0, 0),
		12: core.C(1, 1),
		13: core.C(3, 0),
	}
	for id := range pos {
		s.Add(id)
	}

	got := s.Coordinates(pos)
	want := []core.Coord{core.C(0, 0), core.C(3, 0), core.C(1, 1), core.C(2, 1)}
	if len(got) != len(want) {
		t.Fatalf("Coordinates() returned %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Coordinates()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShapeMembersIsCopy(t *testing.T) {
	s := NewShape(0)
	s.Add(5)
	m := s.Members()
	m[0] = 9
	if !s.Contains(5) || s.Contains(9) {
		t.Error("Members() must not alias the shape's storage")
	}
}

func TestShapeRemoveKeepsIndex(t *testing.T) {
	s := NewShape(0)
	for id := TileID(0); id < 5; id++ {
		s.Add(id)
	}

	s.Remove(1)
	s.Remove(0)
	s.Add(1)

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	for _, id := range []TileID{1, 2, 3, 4} {
		if !s.Contains(id) {
			t.Errorf("Contains(%d) = false after removals", id)
		}
	}
	if s.Contains(0) {
		t.Error("Contains(0) = true after Remove(0)")
	}
	for _, id := range []TileID{4, 3, 2} {
		s.Remove(id)
	}
	if empty := s.Remove(1); !empty {
		t.Errorf("Remove(1) left %d members", s.Len())
	}
}

func TestShapeMergeIntoLarge(t *testing.T) {
	const n = 20000
	a, b := NewShape(0), NewShape(0)
	for id := TileID(0); id < n; id++ {
		if id%2 == 0 {
			a.Add(id)
		} else {
			b.Add(id)
		}
	}

	a.MergeInto(b)

	if b.Len() != n || a.Len() != 0 {
		t.Fatalf("after merge Len() = %d/%d, want %d/0", b.Len(), a.Len(), n)
	}
	if a.Contains(0) {
		t.Error("source still reports a merged member")
	}
	// Removing from the target must find merged members through the index.
	for id := TileID(0); id < n; id += 2 {
		b.Remove(id)
	}
	if b.Len() != n/2 {
		t.Errorf("Len() = %d after removing merged members, want %d", b.Len(), n/2)
	}
}
