package engine

import "testing"

func TestSeededRandomizerDeterministic(t *testing.T) {
	a := NewRandomizer(4, 77)
	b := NewRandomizer(4, 77)

	for i := 0; i < 100; i++ {
		ka, kb := a.NextKind(), b.NextKind()
		if ka != kb {
			t.Fatalf("draw %d differs: %d vs %d", i, ka, kb)
		}
		if ka < 0 || ka >= 4 {
			t.Fatalf("draw %d out of range: %d", i, ka)
		}
	}
}

func TestSeededRandomizerCoversKinds(t *testing.T) {
	r := NewRandomizer(3, 1)
	seen := map[TileKind]bool{}
	for i := 0; i < 300; i++ {
		seen[r.NextKind()] = true
	}
	if len(seen) != 3 {
		t.Errorf("saw %d kinds in 300 draws, want 3", len(seen))
	}
}

func TestSequenceRandomizerWraps(t *testing.T) {
	r := NewSequenceRandomizer(2, 0, 1)
	want := []TileKind{2, 0, 1, 2, 0}
	for i, k := range want {
		if got := r.NextKind(); got != k {
			t.Errorf("draw %d = %d, want %d", i, got, k)
		}
	}

	if got := NewSequenceRandomizer().NextKind(); got != 0 {
		t.Errorf("empty sequence yielded %d, want 0", got)
	}
}
