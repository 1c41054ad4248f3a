package engine

import "math/rand"

// Randomizer supplies the kind of each newly created tile.
type Randomizer interface {
	NextKind() TileKind
}

type seededRandomizer struct {
	rng   *rand.Rand
	kinds int
}

// NewRandomizer returns a uniform randomizer over kinds tile kinds.
// The same seed always yields the same sequence.
func NewRandomizer(kinds int, seed int64) Randomizer {
	if kinds < 1 {
		kinds = 1
	}
	return &seededRandomizer{
		rng:   rand.New(rand.NewSource(seed)),
		kinds: kinds,
	}
}

func (r *seededRandomizer) NextKind() TileKind {
	return TileKind(r.rng.Intn(r.kinds))
}

// SequenceRandomizer replays a fixed list of kinds, wrapping around at the
// end. An empty sequence always yields kind 0.
type SequenceRandomizer struct {
	Kinds []TileKind
	next  int
}

// NewSequenceRandomizer returns a randomizer that replays kinds in order.
func NewSequenceRandomizer(kinds ...TileKind) *SequenceRandomizer {
	return &SequenceRandomizer{Kinds: kinds}
}

func (s *SequenceRandomizer) NextKind() TileKind {
	if len(s.Kinds) == 0 {
		return 0
	}
	k := s.Kinds[s.next%len(s.Kinds)]
	s.next++
	return k
}
