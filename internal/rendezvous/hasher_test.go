package rendezvous

import (
	"hash/maphash"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashBuilders_Reproducible(t *testing.T) {
	seed := maphash.MakeSeed()
	tests := []struct {
		name  string
		build func() HashBuilder
	}{
		{name: "siphash", build: func() HashBuilder { return SipHash(1, 2) }},
		{name: "xxhash", build: func() HashBuilder { return XXHash(42) }},
		{name: "murmur3", build: func() HashBuilder { return Murmur3(42) }},
		{name: "maphash", build: func() HashBuilder { return MapHash(seed) }},
		{name: "fnv", build: FNV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromNodesWithHasher(tt.build(), "node")
			b := FromNodesWithHasher(tt.build(), "node")
			assert.Equal(t, a.Score("key", "node"), b.Score("key", "node"))
			assert.Equal(t, a.Score("key", "node"), a.Score("key", "node"))
			assert.NotEqual(t, a.Score("key", "node"), a.Score("other", "node"))
		})
	}
}

func TestHashBuilders_SeedChangesScores(t *testing.T) {
	pairs := map[string][2]HashBuilder{
		"siphash": {SipHash(1, 2), SipHash(3, 4)},
		"xxhash":  {XXHash(1), XXHash(2)},
		"murmur3": {Murmur3(1), Murmur3(2)},
		"random":  {NewSipHash(), NewSipHash()},
		"maphash": {NewMapHash(), NewMapHash()},
	}
	for name, p := range pairs {
		t.Run(name, func(t *testing.T) {
			a := FromNodesWithHasher(p[0], "node")
			b := FromNodesWithHasher(p[1], "node")
			assert.NotEqual(t, a.Score("key", "node"), b.Score("key", "node"))
		})
	}
}

func TestScore_KeyThenNode(t *testing.T) {
	s := FromNodesWithHasher(SipHash(9, 9), "ab", "b")

	// Length prefixes keep "a"+"bb" apart from "ab"+"b".
	assert.NotEqual(t, s.Score("a", "bb"), s.Score("ab", "b"))
	// Swapping key and node changes the score.
	assert.NotEqual(t, s.Score("x", "y"), s.Score("y", "x"))
}

func TestWriteValue_IntWidthsAgree(t *testing.T) {
	s := New[string]()
	assert.Equal(t, s.Score(int(5), "n"), s.Score(int64(5), "n"))
	assert.Equal(t, s.Score(uint8(5), "n"), s.Score(uint64(5), "n"))
	assert.Equal(t, s.Score([]byte("k"), "n"), s.Score("k", "n"))
	assert.NotEqual(t, s.Score(true, "n"), s.Score(false, "n"))
}
