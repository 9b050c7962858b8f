package rendezvous

import (
	"crypto/rand"
	"encoding/binary"
	"hash"
	"hash/fnv"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
)

// HashBuilder produces fresh 64-bit hash accumulators.
// Every accumulator returned by one builder is seeded identically, so the
// same input always hashes to the same value for the builder's lifetime.
type HashBuilder interface {
	Build() hash.Hash64
}

// HashBuilderFunc adapts a plain constructor to a HashBuilder.
type HashBuilderFunc func() hash.Hash64

// Build calls f.
func (f HashBuilderFunc) Build() hash.Hash64 {
	return f()
}

// sipHashBuilder is keyed SipHash-2-4.
type sipHashBuilder struct {
	key [16]byte
}

// NewSipHash returns a SipHash builder keyed from crypto/rand.
// Two builders created this way map keys to nodes differently.
func NewSipHash() HashBuilder {
	var b sipHashBuilder
	if _, err := rand.Read(b.key[:]); err != nil {
		panic("rendezvous: reading random seed: " + err.Error())
	}
	return b
}

// SipHash returns a SipHash builder with a fixed 128-bit key.
func SipHash(k0, k1 uint64) HashBuilder {
	var b sipHashBuilder
	binary.LittleEndian.PutUint64(b.key[:8], k0)
	binary.LittleEndian.PutUint64(b.key[8:], k1)
	return b
}

func (b sipHashBuilder) Build() hash.Hash64 {
	return siphash.New(b.key[:])
}

type xxHashBuilder uint64

// XXHash returns an xxHash64 builder using seed.
func XXHash(seed uint64) HashBuilder {
	return xxHashBuilder(seed)
}

func (b xxHashBuilder) Build() hash.Hash64 {
	return xxhash.NewWithSeed(uint64(b))
}

type murmur3Builder uint32

// Murmur3 returns a 64-bit MurmurHash3 builder using seed.
func Murmur3(seed uint32) HashBuilder {
	return murmur3Builder(seed)
}

func (b murmur3Builder) Build() hash.Hash64 {
	return murmur3.New64WithSeed(uint32(b))
}

type mapHashBuilder struct {
	seed maphash.Seed
}

// MapHash returns a builder backed by hash/maphash with the given seed.
// maphash output is only stable within a single process.
func MapHash(seed maphash.Seed) HashBuilder {
	return mapHashBuilder{seed: seed}
}

// NewMapHash returns a maphash builder with a fresh random seed.
func NewMapHash() HashBuilder {
	return MapHash(maphash.MakeSeed())
}

func (b mapHashBuilder) Build() hash.Hash64 {
	h := new(maphash.Hash)
	h.SetSeed(b.seed)
	return h
}

// FNV returns an unseeded FNV-1a 64-bit builder.
func FNV() HashBuilder {
	return HashBuilderFunc(fnv.New64a)
}
