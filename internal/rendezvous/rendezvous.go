package rendezvous

import "slices"

// Selector maps keys to nodes using highest random weight hashing.
//
// A Selector does no locking. Mutating calls (AddNode, RemoveNode) need
// exclusive access; read-only calls may run concurrently with each other
// as long as no mutation is in flight. Slices and values returned by the
// pick methods must not be retained across a mutating call if the caller
// relies on them reflecting current membership.
type Selector[N comparable] struct {
	nodes []N
	build HashBuilder
}

// New returns an empty Selector with a randomly keyed SipHash builder.
func New[N comparable]() *Selector[N] {
	return FromNodesWithHasher[N](NewSipHash())
}

// FromNodes returns a Selector holding nodes, with a randomly keyed
// SipHash builder. Duplicate nodes are collapsed.
func FromNodes[N comparable](nodes ...N) *Selector[N] {
	return FromNodesWithHasher(NewSipHash(), nodes...)
}

// FromNodesWithHasher returns a Selector holding nodes that scores with
// build. A nil build falls back to NewSipHash.
func FromNodesWithHasher[N comparable](build HashBuilder, nodes ...N) *Selector[N] {
	if build == nil {
		build = NewSipHash()
	}
	s := &Selector[N]{
		nodes: make([]N, 0, len(nodes)),
		build: build,
	}
	for _, n := range nodes {
		s.AddNode(n)
	}
	return s
}

// AddNode inserts node unless an equal node is already present.
// It reports whether the node was inserted.
func (s *Selector[N]) AddNode(node N) bool {
	if s.Contains(node) {
		return false
	}
	s.nodes = append(s.nodes, node)
	return true
}

// RemoveNode removes node, moving the last node into its slot.
// It reports whether the node was present.
func (s *Selector[N]) RemoveNode(node N) bool {
	i := slices.Index(s.nodes, node)
	if i < 0 {
		return false
	}
	last := len(s.nodes) - 1
	s.nodes[i] = s.nodes[last]
	var zero N
	s.nodes[last] = zero
	s.nodes = s.nodes[:last]
	return true
}

// Contains reports whether node is a member.
func (s *Selector[N]) Contains(node N) bool {
	return slices.Contains(s.nodes, node)
}

// Len returns the number of nodes.
func (s *Selector[N]) Len() int {
	return len(s.nodes)
}

// IsEmpty reports whether the selector has no nodes.
func (s *Selector[N]) IsEmpty() bool {
	return len(s.nodes) == 0
}

// Nodes returns a copy of the member nodes in storage order.
func (s *Selector[N]) Nodes() []N {
	return slices.Clone(s.nodes)
}

// Clone returns an independent Selector with the same nodes and the same
// hash builder, so both map every key identically until one is mutated.
func (s *Selector[N]) Clone() *Selector[N] {
	return &Selector[N]{
		nodes: slices.Clone(s.nodes),
		build: s.build,
	}
}

// Score returns the weight of node for key: the key and then the node are
// fed into a fresh accumulator from the selector's builder.
func (s *Selector[N]) Score(key any, node N) uint64 {
	h := s.build.Build()
	writeValue(h, key)
	writeValue(h, node)
	return h.Sum64()
}

// PickTop returns the node with the highest score for key.
// If several nodes share the highest score, the one stored last wins.
// It returns false when the selector is empty.
func (s *Selector[N]) PickTop(key any) (N, bool) {
	var (
		best      N
		bestScore uint64
		found     bool
	)
	for _, n := range s.nodes {
		if sc := s.Score(key, n); !found || sc >= bestScore {
			best, bestScore, found = n, sc, true
		}
	}
	return best, found
}

// PickTopK returns up to k nodes ordered by descending score for key.
// Equal scores are ordered with the later stored node first, the same rule
// PickTop uses, so PickTopK(key, 1) always agrees with PickTop(key).
// k is clamped to Len; k <= 0 yields an empty slice.
func (s *Selector[N]) PickTopK(key any, k int) []N {
	if k <= 0 || len(s.nodes) == 0 {
		return []N{}
	}
	k = min(k, len(s.nodes))

	scores := make([]scored, len(s.nodes))
	for i, n := range s.nodes {
		scores[i] = scored{score: s.Score(key, n), idx: i}
	}

	if k < len(scores) {
		selectTop(scores, k)
	}
	top := scores[:k]
	slices.SortFunc(top, compareScored)

	res := make([]N, k)
	for i, sc := range top {
		res[i] = s.nodes[sc.idx]
	}
	return res
}
