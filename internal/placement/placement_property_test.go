package placement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrw/internal/rendezvous"
)

func sampleKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("user:%d", i)
	}
	return keys
}

// TestPlacement_Property_AddMovesOnlyToNewNode tests that growing the
// cluster moves keys exclusively onto the new node.
func TestPlacement_Property_AddMovesOnlyToNewNode(t *testing.T) {
	before := New(rendezvous.SipHash(21, 22), quietLogger())
	before.SetNodes([]Node{
		{ID: "n1", Addr: "127.0.0.1:50051"},
		{ID: "n2", Addr: "127.0.0.1:50052"},
		{ID: "n3", Addr: "127.0.0.1:50053"},
		{ID: "n4", Addr: "127.0.0.1:50054"},
	})
	after := before.Clone()
	require.True(t, after.AddNode(Node{ID: "n5", Addr: "127.0.0.1:50055"}))
	assert.Equal(t, 4, before.Len())

	moves := Diff(before, after, sampleKeys(1000))
	assert.True(t, len(moves) >= 100 && len(moves) <= 300, "moved %d", len(moves))
	for _, m := range moves {
		assert.Equal(t, "n5", m.To, "key %s", m.Key)
	}
}

// TestPlacement_Property_RemoveMovesOnlyOwnedKeys tests that shrinking the
// cluster only reassigns keys owned by the removed node.
func TestPlacement_Property_RemoveMovesOnlyOwnedKeys(t *testing.T) {
	before := New(rendezvous.SipHash(31, 32), quietLogger())
	before.SetNodes([]Node{
		{ID: "n1", Addr: "127.0.0.1:50051"},
		{ID: "n2", Addr: "127.0.0.1:50052"},
		{ID: "n3", Addr: "127.0.0.1:50053"},
		{ID: "n4", Addr: "127.0.0.1:50054"},
		{ID: "n5", Addr: "127.0.0.1:50055"},
	})
	after := before.Clone()
	require.True(t, after.RemoveNode("n3"))

	keys := sampleKeys(1000)
	owned := 0
	for _, key := range keys {
		if n, _ := before.ResponsibleNode(key); n.ID == "n3" {
			owned++
		}
	}

	moves := Diff(before, after, keys)
	assert.Len(t, moves, owned)
	for _, m := range moves {
		assert.Equal(t, "n3", m.From, "key %s", m.Key)
		assert.NotEqual(t, "n3", m.To)
	}
}

// TestPlacement_Property_SecondReplicaTakesOver tests that when the
// responsible node leaves, the key moves to its second preference.
func TestPlacement_Property_SecondReplicaTakesOver(t *testing.T) {
	p := New(rendezvous.XXHash(5), quietLogger())
	p.SetNodes([]Node{
		{ID: "n1", Addr: "127.0.0.1:50051"},
		{ID: "n2", Addr: "127.0.0.1:50052"},
		{ID: "n3", Addr: "127.0.0.1:50053"},
	})

	for _, key := range sampleKeys(50) {
		pref := p.PreferenceList(key, 2)
		q := p.Clone()
		q.RemoveNode(pref[0].ID)
		owner, ok := q.ResponsibleNode(key)
		require.True(t, ok)
		assert.Equal(t, pref[1].ID, owner.ID, "key %s", key)
	}
}

// TestPlacement_Property_ConsistentAfterRebuild tests that rebuilding with the
// same nodes in another order keeps the mapping.
func TestPlacement_Property_ConsistentAfterRebuild(t *testing.T) {
	nodes := threeNodes()
	p := New(rendezvous.Murmur3(9), quietLogger())
	p.SetNodes(nodes)

	owners := make(map[string]string)
	for _, key := range sampleKeys(100) {
		owner, _ := p.ResponsibleNode(key)
		owners[key] = owner.ID
	}

	p.SetNodes([]Node{nodes[2], nodes[0], nodes[1]})
	for _, key := range sampleKeys(100) {
		owner, _ := p.ResponsibleNode(key)
		assert.Equal(t, owners[key], owner.ID, "key %s", key)
	}
}

func TestDiff_EmptyPlacement(t *testing.T) {
	empty := New(nil, quietLogger())
	full := New(nil, quietLogger())
	full.AddNode(Node{ID: "n1", Addr: "127.0.0.1:50051"})

	moves := Diff(empty, full, []string{"a", "b"})
	require.Len(t, moves, 2)
	assert.Equal(t, Move{Key: "a", From: "", To: "n1"}, moves[0])
}
