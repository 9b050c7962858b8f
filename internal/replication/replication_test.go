package replication

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrw/internal/placement"
	"hrw/internal/rendezvous"
)

func newPlacement(t *testing.T, n int) *placement.Placement {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	p := placement.New(rendezvous.SipHash(100, 200), placement.WithLogger(logrus.NewEntry(l)))
	for i := 1; i <= n; i++ {
		p.AddNode(placement.Node{ID: fmt.Sprintf("n%d", i), Addr: fmt.Sprintf("127.0.0.1:%d", 50050+i)})
	}
	return p
}

func TestGetReplicasForKey(t *testing.T) {
	tests := []struct {
		name   string
		nodes  int
		factor int
		want   int
	}{
		{name: "default factor", nodes: 5, factor: 0, want: DefaultReplicationFactor},
		{name: "negative factor", nodes: 5, factor: -2, want: DefaultReplicationFactor},
		{name: "explicit factor", nodes: 5, factor: 2, want: 2},
		{name: "factor above cluster size", nodes: 2, factor: 3, want: 2},
		{name: "empty cluster", nodes: 0, factor: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlacement(t, tt.nodes)
			replicas := GetReplicasForKey(p, "user:42", tt.factor)
			require.Len(t, replicas, tt.want)

			seen := make(map[string]bool)
			for _, r := range replicas {
				assert.False(t, seen[r.ID], "duplicate replica %s", r.ID)
				seen[r.ID] = true
			}
			if tt.want > 0 {
				owner, _ := p.ResponsibleNode("user:42")
				assert.Equal(t, owner, replicas[0])
			}
		})
	}
}

func TestSpread(t *testing.T) {
	p := newPlacement(t, 4)
	keys := make([]string, 2000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	counts := Spread(p, keys, 2)
	require.Len(t, counts, 4)

	total := 0
	for id, c := range counts {
		total += c
		// 2000 keys * 2 replicas / 4 nodes = 1000 expected per node.
		assert.InDelta(t, 1000, c, 150, "node %s", id)
	}
	assert.Equal(t, 4000, total)
}
