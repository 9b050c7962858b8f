package replication

import (
	"hrw/internal/placement"
)

// DefaultReplicationFactor is used when a non-positive factor is requested.
const DefaultReplicationFactor = 3

// GetReplicasForKey returns the N replicas responsible for a key
// using the placement's preference list. The first replica is the owner.
func GetReplicasForKey(p *placement.Placement, key string, replicationFactor int) []placement.Node {
	if replicationFactor <= 0 {
		replicationFactor = DefaultReplicationFactor
	}
	return p.PreferenceList(key, replicationFactor)
}

// Spread counts how many replicas each node holds across keys.
// Nodes holding nothing are reported with a zero count.
func Spread(p *placement.Placement, keys []string, replicationFactor int) map[string]int {
	counts := make(map[string]int)
	for _, node := range p.GetNodes() {
		counts[node.ID] = 0
	}
	for _, key := range keys {
		for _, node := range GetReplicasForKey(p, key, replicationFactor) {
			counts[node.ID]++
		}
	}
	return counts
}
