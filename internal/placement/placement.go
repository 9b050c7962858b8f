package placement

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"hrw/internal/rendezvous"
)

// Node represents a physical node in the cluster.
type Node struct {
	ID   string
	Addr string
}

// Placement maps keys to cluster nodes with rendezvous hashing.
// It is safe for concurrent use: membership changes take the write lock,
// lookups share the read lock.
type Placement struct {
	mu    sync.RWMutex
	build rendezvous.HashBuilder
	sel   *rendezvous.Selector[string]
	nodes map[string]Node // nodeID -> Node
	log   *logrus.Entry
}

// Option configures a Placement.
type Option func(*Placement)

// WithLogger sets the entry membership changes are logged to.
func WithLogger(entry *logrus.Entry) Option {
	return func(p *Placement) {
		p.log = entry
	}
}

// New creates an empty placement scoring with build.
// A nil build uses a randomly keyed SipHash builder.
func New(build rendezvous.HashBuilder, opts ...Option) *Placement {
	if build == nil {
		build = rendezvous.NewSipHash()
	}
	p := &Placement{
		build: build,
		sel:   rendezvous.FromNodesWithHasher[string](build),
		nodes: make(map[string]Node),
		log:   logrus.WithField("component", "placement"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetNodes replaces the membership with nodes.
// Later entries win when IDs repeat.
func (p *Placement) SetNodes(nodes []Node) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sel = rendezvous.FromNodesWithHasher[string](p.build)
	p.nodes = make(map[string]Node, len(nodes))
	for _, node := range nodes {
		p.nodes[node.ID] = node
		p.sel.AddNode(node.ID)
	}

	p.log.WithField("nodes", len(p.nodes)).Info("membership replaced")
}

// AddNode adds a node. If the ID is already known its address is
// refreshed and AddNode returns false.
func (p *Placement) AddNode(node Node) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, exists := p.nodes[node.ID]; exists {
		if old.Addr != node.Addr {
			p.log.WithFields(logrus.Fields{
				"node_id":  node.ID,
				"old_addr": old.Addr,
				"addr":     node.Addr,
			}).Info("node address updated")
		}
		p.nodes[node.ID] = node
		return false
	}

	p.nodes[node.ID] = node
	p.sel.AddNode(node.ID)
	p.log.WithFields(logrus.Fields{
		"node_id": node.ID,
		"addr":    node.Addr,
		"nodes":   len(p.nodes),
	}).Info("node added")
	return true
}

// RemoveNode removes the node with nodeID and reports whether it existed.
func (p *Placement) RemoveNode(nodeID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.nodes[nodeID]; !exists {
		return false
	}

	delete(p.nodes, nodeID)
	p.sel.RemoveNode(nodeID)
	p.log.WithFields(logrus.Fields{
		"node_id": nodeID,
		"nodes":   len(p.nodes),
	}).Info("node removed")
	return true
}

// ResponsibleNode returns the node responsible for the given key.
// Returns (Node, true) if found, (Node{}, false) if there are no nodes.
func (p *Placement) ResponsibleNode(key string) (Node, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	id, ok := p.sel.PickTop(key)
	if !ok {
		return Node{}, false
	}
	return p.nodes[id], true
}

// PreferenceList returns the first k nodes in the preference list for the
// key, highest weight first. The first entry is the responsible node.
func (p *Placement) PreferenceList(key string, k int) []Node {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.sel.PickTopK(key, k)
	result := make([]Node, len(ids))
	for i, id := range ids {
		result[i] = p.nodes[id]
	}
	return result
}

// GetNodes returns all nodes sorted by ID.
func (p *Placement) GetNodes() []Node {
	p.mu.RLock()
	defer p.mu.RUnlock()

	nodes := make([]Node, 0, len(p.nodes))
	for _, node := range p.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// Len returns the number of nodes.
func (p *Placement) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.nodes)
}

// Clone returns an independent copy that maps keys identically.
func (p *Placement) Clone() *Placement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	nodes := make(map[string]Node, len(p.nodes))
	for id, node := range p.nodes {
		nodes[id] = node
	}
	return &Placement{
		build: p.build,
		sel:   p.sel.Clone(),
		nodes: nodes,
		log:   p.log,
	}
}
