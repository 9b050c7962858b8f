package placement

// Move records a key whose responsible node changed.
// From or To is empty when the corresponding placement had no nodes.
type Move struct {
	Key  string
	From string
	To   string
}

// Diff returns the keys whose responsible node differs between before and
// after, in the order of keys. Both placements should share a hash builder
// (see Clone), otherwise nearly every key moves.
func Diff(before, after *Placement, keys []string) []Move {
	var moves []Move
	for _, key := range keys {
		from, _ := before.ResponsibleNode(key)
		to, _ := after.ResponsibleNode(key)
		if from.ID != to.ID {
			moves = append(moves, Move{Key: key, From: from.ID, To: to.ID})
		}
	}
	return moves
}
