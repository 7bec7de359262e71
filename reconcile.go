package reflow

// Pair is a correspondence between a node in the old snapshot and the node
// in the new snapshot that carries its identity forward.
type Pair struct {
	Old NodeID
	New NodeID
}

// Correspondence is the output of reconciling two snapshots: matched pairs,
// mounts (new nodes with no old counterpart), and unmounts (old nodes with
// no new counterpart). The three account for every node of both snapshots
// exactly once. External managers (cursor, scroll, focus, hover, drag) use
// the lookup maps to remap their node references across a rebuild.
type Correspondence struct {
	Pairs    []Pair
	Mounts   []NodeID // IDs in the new snapshot
	Unmounts []NodeID // IDs in the old snapshot

	oldToNew []NodeID
	newToOld []NodeID
}

// OldToNew maps an old-snapshot node to its new counterpart,
// or InvalidNode if it was unmounted.
func (c *Correspondence) OldToNew(id NodeID) NodeID {
	return c.oldToNew[id]
}

// NewToOld maps a new-snapshot node to its old counterpart,
// or InvalidNode if it was mounted.
func (c *Correspondence) NewToOld(id NodeID) NodeID {
	return c.newToOld[id]
}

// Reconcile matches nodes between two snapshots. Matching runs in tiers:
//
//  1. Explicit key: absolute match, position-independent. A key present in
//     only one snapshot, or already claimed, never degrades to a guess; the
//     node mounts instead.
//  2. Content hash, then structural hash (content minus text payload), both
//     restricted to candidates under the corresponding parent. The
//     structural tier lets an edited text node keep its identity.
//  3. Positional fallback: same index under the corresponding parent.
//     Possibly "wrong", but safe: downstream classification conservatively
//     flags divergence, so the worst case is extra work.
//
// New nodes are visited in preorder so a parent is always matched before
// its children, which is what lets tiers 2 and 3 anchor on the parent.
func Reconcile(old, new *Tree) *Correspondence {
	c := &Correspondence{
		oldToNew: make([]NodeID, old.Len()),
		newToOld: make([]NodeID, new.Len()),
	}
	for i := range c.oldToNew {
		c.oldToNew[i] = InvalidNode
	}
	for i := range c.newToOld {
		c.newToOld[i] = InvalidNode
	}

	// Index the old snapshot. Keyed nodes index by key; unkeyed nodes by
	// both hash tiers. Queues absorb duplicates: first claim wins.
	keyed := make(map[uint64][]NodeID)
	exact := make(map[uint64][]NodeID)
	structural := make(map[uint64][]NodeID)
	consumed := make([]bool, old.Len())

	old.Walk(func(id NodeID, d *NodeData) {
		if d.Key != 0 {
			keyed[d.Key] = append(keyed[d.Key], id)
			return
		}
		exact[matchHash(d, true)] = append(exact[matchHash(d, true)], id)
		structural[matchHash(d, false)] = append(structural[matchHash(d, false)], id)
	})

	claim := func(oldID, newID NodeID) {
		consumed[oldID] = true
		c.oldToNew[oldID] = newID
		c.newToOld[newID] = oldID
		c.Pairs = append(c.Pairs, Pair{Old: oldID, New: newID})
	}

	// sameParent reports whether the old candidate sits under the old node
	// corresponding to the new node's parent (or both are roots).
	sameParent := func(oldID, newID NodeID) bool {
		np := new.Parent(newID)
		op := old.Parent(oldID)
		if np == InvalidNode {
			return op == InvalidNode
		}
		matched := c.newToOld[np]
		return matched != InvalidNode && op == matched
	}

	popUnconsumed := func(queue []NodeID, newID NodeID, checkParent bool) (NodeID, bool) {
		for _, oldID := range queue {
			if consumed[oldID] {
				continue
			}
			if checkParent && !sameParent(oldID, newID) {
				continue
			}
			return oldID, true
		}
		return InvalidNode, false
	}

	// Tier 1 + 2: keys and hashes, in preorder.
	new.Walk(func(newID NodeID, d *NodeData) {
		if d.Key != 0 {
			if oldID, ok := popUnconsumed(keyed[d.Key], newID, false); ok {
				claim(oldID, newID)
			}
			return
		}
		if oldID, ok := popUnconsumed(exact[matchHash(d, true)], newID, true); ok {
			claim(oldID, newID)
			return
		}
		if oldID, ok := popUnconsumed(structural[matchHash(d, false)], newID, true); ok {
			claim(oldID, newID)
		}
	})

	// Tier 3: positional fallback for whatever is left. Keyed nodes on
	// either side are excluded; a failed key match means mount, never a
	// positional guess.
	new.Walk(func(newID NodeID, d *NodeData) {
		if c.newToOld[newID] != InvalidNode || d.Key != 0 {
			return
		}
		np := new.Parent(newID)
		if np == InvalidNode {
			// Both roots unmatched: they correspond by definition.
			oldRoot := old.Root()
			if !consumed[oldRoot] && old.Data(oldRoot).Key == 0 {
				claim(oldRoot, newID)
			}
			return
		}
		oldParent := c.newToOld[np]
		if oldParent == InvalidNode {
			return
		}
		idx := indexOf(new.Children(np), newID)
		oldKids := old.Children(oldParent)
		if idx < 0 || idx >= len(oldKids) {
			return
		}
		cand := oldKids[idx]
		if !consumed[cand] && old.Data(cand).Key == 0 {
			claim(cand, newID)
		}
	})

	// Whatever is still unclaimed mounts or unmounts.
	for i := range c.newToOld {
		if c.newToOld[i] == InvalidNode {
			c.Mounts = append(c.Mounts, NodeID(i))
		}
	}
	for i, done := range consumed {
		if !done {
			c.Unmounts = append(c.Unmounts, NodeID(i))
		}
	}
	return c
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// childrenChanged reports whether a matched pair's child list diverged:
// different length, a child without a match, or matched children out of
// order. Any of these invalidates positional assumptions below the node.
func (c *Correspondence) childrenChanged(old, new *Tree, oldID, newID NodeID) bool {
	oldKids := old.Children(oldID)
	newKids := new.Children(newID)
	if len(oldKids) != len(newKids) {
		return true
	}
	for i, nk := range newKids {
		if c.newToOld[nk] != oldKids[i] {
			return true
		}
	}
	return false
}
