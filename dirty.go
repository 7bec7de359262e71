package reflow

// DirtyFlag is the per-node marker of minimum recomputation owed, persisted
// on the engine's committed state between accumulation and consumption.
// Within one transaction a node's flag only ever increases; the reset to
// DirtyClean happens exactly once, when the layout pass consumes the result.
type DirtyFlag uint8

const (
	// DirtyClean means the node owes nothing.
	DirtyClean DirtyFlag = iota
	// DirtyPaintOnly means the node owes a repaint but its geometry is valid.
	DirtyPaintOnly
	// DirtyLayout means the node's geometry is invalid. The carried Scope
	// sub-kind says how much of it: reshape, resize, or the full subtree.
	DirtyLayout
)

// String returns the flag name for logs and test output.
func (f DirtyFlag) String() string {
	switch f {
	case DirtyClean:
		return "clean"
	case DirtyPaintOnly:
		return "paint-only"
	case DirtyLayout:
		return "layout"
	}
	return "invalid"
}

// dirtiness is the internal mark: the 3-state flag and its layout sub-kind
// folded into one ordered value, so the propagation walk is a single
// compare-and-assign. Because the sub-kinds are themselves ordered, the
// fold preserves monotonicity: upgrading reshape → resize → full is the
// same operation as upgrading clean → paint → layout.
type dirtiness uint8

const (
	dirtClean dirtiness = iota
	dirtPaint
	dirtReshape
	dirtResize
	dirtFull
)

// Flag projects the mark onto the public 3-state flag.
func (d dirtiness) Flag() DirtyFlag {
	switch d {
	case dirtClean:
		return DirtyClean
	case dirtPaint:
		return DirtyPaintOnly
	default:
		return DirtyLayout
	}
}

// Kind projects the mark onto its layout sub-kind. Only meaningful for
// marks at dirtReshape and above.
func (d dirtiness) Kind() Scope {
	switch d {
	case dirtReshape:
		return ScopeReshape
	case dirtResize:
		return ScopeResize
	case dirtFull:
		return ScopeFull
	default:
		return ScopeNone
	}
}

// dirtinessFor maps a node's accumulated report to its mark. Scope governs:
// any layout scope marks layout with that sub-kind; a scope of none with a
// visually-affecting change marks paint-only; behavior/metadata-only
// reports carry zero visual effect and mark nothing at all.
func dirtinessFor(r *Report) dirtiness {
	switch r.Scope {
	case ScopeFull:
		return dirtFull
	case ScopeResize:
		return dirtResize
	case ScopeReshape:
		return dirtReshape
	}
	if r.NeedsPaint() {
		return dirtPaint
	}
	return dirtClean
}

// markUp walks from a node to the root, upgrading each ancestor's mark to
// the propagated value. It stops as soon as an ancestor already holds an
// equal-or-higher mark: if that ancestor is sufficiently dirty, so is
// everything above it, because marks only ever arrive via this walk.
// The early exit is only sound once all change reports for the transaction
// have been accumulated.
func markUp(parent []NodeID, marks []dirtiness, start NodeID, d dirtiness) {
	if d == dirtClean {
		return
	}
	for id := start; id != InvalidNode; id = parent[id] {
		if marks[id] >= d {
			break
		}
		marks[id] = d
	}
}

// markSubtree floods a node and all its descendants with at least the given
// mark. Used for structural changes and mounts, where positional
// assumptions below the node are no longer safe. Iterative: deep trees must
// not recurse.
func markSubtree(children [][]NodeID, marks []dirtiness, start NodeID, d dirtiness) {
	if d == dirtClean {
		return
	}
	stack := []NodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if marks[id] < d {
			marks[id] = d
		}
		stack = append(stack, children[id]...)
	}
}

// propagate turns a fully-fed ledger into persisted marks on the tree the
// ledger's node IDs address. Unmounted nodes are not in the ledger's node
// map and never walk; mounts flood their subtrees as fully dirty.
func propagate(tree *Tree, marks []dirtiness, acc *Accumulator) {
	for id, rep := range acc.Nodes {
		d := dirtinessFor(rep)
		markUp(tree.parent, marks, id, d)
		// Structural damage invalidates the whole subtree, not just the node.
		if d == dirtFull && rep.Changes.Intersects(ChangeChildren|ChangeKind) {
			markSubtree(tree.children, marks, id, dirtFull)
		}
	}
	for _, id := range acc.Mounts {
		markUp(tree.parent, marks, id, dirtFull)
		markSubtree(tree.children, marks, id, dirtFull)
	}
}
