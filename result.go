package reflow

import (
	"slices"

	"github.com/google/uuid"
)

// Result is the transaction's handoff to the layout and paint pipelines:
// three disjoint work sets, the correspondence data for external state
// managers, and per-node flag queries. The three sets are minimal in the
// sense that work subsumed by a full-subtree root is not repeated: a node
// inside a full-relayout subtree gets relaid out and repainted by way of
// its root and appears in no set of its own.
type Result struct {
	// Transaction is the ledger's ID, for correlating logs.
	Transaction uuid.UUID

	// Correspondence is the old↔new node mapping for rebuild transactions;
	// nil for restyle/edit-only transactions, where IDs are stable anyway.
	Correspondence *Correspondence

	// Mounts and Unmounts are the lifecycle lists. Unmounted nodes trigger
	// external cleanup (scroll/focus/cursor managers drop their references).
	Mounts   []NodeID
	Unmounts []NodeID

	// ResizeNodes owe an intrinsic-size recomputation or a local reshape;
	// the per-node sub-kind (Kind) distinguishes the two.
	ResizeNodes []NodeID
	// LayoutRoots are the roots of subtrees owing a full relayout.
	LayoutRoots []NodeID
	// PaintNodes owe a repaint with valid geometry.
	PaintNodes []NodeID

	// TextChanges carries the literal old/new text pairs of edited nodes,
	// consumed externally for cursor/selection offset remapping.
	TextChanges map[NodeID]TextDelta

	// MaxScope is the transaction's global maximum severity.
	MaxScope Scope

	engine   *Engine
	marks    []dirtiness
	ledger   *Accumulator
	consumed bool
}

// Clean reports whether the layout pass can skip this transaction entirely:
// no layout work and no repaint work anywhere.
func (r *Result) Clean() bool {
	return len(r.ResizeNodes) == 0 && len(r.LayoutRoots) == 0 && len(r.PaintNodes) == 0
}

// PaintOnlyWork reports whether the transaction owes repaints but zero
// layout work, letting the pipeline skip straight to paint.
func (r *Result) PaintOnlyWork() bool {
	return len(r.ResizeNodes) == 0 && len(r.LayoutRoots) == 0 && len(r.PaintNodes) > 0
}

// Flag returns a node's post-propagation dirty flag.
func (r *Result) Flag(id NodeID) DirtyFlag {
	return r.marks[id].Flag()
}

// Kind returns a node's layout sub-kind; meaningful when Flag is DirtyLayout.
func (r *Result) Kind(id NodeID) Scope {
	return r.marks[id].Kind()
}

// Clear resets every dirty flag to clean. The layout pass calls it exactly
// once after consuming the result; further calls are no-ops. An unconsumed
// result that gets superseded is made inert by the engine, which carries
// its owed work into the replacing transaction; a late Clear on it must
// not touch the live flags.
func (r *Result) Clear() {
	if r.consumed {
		return
	}
	r.consumed = true
	for i := range r.marks {
		r.marks[i] = dirtClean
	}
	if r.engine != nil && r.engine.outstanding == r {
		r.engine.outstanding = nil
	}
}

// buildResult partitions the post-propagation state into the three work
// sets. Roots of full-relayout subtrees come from the ledger (the nodes
// whose own changes demanded full scope, plus mounts), minimized so that
// a full node under another full node is represented by its ancestor.
// The propagated ancestor marks stay behind for per-node Flag queries and
// the next transaction's early exits.
func buildResult(e *Engine, tree *Tree, marks []dirtiness, acc *Accumulator, corr *Correspondence) *Result {
	res := &Result{
		Transaction:    acc.ID,
		Correspondence: corr,
		Mounts:         acc.Mounts,
		Unmounts:       acc.Unmounts,
		MaxScope:       acc.MaxScope,
		engine:         e,
		marks:          marks,
		ledger:         acc,
	}

	full := make(map[NodeID]bool)
	for id, rep := range acc.Nodes {
		if rep.Scope == ScopeFull {
			full[id] = true
		}
	}
	for _, id := range acc.Mounts {
		full[id] = true
	}

	// coveredByFull reports whether a strict ancestor is itself a full node.
	coveredByFull := func(id NodeID) bool {
		for p := tree.parent[id]; p != InvalidNode; p = tree.parent[p] {
			if full[p] {
				return true
			}
		}
		return false
	}

	for id := range full {
		if !coveredByFull(id) {
			res.LayoutRoots = append(res.LayoutRoots, id)
		}
	}

	for id, rep := range acc.Nodes {
		if full[id] || coveredByFull(id) {
			continue
		}
		switch rep.Scope {
		case ScopeReshape, ScopeResize:
			res.ResizeNodes = append(res.ResizeNodes, id)
		case ScopeNone:
			if rep.NeedsPaint() {
				res.PaintNodes = append(res.PaintNodes, id)
			}
		}
	}

	// The ledger is a map; sort the sets so results are deterministic.
	slices.Sort(res.LayoutRoots)
	slices.Sort(res.ResizeNodes)
	slices.Sort(res.PaintNodes)

	for id, rep := range acc.Nodes {
		if rep.Text != nil {
			if res.TextChanges == nil {
				res.TextChanges = make(map[NodeID]TextDelta)
			}
			res.TextChanges[id] = *rep.Text
		}
	}

	return res
}
