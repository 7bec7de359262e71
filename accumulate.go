package reflow

import "github.com/google/uuid"

// Report is the accumulated change information for one node within a
// transaction: which categories changed, the maximum relayout scope across
// the changed properties, the individual properties (for fine-grained cache
// invalidation downstream), and the text delta when the payload changed.
type Report struct {
	Changes ChangeSet
	Scope   Scope
	Props   []Property
	Text    *TextDelta
}

// NeedsLayout reports whether this node owes layout work.
func (r *Report) NeedsLayout() bool {
	return r.Scope > ScopeNone
}

// NeedsPaint reports whether this node owes at least a repaint.
func (r *Report) NeedsPaint() bool {
	return r.Changes.Visual()
}

// merge folds another report into this one: union of categories, max of
// scopes. Associative and commutative, so partial reports from parallel
// shards can be combined in any order.
func (r *Report) merge(other Report) {
	r.Changes |= other.Changes
	r.Scope = maxScope(r.Scope, other.Scope)
	r.Props = append(r.Props, other.Props...)
	if other.Text != nil {
		r.Text = other.Text
	}
}

// Accumulator is the transaction-scoped change ledger. All three producers
// feed it — full-tree reconciliation, interaction-state restyle, and direct
// runtime edits — before propagation consumes it. Feeding the ledger
// completely before propagating is what keeps the early-exit walk sound:
// a partially-fed ledger could short-circuit an ancestor against stale
// information.
type Accumulator struct {
	// ID identifies the transaction in logs and results.
	ID uuid.UUID
	// Nodes maps node → accumulated report. Keyed by new-snapshot IDs for
	// rebuild transactions, committed-tree IDs otherwise.
	Nodes map[NodeID]*Report
	// MaxScope is the running maximum severity across all nodes; if it is
	// ScopeNone the layout pass can be skipped outright.
	MaxScope Scope
	// Mounts are new nodes with no old counterpart: unconditionally fully dirty.
	Mounts []NodeID
	// Unmounts are old nodes with no new counterpart: excluded from
	// propagation, handed to external managers for cleanup.
	Unmounts []NodeID
}

// NewAccumulator creates an empty ledger with a fresh transaction ID.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		ID:    uuid.New(),
		Nodes: make(map[NodeID]*Report),
	}
}

func (a *Accumulator) report(id NodeID) *Report {
	r, ok := a.Nodes[id]
	if !ok {
		r = &Report{}
		a.Nodes[id] = r
	}
	return r
}

// Add merges a report for a node: union of change sets, max of scopes.
func (a *Accumulator) Add(id NodeID, r Report) {
	if r.Changes.Empty() && r.Scope == ScopeNone {
		return
	}
	a.report(id).merge(r)
	a.MaxScope = maxScope(a.MaxScope, r.Scope)
}

// AddTextChange records a text payload edit with its old/new pair.
func (a *Accumulator) AddTextChange(id NodeID, oldText, newText string) {
	a.Add(id, Report{
		Changes: ChangeText,
		Scope:   ScopeReshape,
		Text:    &TextDelta{Old: oldText, New: newText},
	})
}

// AddStyleChange records a changed style property, classified through the
// severity table. Restyle and runtime-edit producers feed this directly.
func (a *Accumulator) AddStyleChange(id NodeID, prop Property) {
	scope := ScopeOf(prop)
	cat := ChangeStylePaint
	if scope > ScopeNone {
		cat = ChangeStyleLayout
	}
	a.Add(id, Report{
		Changes: cat,
		Scope:   scope,
		Props:   []Property{prop},
	})
}

// AddResourceChange records a swapped embedded resource. Whether it owes
// layout depends on a runtime comparison of natural sizes, not on any
// property identifier: same size is paint-only, a size change resizes.
func (a *Accumulator) AddResourceChange(id NodeID, resized bool) {
	scope := ScopeNone
	if resized {
		scope = ScopeResize
	}
	a.Add(id, Report{Changes: ChangeResource, Scope: scope})
}

// AddMount records a newly mounted node.
func (a *Accumulator) AddMount(id NodeID) {
	a.Mounts = append(a.Mounts, id)
	a.MaxScope = ScopeFull
}

// AddUnmount records an unmounted node.
func (a *Accumulator) AddUnmount(id NodeID) {
	a.Unmounts = append(a.Unmounts, id)
}

// Merge folds another ledger into this one with the same union/max rule.
// Mount and unmount lists concatenate. Safe for combining partial results
// produced by parallel shards; only the final merge needs to be serial.
func (a *Accumulator) Merge(other *Accumulator) {
	for id, r := range other.Nodes {
		a.report(id).merge(*r)
	}
	a.MaxScope = maxScope(a.MaxScope, other.MaxScope)
	a.Mounts = append(a.Mounts, other.Mounts...)
	a.Unmounts = append(a.Unmounts, other.Unmounts...)
}

// Empty reports whether nothing changed at all.
func (a *Accumulator) Empty() bool {
	return len(a.Nodes) == 0 && len(a.Mounts) == 0 && len(a.Unmounts) == 0
}

// NeedsLayout reports whether any node owes layout work.
func (a *Accumulator) NeedsLayout() bool {
	return a.MaxScope > ScopeNone || len(a.Mounts) > 0
}

// NeedsPaintOnly reports whether the transaction owes repaints but no layout.
func (a *Accumulator) NeedsPaintOnly() bool {
	if a.NeedsLayout() {
		return false
	}
	for _, r := range a.Nodes {
		if r.NeedsPaint() {
			return true
		}
	}
	return false
}

// VisuallyUnchanged reports whether only behavior/metadata changed:
// no layout, no paint, nothing mounted or unmounted.
func (a *Accumulator) VisuallyUnchanged() bool {
	if len(a.Mounts) > 0 || len(a.Unmounts) > 0 || a.MaxScope > ScopeNone {
		return false
	}
	for _, r := range a.Nodes {
		if r.NeedsPaint() {
			return false
		}
	}
	return true
}
