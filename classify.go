package reflow

import "maps"

// Classify compares two matched nodes field by field and reports what
// changed. The result is empty iff every compared field is identical.
func Classify(old, new *NodeData) Report {
	return classifyPair(old, new, ComputeFingerprint(old).Diff(ComputeFingerprint(new)))
}

// classifyPair is the exact field classifier. groups names the fingerprint
// groups known to differ; equal groups are skipped entirely, which is where
// the fingerprint cache buys its speedup. A group flagged as differing is
// still re-verified field by field, so a hash-level false positive refines
// away to nothing here.
//
// Fields compare in a fixed order with one early exit: a changed declared
// kind makes every other comparison meaningless (the layout pass rebuilds
// the subtree and state managers treat the pair as unmount+mount).
func classifyPair(old, new *NodeData, groups GroupSet) Report {
	var rep Report
	if groups == 0 {
		return rep
	}

	if groups.Has(GroupContent) {
		if old.Kind != new.Kind {
			rep.Changes = ChangeKind
			rep.Scope = ScopeFull
			return rep
		}
		if old.Text != new.Text {
			rep.Changes |= ChangeText
			rep.Scope = maxScope(rep.Scope, ScopeReshape)
			rep.Text = &TextDelta{Old: old.Text, New: new.Text}
		}
		rep = classifyResource(old.Resource, new.Resource, rep)
	}

	if groups.Has(GroupIdentity) {
		if !equalStrings(old.IDs, new.IDs) || !equalStrings(old.Classes, new.Classes) {
			// Conservative: an id/class change can pull in an unknown set of
			// properties through selector matching, so it always classifies
			// as a full-subtree relayout.
			rep.Changes |= ChangeIdentity
			rep.Scope = ScopeFull
		}
	}

	if groups.Has(GroupStyle) {
		rep = classifyStyle(old.Style, new.Style, rep)
	}

	if groups.Has(GroupBehavior) {
		if !equalBehavior(old.Behavior, new.Behavior) {
			rep.Changes |= ChangeBehavior
		}
	}

	if groups.Has(GroupMisc) {
		if !maps.Equal(old.Dataset, new.Dataset) || old.Label != new.Label || old.TabIndex != new.TabIndex {
			rep.Changes |= ChangeMetadata
		}
	}

	if groups.Has(GroupState) {
		if old.State != new.State {
			rep.Changes |= ChangeState
		}
	}

	return rep
}

// classifyResource compares embedded resources by logical identity, never
// by reference. Whether a swap owes layout is a runtime numeric question:
// a new resource with the same natural size repaints in place, a size
// change invalidates the node's intrinsic size.
func classifyResource(old, new *Resource, rep Report) Report {
	switch {
	case old == nil && new == nil:
		return rep
	case old == nil || new == nil:
		rep.Changes |= ChangeResource
		rep.Scope = maxScope(rep.Scope, ScopeResize)
	case !old.SameIdentity(*new) || !old.SameSize(*new):
		rep.Changes |= ChangeResource
		if !old.SameSize(*new) {
			rep.Scope = maxScope(rep.Scope, ScopeResize)
		}
	}
	return rep
}

// classifyStyle diffs the declared property lists. Every added, removed, or
// value-changed declaration is classified through the severity table and
// contributes to the layout/paint category split and the scope maximum.
func classifyStyle(old, new []StyleProp, rep Report) Report {
	oldByKey := make(map[styleKey]string, len(old))
	for _, p := range old {
		oldByKey[p.key()] = p.Value
	}
	seen := make(map[styleKey]bool, len(new))
	for _, p := range new {
		k := p.key()
		seen[k] = true
		if v, ok := oldByKey[k]; ok && v == p.Value {
			continue
		}
		rep = addStyleChange(rep, p.Prop)
	}
	for _, p := range old {
		if !seen[p.key()] {
			rep = addStyleChange(rep, p.Prop)
		}
	}
	return rep
}

func addStyleChange(rep Report, prop Property) Report {
	scope := ScopeOf(prop)
	if scope > ScopeNone {
		rep.Changes |= ChangeStyleLayout
	} else {
		rep.Changes |= ChangeStylePaint
	}
	rep.Scope = maxScope(rep.Scope, scope)
	rep.Props = append(rep.Props, prop)
	return rep
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBehavior(a, b []Behavior) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
