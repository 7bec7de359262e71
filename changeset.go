package reflow

import "strings"

// ChangeSet records what changed about a node between two snapshots as a
// bitfield over a closed set of categories. Multiple categories can be set
// simultaneously. A true visual change always sets at least one bit; a set
// bit with no underlying change only costs extra work downstream.
type ChangeSet uint16

const (
	// ChangeKind means the declared node kind changed entirely (e.g. text → image).
	ChangeKind ChangeSet = 1 << iota
	// ChangeText means the literal text payload changed.
	ChangeText
	// ChangeResource means the embedded resource's logical identity changed.
	ChangeResource
	// ChangeIdentity means the id or class list changed.
	ChangeIdentity
	// ChangeStyleLayout means a layout-affecting style property changed.
	ChangeStyleLayout
	// ChangeStylePaint means a paint-only style property changed.
	ChangeStylePaint
	// ChangeChildren means children were added, removed, or reordered.
	ChangeChildren
	// ChangeBehavior means event hooks changed (visually inert).
	ChangeBehavior
	// ChangeMetadata means dataset, accessibility, or tab-index changed
	// (visually inert).
	ChangeMetadata
	// ChangeState means the interaction-state bitset changed.
	ChangeState
)

// changeVisual covers every category that can affect pixels.
// Behavior and metadata changes carry zero visual effect and never
// produce a dirty flag on their own.
const changeVisual = ChangeKind | ChangeText | ChangeResource | ChangeIdentity |
	ChangeStyleLayout | ChangeStylePaint | ChangeChildren | ChangeState

// Empty reports whether no change was recorded.
func (c ChangeSet) Empty() bool {
	return c == 0
}

// Has reports whether all of the given categories are set.
func (c ChangeSet) Has(mask ChangeSet) bool {
	return c&mask == mask
}

// Intersects reports whether any of the given categories is set.
func (c ChangeSet) Intersects(mask ChangeSet) bool {
	return c&mask != 0
}

// Union returns the combination of both change sets.
func (c ChangeSet) Union(other ChangeSet) ChangeSet {
	return c | other
}

// Visual reports whether any visually-affecting category is set.
func (c ChangeSet) Visual() bool {
	return c.Intersects(changeVisual)
}

var changeNames = []struct {
	bit  ChangeSet
	name string
}{
	{ChangeKind, "kind"},
	{ChangeText, "text"},
	{ChangeResource, "resource"},
	{ChangeIdentity, "identity"},
	{ChangeStyleLayout, "style-layout"},
	{ChangeStylePaint, "style-paint"},
	{ChangeChildren, "children"},
	{ChangeBehavior, "behavior"},
	{ChangeMetadata, "metadata"},
	{ChangeState, "state"},
}

// String lists the set categories, for logs and test output.
func (c ChangeSet) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, cn := range changeNames {
		if c.Has(cn.bit) {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
