package reflow

// Kind is the declared type of a node. Matched pairs with differing kinds
// are forced to full-subtree relayout and unmount+mount semantics for
// external state managers.
type Kind uint8

const (
	// KindBox is a generic container node.
	KindBox Kind = iota
	// KindText is a text-bearing node; its payload is NodeData.Text.
	KindText
	// KindImage is a replaced node whose content is an external resource.
	KindImage
	// KindEmbed is a replaced node hosting foreign content (video, canvas).
	KindEmbed
)

// String returns the kind name for logs and test output.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindEmbed:
		return "embed"
	}
	return "invalid"
}

// Resource identifies embedded content by logical identity, never by
// reference equality: two snapshots pointing at the same URI are the same
// resource even though they are distinct values. The natural size travels
// with the reference so the classifier can decide whether a swapped
// resource actually changes intrinsic size.
type Resource struct {
	URI           string
	NaturalWidth  int
	NaturalHeight int
}

// SameIdentity reports whether both references denote the same logical content.
func (r Resource) SameIdentity(other Resource) bool {
	return r.URI == other.URI
}

// SameSize reports whether both references have the same natural size.
func (r Resource) SameSize(other Resource) bool {
	return r.NaturalWidth == other.NaturalWidth && r.NaturalHeight == other.NaturalHeight
}

// Behavior is an event hook attached to a node. Hooks are guaranteed
// visually inert: swapping a handler never dirties layout or paint.
type Behavior struct {
	Event   string
	Handler uint64 // opaque handler identity supplied by the tree source
}

// StyleProp is one declared style property. When is the interaction-state
// condition under which the declaration applies; zero means always.
// Name carries the raw identifier only when Prop is PropUnknown, so
// unmodeled properties still compare by identity.
type StyleProp struct {
	Prop  Property
	Name  string
	Value string
	When  StateFlags
}

func (p StyleProp) key() styleKey {
	return styleKey{prop: p.Prop, name: p.Name, when: p.When}
}

type styleKey struct {
	prop Property
	name string
	when StateFlags
}

// NodeData is everything the engine compares about a node. Tree sources
// must fill in whatever the node actually carries; absent fields compare
// as equal-by-zero.
type NodeData struct {
	Kind     Kind
	Key      uint64 // explicit stable identity; 0 means none
	Text     string
	Resource *Resource
	IDs      []string
	Classes  []string
	Style    []StyleProp
	Behavior []Behavior
	Dataset  map[string]string
	Label    string // accessibility label
	TabIndex int
	State    StateFlags
}

// Node is a snapshot node under construction. Snapshots are built as
// ordinary pointer trees and flattened into an index-addressed Tree with
// Build; node identity never survives across snapshots, only
// correspondence does.
type Node struct {
	data     NodeData
	children []*Node
}

// NewNode creates a node of the given kind with the given options.
func NewNode(kind Kind, opts ...NodeOption) *Node {
	n := &Node{data: NodeData{Kind: kind}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Append adds children to this node, in order.
func (n *Node) Append(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}
