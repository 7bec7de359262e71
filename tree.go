package reflow

// NodeID addresses a node within one Tree. IDs are arena indexes: dense,
// transaction-scoped, and never meaningful across two different snapshots.
// External managers carry references across rebuilds through the
// correspondence map, never through raw IDs.
type NodeID int32

// InvalidNode marks the absence of a node (no parent, no match).
const InvalidNode NodeID = -1

// Tree is an immutable, index-addressed snapshot of a UI tree.
// Node 0 is the root. Parent and child links are stored as parallel
// index arrays so walks touch contiguous memory.
type Tree struct {
	nodes    []NodeData
	parent   []NodeID
	children [][]NodeID
}

// Build flattens a constructed node tree into an arena snapshot.
// Nodes are numbered in depth-first preorder, so a parent always has a
// lower ID than its descendants.
func Build(root *Node) *Tree {
	t := &Tree{}
	t.add(root, InvalidNode)
	return t
}

func (t *Tree) add(n *Node, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n.data)
	t.parent = append(t.parent, parent)
	t.children = append(t.children, nil)
	for _, child := range n.children {
		cid := t.add(child, id)
		t.children[id] = append(t.children[id], cid)
	}
	return id
}

// Len returns the number of nodes in the snapshot.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root node's ID.
func (t *Tree) Root() NodeID {
	return 0
}

// Data returns the node's data. The returned pointer aliases the arena;
// only the engine's own edit paths may mutate through it.
func (t *Tree) Data(id NodeID) *NodeData {
	return &t.nodes[id]
}

// Parent returns the node's parent, or InvalidNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.parent[id]
}

// Children returns the node's children in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.children[id]
}

// Walk visits every node in depth-first preorder.
func (t *Tree) Walk(fn func(NodeID, *NodeData)) {
	for i := range t.nodes {
		fn(NodeID(i), &t.nodes[i])
	}
}
