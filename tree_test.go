package reflow

import "testing"

func TestBuild_PreorderNumbering(t *testing.T) {
	tree := Build(NewNode(KindBox).Append(
		NewNode(KindBox).Append(
			NewNode(KindText, WithText("a")),
			NewNode(KindText, WithText("b")),
		),
		NewNode(KindBox),
	))

	if tree.Len() != 5 {
		t.Fatalf("Len = %d, want 5", tree.Len())
	}
	if tree.Root() != 0 {
		t.Errorf("Root = %d, want 0", tree.Root())
	}
	// Preorder: a parent always has a lower ID than its descendants.
	tree.Walk(func(id NodeID, _ *NodeData) {
		if p := tree.Parent(id); p != InvalidNode && p >= id {
			t.Errorf("node %d has parent %d, want parent < child", id, p)
		}
	})

	wantParents := []NodeID{InvalidNode, 0, 1, 1, 0}
	for id, want := range wantParents {
		if got := tree.Parent(NodeID(id)); got != want {
			t.Errorf("Parent(%d) = %d, want %d", id, got, want)
		}
	}
	if kids := tree.Children(1); len(kids) != 2 || kids[0] != 2 || kids[1] != 3 {
		t.Errorf("Children(1) = %v, want [2 3]", kids)
	}
}

func TestBuild_WalkVisitsEveryNodeOnce(t *testing.T) {
	tree := Build(NewNode(KindBox).Append(
		NewNode(KindText, WithText("x")),
		NewNode(KindBox).Append(NewNode(KindText, WithText("y"))),
	))
	seen := make(map[NodeID]int)
	tree.Walk(func(id NodeID, d *NodeData) {
		seen[id]++
		if d == nil {
			t.Fatalf("node %d has nil data", id)
		}
	})
	if len(seen) != tree.Len() {
		t.Errorf("walk visited %d nodes, want %d", len(seen), tree.Len())
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("node %d visited %d times", id, n)
		}
	}
}

func TestNodeOptions(t *testing.T) {
	n := NewNode(KindImage,
		WithKey(42),
		WithResource("pic.png", 32, 16),
		WithID("hero"),
		WithClasses("big", "round"),
		WithStyle(PropWidth, "32px"),
		WithStateStyle(StateHover, PropOpacity, "0.8"),
		WithRawStyle("backdrop-filter", "blur(2px)"),
		WithBehavior("click", 9),
		WithDataset("row", "1"),
		WithLabel("hero image"),
		WithTabIndex(3),
		WithState(StateFocused),
	)
	tree := Build(n)
	d := tree.Data(0)

	if d.Kind != KindImage || d.Key != 42 {
		t.Errorf("kind/key = %v/%d", d.Kind, d.Key)
	}
	if d.Resource == nil || d.Resource.URI != "pic.png" || d.Resource.NaturalWidth != 32 {
		t.Errorf("resource = %+v", d.Resource)
	}
	if len(d.IDs) != 1 || d.IDs[0] != "hero" || len(d.Classes) != 2 {
		t.Errorf("identity = %v / %v", d.IDs, d.Classes)
	}
	if len(d.Style) != 3 {
		t.Fatalf("style = %v, want 3 declarations", d.Style)
	}
	if d.Style[1].When != StateHover {
		t.Errorf("state style When = %v, want hover", d.Style[1].When)
	}
	if d.Style[2].Prop != PropUnknown || d.Style[2].Name != "backdrop-filter" {
		t.Errorf("raw style = %+v", d.Style[2])
	}
	if len(d.Behavior) != 1 || d.Behavior[0].Event != "click" {
		t.Errorf("behavior = %v", d.Behavior)
	}
	if d.Dataset["row"] != "1" || d.Label != "hero image" || d.TabIndex != 3 {
		t.Errorf("metadata = %v / %q / %d", d.Dataset, d.Label, d.TabIndex)
	}
	if d.State != StateFocused {
		t.Errorf("state = %v", d.State)
	}
}
