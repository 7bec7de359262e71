package reflow

import "testing"

func checkAccounting(t *testing.T, c *Correspondence, old, new *Tree) {
	t.Helper()
	if got, want := len(c.Pairs)+len(c.Mounts), new.Len(); got != want {
		t.Errorf("new snapshot accounting: pairs+mounts = %d, want %d", got, want)
	}
	if got, want := len(c.Pairs)+len(c.Unmounts), old.Len(); got != want {
		t.Errorf("old snapshot accounting: pairs+unmounts = %d, want %d", got, want)
	}
	for _, pr := range c.Pairs {
		if c.OldToNew(pr.Old) != pr.New || c.NewToOld(pr.New) != pr.Old {
			t.Errorf("lookup maps inconsistent with pair %+v", pr)
		}
	}
}

func TestReconcile_IdenticalTrees(t *testing.T) {
	build := func() *Tree {
		return Build(NewNode(KindBox).Append(
			NewNode(KindText, WithText("a")),
			NewNode(KindText, WithText("b")),
		))
	}
	old, new := build(), build()
	c := Reconcile(old, new)

	if len(c.Mounts) != 0 || len(c.Unmounts) != 0 {
		t.Errorf("identical trees: mounts %v unmounts %v, want none", c.Mounts, c.Unmounts)
	}
	if len(c.Pairs) != 3 {
		t.Fatalf("pairs = %d, want 3", len(c.Pairs))
	}
	for _, pr := range c.Pairs {
		if pr.Old != pr.New {
			t.Errorf("identical trees should pair in place, got %+v", pr)
		}
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_KeyMatchesAcrossParents(t *testing.T) {
	old := Build(NewNode(KindBox).Append(
		NewNode(KindBox, WithKey(7), WithClasses("k")),
		NewNode(KindBox, WithClasses("wrap")),
	))
	new := Build(NewNode(KindBox).Append(
		NewNode(KindBox, WithClasses("wrap")).Append(
			NewNode(KindBox, WithKey(7), WithClasses("k")),
		),
	))

	c := Reconcile(old, new)
	// Old IDs: root=0, keyed=1, wrap=2. New IDs: root=0, wrap=1, keyed=2.
	if got := c.OldToNew(1); got != 2 {
		t.Errorf("keyed node: OldToNew(1) = %d, want 2", got)
	}
	if len(c.Mounts) != 0 || len(c.Unmounts) != 0 {
		t.Errorf("keyed move: mounts %v unmounts %v, want none", c.Mounts, c.Unmounts)
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_StructuralTierSurvivesTextEdit(t *testing.T) {
	old := Build(NewNode(KindBox).Append(NewNode(KindText, WithText("hello"))))
	new := Build(NewNode(KindBox).Append(NewNode(KindText, WithText("edited"))))

	c := Reconcile(old, new)
	if len(c.Mounts) != 0 || len(c.Unmounts) != 0 {
		t.Fatalf("edited text node lost identity: mounts %v unmounts %v", c.Mounts, c.Unmounts)
	}
	if got := c.OldToNew(1); got != 1 {
		t.Errorf("text node: OldToNew(1) = %d, want 1", got)
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_PositionalFallback(t *testing.T) {
	old := Build(NewNode(KindBox).Append(NewNode(KindBox, WithClasses("a"))))
	new := Build(NewNode(KindBox).Append(NewNode(KindBox, WithClasses("b"))))

	c := Reconcile(old, new)
	// Neither hash tier matches; same index under the matched root does.
	if got := c.OldToNew(1); got != 1 {
		t.Errorf("positional fallback: OldToNew(1) = %d, want 1", got)
	}
	if len(c.Mounts) != 0 || len(c.Unmounts) != 0 {
		t.Errorf("positional fallback should pair, got mounts %v unmounts %v", c.Mounts, c.Unmounts)
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_DuplicateKeyMounts(t *testing.T) {
	old := Build(NewNode(KindBox).Append(NewNode(KindBox, WithKey(5))))
	new := Build(NewNode(KindBox).Append(
		NewNode(KindBox, WithKey(5)),
		NewNode(KindBox, WithKey(5)),
	))

	c := Reconcile(old, new)
	if len(c.Mounts) != 1 {
		t.Fatalf("duplicate key: mounts = %v, want exactly one", c.Mounts)
	}
	if len(c.Unmounts) != 0 {
		t.Errorf("duplicate key: unmounts = %v, want none", c.Unmounts)
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_UnmatchedKeyNeverGuesses(t *testing.T) {
	// A key present only in the new snapshot mounts; it must not degrade to
	// a positional guess against the unkeyed old node at the same index.
	old := Build(NewNode(KindBox).Append(NewNode(KindBox, WithClasses("x"))))
	new := Build(NewNode(KindBox).Append(NewNode(KindBox, WithKey(9), WithClasses("x"))))

	c := Reconcile(old, new)
	if len(c.Mounts) != 1 || c.Mounts[0] != 1 {
		t.Errorf("mounts = %v, want [1]", c.Mounts)
	}
	if len(c.Unmounts) != 1 || c.Unmounts[0] != 1 {
		t.Errorf("unmounts = %v, want [1]", c.Unmounts)
	}
	checkAccounting(t, c, old, new)
}

func TestReconcile_RemovalUnmounts(t *testing.T) {
	old := Build(NewNode(KindBox).Append(
		NewNode(KindText, WithText("keep")),
		NewNode(KindText, WithText("drop")),
	))
	new := Build(NewNode(KindBox).Append(NewNode(KindText, WithText("keep"))))

	c := Reconcile(old, new)
	if len(c.Unmounts) != 1 || c.Unmounts[0] != 2 {
		t.Errorf("unmounts = %v, want [2]", c.Unmounts)
	}
	if len(c.Mounts) != 0 {
		t.Errorf("mounts = %v, want none", c.Mounts)
	}
	checkAccounting(t, c, old, new)
}

func TestChildrenChanged(t *testing.T) {
	build := func(keys ...uint64) *Tree {
		root := NewNode(KindBox)
		for _, k := range keys {
			root.Append(NewNode(KindBox, WithKey(k)))
		}
		return Build(root)
	}

	t.Run("same order is unchanged", func(t *testing.T) {
		old, new := build(1, 2), build(1, 2)
		c := Reconcile(old, new)
		if c.childrenChanged(old, new, 0, 0) {
			t.Error("identical child lists reported as changed")
		}
	})

	t.Run("reorder is a change", func(t *testing.T) {
		old, new := build(1, 2), build(2, 1)
		c := Reconcile(old, new)
		if !c.childrenChanged(old, new, 0, 0) {
			t.Error("reordered keyed children not reported as changed")
		}
	})

	t.Run("insertion is a change", func(t *testing.T) {
		old, new := build(1), build(1, 2)
		c := Reconcile(old, new)
		if !c.childrenChanged(old, new, 0, 0) {
			t.Error("inserted child not reported as changed")
		}
	})
}
