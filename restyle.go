package reflow

// The restyle path: an interaction-state transition (hover, focus, active)
// re-evaluates a known node's style without rebuilding the tree. Only the
// declarations whose effective value actually changes are reported, each
// classified through the same severity table as every other producer.

// Restyle records an interaction-state transition on a committed node.
// The report lands in the pending ledger and is consumed by the next
// Flush (or remapped into the next Update).
func (e *Engine) Restyle(id NodeID, newState StateFlags) {
	d := e.committedData(id)
	oldState := d.State
	if oldState == newState {
		return
	}

	acc := e.pendingLedger()
	acc.Add(id, Report{Changes: ChangeState})

	oldEff := effectiveStyle(d.Style, oldState)
	newEff := effectiveStyle(d.Style, newState)
	for k, v := range newEff {
		if ov, ok := oldEff[k]; !ok || ov != v {
			acc.AddStyleChange(id, k.prop)
		}
	}
	for k := range oldEff {
		if _, ok := newEff[k]; !ok {
			acc.AddStyleChange(id, k.prop)
		}
	}

	d.State = newState
	e.fps[id] = ComputeFingerprint(d)
}

// EditText records a direct runtime edit of a node's text payload,
// keeping the old/new pair for external cursor remapping.
func (e *Engine) EditText(id NodeID, text string) {
	d := e.committedData(id)
	if d.Text == text {
		return
	}
	e.pendingLedger().AddTextChange(id, d.Text, text)
	d.Text = text
	e.fps[id] = ComputeFingerprint(d)
}

// EditStyle upserts style declarations on a committed node. Each
// declaration whose value actually changes is reported through the
// severity table.
func (e *Engine) EditStyle(id NodeID, props ...StyleProp) {
	d := e.committedData(id)
	acc := e.pendingLedger()
	changed := false

	for _, p := range props {
		idx := -1
		for i, existing := range d.Style {
			if existing.key() == p.key() {
				idx = i
				break
			}
		}
		if idx >= 0 {
			if d.Style[idx].Value == p.Value {
				continue
			}
			d.Style[idx].Value = p.Value
		} else {
			d.Style = append(d.Style, p)
		}
		acc.AddStyleChange(id, p.Prop)
		changed = true
	}

	if changed {
		e.fps[id] = ComputeFingerprint(d)
	}
}

// EditResource swaps a committed node's embedded resource. Layout is owed
// only if the natural size actually changed.
func (e *Engine) EditResource(id NodeID, res Resource) {
	d := e.committedData(id)
	if d.Resource != nil && d.Resource.SameIdentity(res) && d.Resource.SameSize(res) {
		return
	}
	resized := d.Resource == nil || !d.Resource.SameSize(res)
	e.pendingLedger().AddResourceChange(id, resized)
	d.Resource = &res
	e.fps[id] = ComputeFingerprint(d)
}

func (e *Engine) committedData(id NodeID) *NodeData {
	if e.tree == nil {
		panic("reflow: edit before first Update")
	}
	return e.tree.Data(id)
}

func (e *Engine) pendingLedger() *Accumulator {
	if e.pending == nil {
		e.pending = NewAccumulator()
	}
	return e.pending
}

type effectiveKey struct {
	prop Property
	name string
}

// effectiveStyle resolves the declared property list under a given
// interaction state: unconditional declarations apply always, conditional
// ones only while all their states are held, later declarations override
// earlier ones for the same property.
func effectiveStyle(style []StyleProp, state StateFlags) map[effectiveKey]string {
	eff := make(map[effectiveKey]string, len(style))
	for _, p := range style {
		if p.When != 0 && !state.Has(p.When) {
			continue
		}
		eff[effectiveKey{prop: p.Prop, name: p.Name}] = p.Value
	}
	return eff
}
