package reflow

// NodeOption configures a Node during construction.
type NodeOption func(*Node)

// WithKey sets an explicit stable identity for reconciliation.
// Keyed nodes match absolutely across rebuilds, regardless of position.
func WithKey(key uint64) NodeOption {
	return func(n *Node) {
		n.data.Key = key
	}
}

// WithText sets the literal text payload (text-bearing nodes).
func WithText(text string) NodeOption {
	return func(n *Node) {
		n.data.Text = text
	}
}

// WithResource sets the embedded resource reference (replaced nodes).
func WithResource(uri string, naturalWidth, naturalHeight int) NodeOption {
	return func(n *Node) {
		n.data.Resource = &Resource{
			URI:           uri,
			NaturalWidth:  naturalWidth,
			NaturalHeight: naturalHeight,
		}
	}
}

// WithID appends an identity attribute.
func WithID(id string) NodeOption {
	return func(n *Node) {
		n.data.IDs = append(n.data.IDs, id)
	}
}

// WithClasses appends class attributes.
func WithClasses(classes ...string) NodeOption {
	return func(n *Node) {
		n.data.Classes = append(n.data.Classes, classes...)
	}
}

// WithStyle appends an unconditional style declaration.
func WithStyle(prop Property, value string) NodeOption {
	return func(n *Node) {
		n.data.Style = append(n.data.Style, StyleProp{Prop: prop, Value: value})
	}
}

// WithStateStyle appends a style declaration that applies only while the
// node holds all of the given interaction states (e.g. a hover rule).
func WithStateStyle(when StateFlags, prop Property, value string) NodeOption {
	return func(n *Node) {
		n.data.Style = append(n.data.Style, StyleProp{Prop: prop, Value: value, When: when})
	}
}

// WithRawStyle appends a declaration for a property the engine does not
// model. It still participates in comparison and classifies as ScopeFull.
func WithRawStyle(name, value string) NodeOption {
	return func(n *Node) {
		n.data.Style = append(n.data.Style, StyleProp{Prop: PropUnknown, Name: name, Value: value})
	}
}

// WithBehavior attaches an event hook.
func WithBehavior(event string, handler uint64) NodeOption {
	return func(n *Node) {
		n.data.Behavior = append(n.data.Behavior, Behavior{Event: event, Handler: handler})
	}
}

// WithDataset sets a dataset entry (metadata-only).
func WithDataset(key, value string) NodeOption {
	return func(n *Node) {
		if n.data.Dataset == nil {
			n.data.Dataset = make(map[string]string)
		}
		n.data.Dataset[key] = value
	}
}

// WithLabel sets the accessibility label (metadata-only).
func WithLabel(label string) NodeOption {
	return func(n *Node) {
		n.data.Label = label
	}
}

// WithTabIndex sets the tab index (metadata-only).
func WithTabIndex(idx int) NodeOption {
	return func(n *Node) {
		n.data.TabIndex = idx
	}
}

// WithState sets the initial interaction-state bitset.
func WithState(state StateFlags) NodeOption {
	return func(n *Node) {
		n.data.State = state
	}
}
