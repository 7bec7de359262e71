package reflow

import "strings"

// StateFlags is the interaction-state bitset of a node (hover, focus, ...).
// The interaction-state manager owns transitions; only the bitset crosses
// into this engine, on snapshots and through Restyle.
type StateFlags uint8

const (
	// StateHover is set while the pointer is over the node.
	StateHover StateFlags = 1 << iota
	// StateActive is set while the node is being pressed.
	StateActive
	// StateFocused is set while the node holds keyboard focus.
	StateFocused
	// StateDisabled is set while the node rejects interaction.
	StateDisabled
	// StateChecked is set for toggled nodes (checkboxes, switches).
	StateChecked
)

// Has reports whether all of the given states are set.
func (s StateFlags) Has(mask StateFlags) bool {
	return s&mask == mask
}

var stateNames = []struct {
	bit  StateFlags
	name string
}{
	{StateHover, "hover"},
	{StateActive, "active"},
	{StateFocused, "focused"},
	{StateDisabled, "disabled"},
	{StateChecked, "checked"},
}

// String lists the set states, for logs and test output.
func (s StateFlags) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, sn := range stateNames {
		if s.Has(sn.bit) {
			parts = append(parts, sn.name)
		}
	}
	return strings.Join(parts, "|")
}
