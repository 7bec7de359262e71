package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftui/reflow"
)

var scopeCmd = &cobra.Command{
	Use:   "scope [PROPERTY...]",
	Short: "Show the relayout severity of style properties",
	Long: `Show how the engine classifies style properties.

With no arguments, prints the entire severity table. Unknown property
names classify as "full" by design.`,
	RunE: runScope,
}

func runScope(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for p := reflow.Property(1); ; p++ {
			name := p.String()
			if name == "unknown" {
				break
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, reflow.ScopeOf(p))
		}
		return nil
	}
	for _, name := range args {
		p, known := reflow.ParseProperty(name)
		scope := reflow.ScopeOf(p)
		if !known {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s (unclassified)\n", name, scope)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, scope)
	}
	return nil
}
