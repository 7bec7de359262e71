package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/weftui/reflow"
	"github.com/weftui/reflow/htmltree"
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Diff two HTML files and print the scheduled work sets",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

// summary is the JSON shape handed to whoever is inspecting the engine.
type summary struct {
	Transaction string  `json:"transaction"`
	MaxScope    string  `json:"max_scope"`
	Clean       bool    `json:"clean"`
	PaintOnly   bool    `json:"paint_only"`
	Mounts      []int32 `json:"mounts,omitempty"`
	Unmounts    []int32 `json:"unmounts,omitempty"`
	LayoutRoots []int32 `json:"layout_roots,omitempty"`
	ResizeNodes []int32 `json:"resize_nodes,omitempty"`
	PaintNodes  []int32 `json:"paint_nodes,omitempty"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	var oldTree, newTree *reflow.Tree

	// The two files are independent; parse them concurrently.
	var g errgroup.Group
	g.Go(func() (err error) {
		oldTree, err = loadTree(args[0])
		return err
	})
	g.Go(func() (err error) {
		newTree, err = loadTree(args[1])
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	eng := reflow.New()
	eng.Update(oldTree).Clear() // initial commit, everything mounts
	res := eng.Update(newTree)

	out := summary{
		Transaction: res.Transaction.String(),
		MaxScope:    res.MaxScope.String(),
		Clean:       res.Clean(),
		PaintOnly:   res.PaintOnlyWork(),
		Mounts:      ids(res.Mounts),
		Unmounts:    ids(res.Unmounts),
		LayoutRoots: ids(res.LayoutRoots),
		ResizeNodes: ids(res.ResizeNodes),
		PaintNodes:  ids(res.PaintNodes),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func loadTree(path string) (*reflow.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t, err := htmltree.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func ids(ns []reflow.NodeID) []int32 {
	out := make([]int32, len(ns))
	for i, n := range ns {
		out[i] = int32(n)
	}
	return out
}
