// Package reflow is an incremental change-tracking and relayout-scheduling
// engine for retained UI trees.
//
// Given two tree snapshots (or a direct edit, or an interaction-state
// transition), it computes the minimum downstream work owed: nothing, a
// repaint, a local reshape, or a full subtree relayout. It never computes
// geometry itself; it only classifies how much geometry work is owed and
// hands disjoint work sets to a layout/paint pipeline.
package reflow
