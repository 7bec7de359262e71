package reflow

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine owns the long-lived per-tree state: the committed snapshot, its
// per-node fingerprints, and the per-node dirty marks. It merges the three
// change producers (tree rebuild, interaction-state restyle, direct edits)
// into one transaction, propagates dirt, and hands the layout pipeline a
// Result.
//
// The pipeline is synchronous and transaction-scoped. Fingerprinting and
// field classification are sharded across workers; everything that touches
// shared state (the merge, propagation, the committed arrays) runs on the
// calling goroutine. The engine itself is not safe for concurrent use.
type Engine struct {
	log     *slog.Logger
	workers int

	tree  *Tree
	fps   []Fingerprint
	marks []dirtiness

	// pending holds restyle/edit reports accumulated since the last
	// transaction, keyed by committed-tree IDs.
	pending *Accumulator

	// outstanding is the last result not yet consumed by the layout pass.
	// Starting a new transaction while it is set supersedes it: its work
	// sets are never applied, and its ledger folds into the replacement.
	outstanding *Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithWorkers sets the shard count for fingerprinting and classification.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an engine with no committed tree. The first Update mounts
// everything.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:     slog.Default(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tree returns the committed snapshot, or nil before the first Update.
func (e *Engine) Tree() *Tree {
	return e.tree
}

// Update runs a full rebuild transaction against a new candidate snapshot:
// reconcile, classify, accumulate (merging any pending restyle/edit
// reports), propagate, partition. The new snapshot becomes the committed
// tree. Pending reports are remapped through the correspondence; reports
// against unmounted nodes die with their nodes.
func (e *Engine) Update(next *Tree) *Result {
	e.discardStale("update")

	newFps := e.fingerprintAll(next)

	if e.tree == nil {
		// Initial commit: every node mounts, everything is fully dirty.
		acc := NewAccumulator()
		next.Walk(func(id NodeID, _ *NodeData) {
			acc.AddMount(id)
		})
		return e.finish(next, newFps, acc, nil)
	}

	corr := Reconcile(e.tree, next)
	acc := e.classifyPairs(corr, next, newFps)

	// Children structure is a property of the correspondence, not of any
	// single node's fields, so it is detected after matching.
	for _, pr := range corr.Pairs {
		if corr.childrenChanged(e.tree, next, pr.Old, pr.New) {
			acc.Add(pr.New, Report{Changes: ChangeChildren, Scope: ScopeFull})
		}
	}

	for _, id := range corr.Mounts {
		acc.AddMount(id)
	}
	for _, id := range corr.Unmounts {
		acc.AddUnmount(id)
	}

	// Fold in reports accumulated against the committed tree (restyle/edit
	// paths plus anything carried from a superseded transaction), remapped
	// onto new-snapshot IDs.
	if e.pending != nil {
		for id, rep := range e.pending.Nodes {
			if nid := corr.OldToNew(id); nid != InvalidNode {
				acc.Add(nid, *rep)
			}
		}
		// A carried mount that survives the rebuild was never seen by the
		// consumers; it stays a mount for them and stays fully dirty.
		for _, id := range e.pending.Mounts {
			if nid := corr.OldToNew(id); nid != InvalidNode {
				acc.AddMount(nid)
			}
		}
		// Carried unmounts reference nodes already gone from the committed
		// tree; they pass through untouched for external cleanup.
		acc.Unmounts = append(acc.Unmounts, e.pending.Unmounts...)
		e.pending = nil
	}

	return e.finish(next, newFps, acc, corr)
}

// Flush runs a transaction for pending restyle/edit reports without a
// rebuild. With nothing pending it yields an empty, clean result.
func (e *Engine) Flush() *Result {
	if e.tree == nil {
		panic("reflow: Flush before first Update")
	}
	e.discardStale("flush")

	acc := e.pending
	e.pending = nil
	if acc == nil {
		acc = NewAccumulator()
	}
	propagate(e.tree, e.marks, acc)
	res := buildResult(e, e.tree, e.marks, acc, nil)
	e.outstanding = res
	e.logTransaction(acc, res, nil)
	return res
}

// finish propagates the fully-fed ledger onto fresh marks, partitions, and
// commits the new snapshot. Propagation must not start earlier: the
// early-exit walk is only sound against a complete ledger.
func (e *Engine) finish(next *Tree, newFps []Fingerprint, acc *Accumulator, corr *Correspondence) *Result {
	marks := make([]dirtiness, next.Len())
	propagate(next, marks, acc)
	res := buildResult(e, next, marks, acc, corr)

	e.tree = next
	e.fps = newFps
	e.marks = marks
	e.outstanding = res
	e.logTransaction(acc, res, corr)
	return res
}

// discardStale supersedes an unconsumed transaction. Its work sets must
// never be applied as-is, but the work it owed is still owed: the ledger
// folds into the pending accumulator so the replacing transaction
// re-propagates every carried report (remapped through the correspondence
// on rebuilds). The stale result itself becomes inert.
func (e *Engine) discardStale(phase string) {
	if e.outstanding == nil || e.outstanding.consumed {
		e.outstanding = nil
		return
	}
	stale := e.outstanding
	e.outstanding = nil
	stale.consumed = true
	e.log.Warn("superseding unconsumed transaction",
		"id", stale.Transaction, "phase", phase)
	e.pendingLedger().Merge(stale.ledger)
}

func (e *Engine) logTransaction(acc *Accumulator, res *Result, corr *Correspondence) {
	pairs := 0
	if corr != nil {
		pairs = len(corr.Pairs)
	}
	e.log.Debug("transaction complete",
		"id", acc.ID,
		"pairs", pairs,
		"changed", len(acc.Nodes),
		"mounts", len(acc.Mounts),
		"unmounts", len(acc.Unmounts),
		"max_scope", acc.MaxScope,
		"layout_roots", len(res.LayoutRoots),
		"resize_nodes", len(res.ResizeNodes),
		"paint_nodes", len(res.PaintNodes),
	)
}

// fingerprintAll computes per-node fingerprints for a snapshot, sharded
// across workers. Nodes are independent, so shards share nothing but the
// output slice, each writing its own range.
func (e *Engine) fingerprintAll(t *Tree) []Fingerprint {
	fps := make([]Fingerprint, t.Len())
	var g errgroup.Group
	e.shards(t.Len())(func(start, end int) bool {
		g.Go(func() error {
			for i := start; i < end; i++ {
				fps[i] = ComputeFingerprint(t.Data(NodeID(i)))
			}
			return nil
		})
		return true
	})
	// Hashing is pure and never fails; Wait is just the join point.
	_ = g.Wait()
	return fps
}

// classifyPairs runs the field classifier over all matched pairs, sharded
// across workers. Each shard fills a private ledger; the partial ledgers
// merge serially at the end under the accumulator's conflict-free
// union/max rule, so no locking is needed anywhere.
func (e *Engine) classifyPairs(corr *Correspondence, next *Tree, newFps []Fingerprint) *Accumulator {
	acc := NewAccumulator()
	pairs := corr.Pairs
	if len(pairs) == 0 {
		return acc
	}

	n := e.workers
	if n > len(pairs) {
		n = len(pairs)
	}
	partials := make([]*Accumulator, n)
	chunk := (len(pairs) + n - 1) / n

	var g errgroup.Group
	for w := 0; w < n; w++ {
		start := w * chunk
		end := min(start+chunk, len(pairs))
		if start >= end {
			break
		}
		part := NewAccumulator()
		partials[w] = part
		g.Go(func() error {
			for _, pr := range pairs[start:end] {
				diff := e.fps[pr.Old].Diff(newFps[pr.New])
				if diff == 0 {
					// All six groups match: the change set is guaranteed
					// empty, skip the field classifier entirely.
					continue
				}
				rep := classifyPair(e.tree.Data(pr.Old), next.Data(pr.New), diff)
				part.Add(pr.New, rep)
			}
			return nil
		})
	}
	// Classification is pure and never fails; Wait is just the join point.
	_ = g.Wait()

	for _, part := range partials {
		if part != nil {
			acc.Merge(part)
		}
	}
	return acc
}

// shards yields [start, end) ranges splitting n items across the workers.
func (e *Engine) shards(n int) func(func(int, int) bool) {
	w := e.workers
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	chunk := (n + w - 1) / w
	return func(yield func(int, int) bool) {
		for start := 0; start < n; start += chunk {
			if !yield(start, min(start+chunk, n)) {
				return
			}
		}
	}
}
