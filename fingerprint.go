package reflow

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// GroupSet names the fingerprint groups that differ between two nodes.
type GroupSet uint8

const (
	// GroupContent covers kind, text payload, and resource reference.
	GroupContent GroupSet = 1 << iota
	// GroupState covers the interaction-state bitset.
	GroupState
	// GroupStyle covers the declared style property list.
	GroupStyle
	// GroupIdentity covers ids and classes.
	GroupIdentity
	// GroupBehavior covers event hooks.
	GroupBehavior
	// GroupMisc covers dataset, accessibility label, and tab index.
	GroupMisc
)

// Has reports whether all of the given groups are set.
func (g GroupSet) Has(mask GroupSet) bool {
	return g&mask == mask
}

// Fingerprint is a per-node tuple of six independent hashes, one per field
// group. Comparing two fingerprints is six integer compares and names which
// groups changed, so the exact field classifier only runs on groups that
// actually differ. The groups summarize exactly the inputs the classifier
// compares: equal fingerprints guarantee an empty change set. Collisions
// within a group are a bounded performance risk (a change misattributed as
// "unchanged" would need a 64-bit collision on the same node pair), never
// a correctness dependency beyond that.
//
// Fingerprints are persisted per node on the engine's committed state,
// index-addressed alongside the dirty marks, and refreshed whenever an
// edit path mutates authoritative node data.
type Fingerprint struct {
	Content  uint64
	State    uint64
	Style    uint64
	Identity uint64
	Behavior uint64
	Misc     uint64
}

// Equal reports whether every group matches.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f == other
}

// Diff returns the set of groups whose hashes differ.
func (f Fingerprint) Diff(other Fingerprint) GroupSet {
	var g GroupSet
	if f.Content != other.Content {
		g |= GroupContent
	}
	if f.State != other.State {
		g |= GroupState
	}
	if f.Style != other.Style {
		g |= GroupStyle
	}
	if f.Identity != other.Identity {
		g |= GroupIdentity
	}
	if f.Behavior != other.Behavior {
		g |= GroupBehavior
	}
	if f.Misc != other.Misc {
		g |= GroupMisc
	}
	return g
}

// Group seeds keep an identical byte sequence from colliding across groups.
const (
	seedContent byte = iota + 1
	seedState
	seedStyle
	seedIdentity
	seedBehavior
	seedMisc
	seedMatchContent
	seedMatchStructural
)

type hasher struct {
	d *xxhash.Digest
}

func newHasher(seed byte) hasher {
	h := hasher{d: xxhash.New()}
	h.d.Write([]byte{seed})
	return h
}

func (h hasher) str(s string) {
	// Length prefix keeps adjacent fields from bleeding into each other.
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	h.d.Write(buf[:])
	h.d.WriteString(s)
}

func (h hasher) u64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.d.Write(buf[:])
}

func (h hasher) sum() uint64 {
	return h.d.Sum64()
}

// ComputeFingerprint hashes a node's data into its six-group fingerprint.
func ComputeFingerprint(d *NodeData) Fingerprint {
	return Fingerprint{
		Content:  contentHash(d),
		State:    uint64(d.State) ^ (uint64(seedState) << 56),
		Style:    styleHash(d.Style),
		Identity: identityHash(d),
		Behavior: behaviorHash(d.Behavior),
		Misc:     miscHash(d),
	}
}

func contentHash(d *NodeData) uint64 {
	h := newHasher(seedContent)
	h.u64(uint64(d.Kind))
	h.str(d.Text)
	if d.Resource != nil {
		h.str(d.Resource.URI)
		h.u64(uint64(d.Resource.NaturalWidth))
		h.u64(uint64(d.Resource.NaturalHeight))
	}
	return h.sum()
}

func styleHash(style []StyleProp) uint64 {
	h := newHasher(seedStyle)
	for _, p := range style {
		h.u64(uint64(p.Prop))
		h.str(p.Name)
		h.str(p.Value)
		h.u64(uint64(p.When))
	}
	return h.sum()
}

func identityHash(d *NodeData) uint64 {
	h := newHasher(seedIdentity)
	for _, id := range d.IDs {
		h.str(id)
	}
	h.u64(uint64(len(d.IDs)))
	for _, c := range d.Classes {
		h.str(c)
	}
	return h.sum()
}

func behaviorHash(behavior []Behavior) uint64 {
	h := newHasher(seedBehavior)
	for _, b := range behavior {
		h.str(b.Event)
		h.u64(b.Handler)
	}
	return h.sum()
}

func miscHash(d *NodeData) uint64 {
	h := newHasher(seedMisc)
	if len(d.Dataset) > 0 {
		keys := make([]string, 0, len(d.Dataset))
		for k := range d.Dataset {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.str(k)
			h.str(d.Dataset[k])
		}
	}
	h.str(d.Label)
	h.u64(uint64(int64(d.TabIndex)))
	return h.sum()
}

// matchHash is the content fingerprint used for identity matching during
// reconciliation. withText selects between the exact tier (text payload
// included) and the structural tier (payload ignored, so an edited text
// node still matches its old self). Interaction state, behaviors, and
// metadata are deliberately excluded: a hover toggle or a rebuilt closure
// must not break identity.
func matchHash(d *NodeData, withText bool) uint64 {
	seed := seedMatchStructural
	if withText {
		seed = seedMatchContent
	}
	h := newHasher(seed)
	h.u64(uint64(d.Kind))
	if withText {
		h.str(d.Text)
	}
	if d.Resource != nil {
		h.str(d.Resource.URI)
	}
	h.str(strings.Join(d.IDs, "\x00"))
	h.str(strings.Join(d.Classes, "\x00"))
	h.u64(styleHash(d.Style))
	return h.sum()
}
