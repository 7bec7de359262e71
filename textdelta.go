package reflow

// TextDelta is the literal old/new text pair of an edited node. The engine
// only records it; cursor and selection managers consume it to remap their
// offsets through the edit.
type TextDelta struct {
	Old string
	New string
}

// RemapOffset maps a byte offset in the old text to the corresponding
// offset in the new text:
//
//   - offsets in the unchanged prefix stay put
//   - offsets in the unchanged suffix shift by the length difference
//   - offsets inside the changed region land at the end of the new content
func (d TextDelta) RemapOffset(oldOffset int) int {
	if d.Old == d.New {
		return oldOffset
	}
	if d.Old == "" {
		return len(d.New)
	}
	if d.New == "" {
		return 0
	}

	prefix := commonPrefixLen(d.Old, d.New)
	if oldOffset <= prefix {
		return min(oldOffset, len(d.New))
	}

	suffix := commonSuffixLen(d.Old, d.New)
	// Prefix and suffix may overlap when the edit region is shorter than
	// their sum (e.g. "aaa" → "aa"); cap the suffix to what remains.
	if prefix+suffix > len(d.Old) {
		suffix = len(d.Old) - prefix
	}
	if prefix+suffix > len(d.New) {
		suffix = len(d.New) - prefix
	}

	if oldOffset >= len(d.Old)-suffix {
		return len(d.New) - (len(d.Old) - oldOffset)
	}
	return len(d.New) - suffix
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}
	return n
}
