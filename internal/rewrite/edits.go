package rewrite

import (
	"errors"
	"fmt"
	"sort"
)

// Edit wraps the source range [Start, End) in Prefix and Suffix.
//
// Start and End are byte offsets into the original source, with End exclusive. The
// wrapped bytes are copied unchanged, so applying edits never drops source text.
type Edit struct {
	Start  int
	End    int
	Prefix string
	Suffix string
}

// Apply applies a set of wrap edits to source and returns the updated content.
//
// Edits must be non-overlapping and refer to offsets in the original source. They
// are sorted by Start and applied in a single forward pass. Zero-width edits are
// allowed and act as insertions.
func Apply(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < 0 {
			return "", fmt.Errorf("invalid edit[%d]: negative range", i)
		}
		if e.End < e.Start {
			return "", fmt.Errorf("invalid edit[%d]: end before start", i)
		}
		if e.End > len(source) {
			return "", fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return "", errors.New("invalid edits: overlapping ranges")
		}
	}

	b := NewBuilder(source)
	for _, e := range sorted {
		b.CopyN(e.Start - b.Pos())
		b.Emit(e.Prefix)
		b.CopyN(e.End - e.Start)
		b.Emit(e.Suffix)
	}
	b.CopyRest()

	return b.String(), nil
}
