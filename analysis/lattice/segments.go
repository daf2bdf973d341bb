package lattice

import (
	"sort"

	uf "github.com/spakin/disjoint"
)

// Canonicalize computes the unique representation of a segmentation.
// Vacuous segments are dropped, overlapping segments are merged by join,
// and the remaining segments are ordered by Less.
func Canonicalize(segs []KeyWrapper) []KeyWrapper {
	res := make([]KeyWrapper, 0, len(segs))
	for _, seg := range segs {
		if !seg.IsBot() {
			res = append(res, seg)
		}
	}

	// Merging may extend a segment over a third one, so repeat until stable.
	for {
		merged := mergeOverlapping(res)
		if len(merged) == len(res) {
			res = merged
			break
		}
		res = merged
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Less(res[j])
	})
	return res
}

func mergeOverlapping(segs []KeyWrapper) []KeyWrapper {
	els := make([]*uf.Element, len(segs))
	for i, seg := range segs {
		els[i] = uf.NewElement()
		els[i].Data = seg
	}

	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if !segs[i].Meet(segs[j]).IsBot() {
				uf.Union(els[i], els[j])
			}
		}
	}

	groups := make(map[*uf.Element]KeyWrapper)
	order := make([]*uf.Element, 0, len(segs))
	for i, seg := range segs {
		rep := els[i].Find()
		if acc, ok := groups[rep]; ok {
			groups[rep] = acc.Join(seg).(KeyWrapper)
			continue
		}
		groups[rep] = seg
		order = append(order, rep)
	}

	res := make([]KeyWrapper, 0, len(order))
	for _, rep := range order {
		res = append(res, groups[rep])
	}
	return res
}

// Subtract removes the keys of exclude from every segment, enabling a
// strong update of the keys of exclude. If a segment cannot be
// decomposed, the segmentation is returned unchanged, and the update
// must be weak.
func Subtract(segs []KeyWrapper, exclude KeyWrapper) (res []KeyWrapper, strong bool) {
	res = make([]KeyWrapper, 0, len(segs)+1)
	for _, seg := range segs {
		rest, ok := seg.Decomp(exclude)
		if !ok {
			return segs, false
		}
		res = append(res, rest...)
	}
	return res, true
}
