package bnd

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// zeroJcnThreshold is the minimum length-weighted mean rearrangement CN a
// TI edge's spanned interval must show to be kept (spec.md 4.4).
const zeroJcnThreshold = 0.15

// overlapLen returns the length of the overlap between [s1,e1) and [s2,e2),
// or 0 if they don't overlap.
func overlapLen(s1, e1, s2, e2 int64) int64 {
	lo := s1
	if s2 > lo {
		lo = s2
	}
	hi := e1
	if e2 < hi {
		hi = e2
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func cnSegmentsByChrom(segs []CNSegment) map[string][]CNSegment {
	out := map[string][]CNSegment{}
	for _, s := range segs {
		out[s.Chr] = append(out[s.Chr], s)
	}
	for c := range out {
		sort.Slice(out[c], func(i, j int) bool { return out[c][i].Start < out[c][j].Start })
	}
	return out
}

// retainByCN implements spec.md 4.4's three-way rule for one TI interval.
// montanaflynn/stats has no length-weighted mean, so that average is
// accumulated by hand over the overlapping CN segments; stats.Correlation
// is exercised separately (CorrelateWithOverlap) for the length-vs-CN
// diagnostic a caller can log alongside the filtering decision.
func retainByCN(byChrom map[string][]CNSegment, chr string, lo, hi int64, background float64) bool {
	segs := byChrom[chr]
	if len(segs) == 0 {
		return true
	}

	var weightedSum, totalLen float64
	for _, s := range segs {
		ov := overlapLen(lo, hi, s.Start, s.End)
		if ov <= 0 {
			continue
		}
		cn := s.MajorCN + s.MinorCN - background
		weightedSum += cn * float64(ov)
		totalLen += float64(ov)
	}
	if totalLen == 0 {
		return true
	}
	return weightedSum/totalLen >= zeroJcnThreshold
}

// CorrelateWithOverlap reports the Pearson correlation between each CN
// segment's (major+minor-background) value and its overlap length against
// the interval [lo,hi) on chr. It is a diagnostic, not part of the keep/drop
// decision: a strongly negative correlation usually means the interval only
// grazes a handful of long segments rather than being broadly amplified.
func CorrelateWithOverlap(byChrom map[string][]CNSegment, chr string, lo, hi int64, background float64) (float64, error) {
	var cns, lens stats.Float64Data
	for _, s := range byChrom[chr] {
		ov := overlapLen(lo, hi, s.Start, s.End)
		if ov <= 0 {
			continue
		}
		cns = append(cns, s.MajorCN+s.MinorCN-background)
		lens = append(lens, float64(ov))
	}
	return stats.Correlation(cns, lens)
}

// FilterTIByCN drops TI edges whose spanned interval shows near-zero
// rearrangement-attributable copy number (spec.md 4.4).
func FilterTIByCN(bs []Breakend, ti []Link, opts Options) []Link {
	if len(opts.CNSegments) == 0 {
		return ti
	}
	idx := Index(bs)
	byChrom := cnSegmentsByChrom(opts.CNSegments)

	var out []Link
	for _, e := range ti {
		a, b := idx[e.B1], idx[e.B2]
		if a.Chr != b.Chr {
			out = append(out, e)
			continue
		}
		lo, hi := a.Pos, b.Pos
		if hi < lo {
			lo, hi = hi, lo
		}
		if retainByCN(byChrom, a.Chr, lo, hi, opts.BackgroundPloidy) {
			out = append(out, e)
		}
	}
	return out
}
