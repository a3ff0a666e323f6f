package bnd

import (
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// pad is the synthetic boundary added past the last observed breakend
// position on a chromosome, giving every chromosome a right stub segment.
const pad = 1000

// Side names the two ends of a ref segment.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

// Port addresses one end of one ref segment. It is the walker's unit of
// wiring: "representable as a flat array indexed by 2*segment_index+side"
// (spec.md 9).
type Port struct {
	Seg  int
	Side Side
}

func (p Port) flat() int {
	return 2*p.Seg + int(p.Side)
}

func (p Port) String() string {
	if p.Side == LeftSide {
		return "L" + strconv.Itoa(p.Seg)
	}
	return "R" + strconv.Itoa(p.Seg)
}

func chromPositions(bs []Breakend) map[string][]int64 {
	byChrom := map[string]map[int64]bool{}
	for _, b := range bs {
		set, ok := byChrom[b.Chr]
		if !ok {
			set = map[int64]bool{}
			byChrom[b.Chr] = set
		}
		set[b.Pos] = true
	}

	out := make(map[string][]int64, len(byChrom))
	var chroms []string
	for c := range byChrom {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)

	var g errgroup.Group
	positions := make([][]int64, len(chroms))
	for i, c := range chroms {
		i, c := i, c
		set := byChrom[c]
		g.Go(func() error {
			ps := make([]int64, 0, len(set))
			for p := range set {
				ps = append(ps, p)
			}
			sort.Slice(ps, func(a, b int) bool { return ps[a] < ps[b] })
			positions[i] = ps
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range chroms {
		out[c] = positions[i]
	}
	return out
}

// BuildRefSegments partitions every chromosome named by bs into contiguous
// ref segments at the observed breakend positions, plus a left stub at 0
// and a right stub padded past the last position by `pad`. Indices are
// assigned densely in ascending chromosome-name order (spec.md 4.2).
func BuildRefSegments(bs []Breakend) []RefSegment {
	byChrom := chromPositions(bs)

	var chroms []string
	for c := range byChrom {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)

	var out []RefSegment
	idx := 0
	for _, c := range chroms {
		positions := byChrom[c]
		boundaries := make([]int64, 0, len(positions)+2)
		boundaries = append(boundaries, 0)
		boundaries = append(boundaries, positions...)
		boundaries = append(boundaries, positions[len(positions)-1]+pad)

		for i := 0; i+1 < len(boundaries); i++ {
			out = append(out, RefSegment{
				Index: idx,
				Chr:   c,
				Start: boundaries[i],
				End:   boundaries[i+1],
			})
			idx++
		}
	}
	return out
}

// segLookup maps (chr, boundary position) to the unique ref segment whose
// Start or End equals that position, as required to map breakends to
// ports.
type segLookup struct {
	byStart map[string]map[int64]int
	byEnd   map[string]map[int64]int
}

func buildSegLookup(segs []RefSegment) segLookup {
	l := segLookup{
		byStart: map[string]map[int64]int{},
		byEnd:   map[string]map[int64]int{},
	}
	for _, s := range segs {
		if l.byStart[s.Chr] == nil {
			l.byStart[s.Chr] = map[int64]int{}
		}
		if l.byEnd[s.Chr] == nil {
			l.byEnd[s.Chr] = map[int64]int{}
		}
		l.byStart[s.Chr][s.Start] = s.Index
		l.byEnd[s.Chr][s.End] = s.Index
	}
	return l
}

// PortForBreakend maps a breakend to the port it severs: RIGHT breakends
// map to the R-port of the segment ending at their position, LEFT
// breakends to the L-port of the segment starting at their position
// (spec.md 4.2, "Mapping breakends to ports").
func PortForBreakend(l segLookup, b Breakend) (Port, bool) {
	if b.Dir == Right {
		idx, ok := l.byEnd[b.Chr][b.Pos]
		if !ok {
			return Port{}, false
		}
		return Port{Seg: idx, Side: RightSide}, true
	}
	if b.Dir == Left {
		idx, ok := l.byStart[b.Chr][b.Pos]
		if !ok {
			return Port{}, false
		}
		return Port{Seg: idx, Side: LeftSide}, true
	}
	return Port{}, false
}
