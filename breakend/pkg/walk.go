package bnd

import "sort"

// portGraph is the flat, array-backed wiring described in spec.md 9: one
// slot per port, holding the flat index of the port it connects to, or -1
// if the port is free. explicit marks ports a boundary rule actually
// addressed (a true chromosome stub, a severed junction, or a reference
// adjacency): a port that no rule ever touches is not a junction and not a
// chain end, just a side of a segment the opposite boundary claimed
// entirely, and must not seed a chain of its own.
type portGraph struct {
	conn     []int
	explicit []bool
}

func newPortGraph(numSegs int) *portGraph {
	g := &portGraph{
		conn:     make([]int, 2*numSegs),
		explicit: make([]bool, 2*numSegs),
	}
	for i := range g.conn {
		g.conn[i] = -1
	}
	return g
}

func (g *portGraph) connect(a, b Port) {
	g.conn[a.flat()] = b.flat()
	g.explicit[a.flat()] = true
}

func (g *portGraph) mark(p Port) {
	g.explicit[p.flat()] = true
}

func (g *portGraph) free(p Port) bool {
	return g.explicit[p.flat()] && g.conn[p.flat()] == -1
}

func (g *portGraph) connected(p Port) bool {
	return g.conn[p.flat()] != -1
}

func (g *portGraph) next(p Port) (Port, bool) {
	f := g.conn[p.flat()]
	if f == -1 {
		return Port{}, false
	}
	return Port{Seg: f / 2, Side: Side(f % 2)}, true
}

func opposite(s Side) Side {
	if s == LeftSide {
		return RightSide
	}
	return LeftSide
}

// chromSegRuns groups a dense-index ref segment slice into contiguous
// per-chromosome runs. Segments are already laid out in chromosome-name
// order by BuildRefSegments, so a single linear pass suffices.
func chromSegRuns(segs []RefSegment) [][]RefSegment {
	var runs [][]RefSegment
	start := 0
	for start < len(segs) {
		end := start
		for end < len(segs) && segs[end].Chr == segs[start].Chr {
			end++
		}
		runs = append(runs, segs[start:end])
		start = end
	}
	return runs
}

// boundaryBreakends indexes breakends by (Chr, Pos) for quick lookup of
// who sits on a given segment boundary.
func boundaryBreakends(bs []Breakend) map[string]map[int64][]Breakend {
	out := map[string]map[int64][]Breakend{}
	for _, b := range bs {
		if out[b.Chr] == nil {
			out[b.Chr] = map[int64][]Breakend{}
		}
		out[b.Chr][b.Pos] = append(out[b.Chr][b.Pos], b)
	}
	for _, byPos := range out {
		for pos, group := range byPos {
			sort.Slice(group, func(i, j int) bool { return group[i].Id < group[j].Id })
			byPos[pos] = group
		}
	}
	return out
}

func firstWithDir(group []Breakend, d Dir) (Breakend, bool) {
	for _, b := range group {
		if b.Dir == d {
			return b, true
		}
	}
	return Breakend{}, false
}

// matePort resolves the port that b's recorded mate occupies, by looking
// the mate up by id and re-deriving its port from its own fields. An
// unresolved mate id leaves the port free (spec.md 4.2, 7).
func matePort(lookup segLookup, idx map[string]Breakend, b Breakend) (Port, bool) {
	mate, ok := idx[b.MateId]
	if !ok {
		return Port{}, false
	}
	return PortForBreakend(lookup, mate)
}

// wirePorts applies the boundary wiring rules of spec.md 4.2 to every
// interior boundary between consecutive ref segments on each chromosome.
func wirePorts(segs []RefSegment, bs []Breakend) *portGraph {
	g := newPortGraph(len(segs))
	lookup := buildSegLookup(segs)
	idx := Index(bs)
	byPos := boundaryBreakends(bs)

	for _, run := range chromSegRuns(segs) {
		g.mark(Port{Seg: run[0].Index, Side: LeftSide})
		g.mark(Port{Seg: run[len(run)-1].Index, Side: RightSide})

		for i := 0; i+1 < len(run); i++ {
			left, right := run[i], run[i+1]
			boundaryPos := left.End

			group := byPos[left.Chr][boundaryPos]
			rightB, severRight := firstWithDir(group, Right)
			leftB, severLeft := firstWithDir(group, Left)

			severedAny := false

			if severRight {
				severedAny = true
				leftRPort := Port{Seg: left.Index, Side: RightSide}
				g.mark(leftRPort)
				if mp, ok := matePort(lookup, idx, rightB); ok {
					g.connect(leftRPort, mp)
				}
			}
			if severLeft {
				severedAny = true
				rightLPort := Port{Seg: right.Index, Side: LeftSide}
				g.mark(rightLPort)
				if mp, ok := matePort(lookup, idx, leftB); ok {
					g.connect(rightLPort, mp)
				}
			}
			if !severedAny {
				leftRPort := Port{Seg: left.Index, Side: RightSide}
				rightLPort := Port{Seg: right.Index, Side: LeftSide}
				g.connect(leftRPort, rightLPort)
				g.connect(rightLPort, leftRPort)
			}
		}
	}
	return g
}

func toWalkSegment(seg RefSegment, side Side) WalkSegment {
	o := Forward
	if side == RightSide {
		o = Reverse
	}
	return WalkSegment{
		RefIndex:    seg.Index,
		Chr:         seg.Chr,
		Start:       seg.Start,
		End:         seg.End,
		Orientation: o,
	}
}

// freePortOrder enumerates every free port in the deterministic order
// spec.md 4.2 requires: all LEFT ports first, then all RIGHT ports, each
// group sorted by ascending segment index.
func freePortOrder(g *portGraph, numSegs int) []Port {
	var out []Port
	for i := 0; i < numSegs; i++ {
		p := Port{Seg: i, Side: LeftSide}
		if g.free(p) {
			out = append(out, p)
		}
	}
	for i := 0; i < numSegs; i++ {
		p := Port{Seg: i, Side: RightSide}
		if g.free(p) {
			out = append(out, p)
		}
	}
	return out
}

// Reconstruct is the deterministic segment-graph walker: it segments the
// reference, wires ports by junction and adjacency rules, and traverses
// free ports (then closed loops) to emit chains and orphan indices.
func Reconstruct(bs []Breakend) Result {
	segs := BuildRefSegments(bs)
	g := wirePorts(segs, bs)

	visited := make([]bool, len(segs))
	var chains []Chain

	for _, start := range freePortOrder(g, len(segs)) {
		if visited[start.Seg] {
			continue
		}
		var chain []WalkSegment
		cur := start
		for {
			i := cur.Seg
			if visited[i] {
				break
			}
			visited[i] = true
			chain = append(chain, toWalkSegment(segs[i], cur.Side))

			exit := Port{Seg: i, Side: opposite(cur.Side)}
			next, ok := g.next(exit)
			if !ok {
				break
			}
			cur = next
		}
		if len(chain) > 0 {
			chains = append(chains, Chain{Segments: chain})
		}
	}

	// Closed loops: every remaining segment with at least one connected
	// port belongs to a cycle in the port graph (spec.md 4.2, "Closed
	// loops"). A segment with neither port ever connected was never part
	// of any junction or adjacency and is a plain orphan, not a cycle.
	for i := 0; i < len(segs); i++ {
		if visited[i] {
			continue
		}
		if !g.connected(Port{Seg: i, Side: LeftSide}) && !g.connected(Port{Seg: i, Side: RightSide}) {
			continue
		}
		start := Port{Seg: i, Side: LeftSide}
		if !g.connected(start) {
			start = Port{Seg: i, Side: RightSide}
		}
		var chain []WalkSegment
		cur := start
		closed := false
		for {
			si := cur.Seg
			if visited[si] {
				closed = si == start.Seg
				break
			}
			visited[si] = true
			chain = append(chain, toWalkSegment(segs[si], cur.Side))

			exit := Port{Seg: si, Side: opposite(cur.Side)}
			next, ok := g.next(exit)
			if !ok {
				break
			}
			cur = next
		}
		if len(chain) > 0 {
			chains = append(chains, Chain{Segments: chain, IsClosed: closed})
		}
	}

	var orphans []int
	for i := range segs {
		if !visited[i] {
			orphans = append(orphans, i)
		}
	}

	return Result{Chains: chains, OrphanIndices: orphans, RefSegments: segs}
}
