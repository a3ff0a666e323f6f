package bnd

import "sort"

// openEnd locates one of a chain's two open ends by breakend id.
type openEnd struct {
	chain *wchain
	slot  int // 0 = front, 1 = back
}

// wchain is the chaining engine's working representation of a partial or
// finished chain: an ordered run of walk segments bracketed by two open
// ends, each identified by the breakend id still looking for a splice.
type wchain struct {
	ends   [2]string
	segs   []WalkSegment
	closed bool
	dead   bool
}

func flip(o Orientation) Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

func reverseChain(c *wchain) {
	n := len(c.segs)
	rev := make([]WalkSegment, n)
	for i, s := range c.segs {
		s.Orientation = flip(s.Orientation)
		rev[n-1-i] = s
	}
	c.segs = rev
	c.ends[0], c.ends[1] = c.ends[1], c.ends[0]
}

// spliceSegment builds the ref segment inserted between two chaining-engine
// endpoints (spec.md 4.3, "Orientation of a spliced ref segment").
func spliceSegment(a, b Breakend) WalkSegment {
	if a.Chr != b.Chr {
		return WalkSegment{RefIndex: -1, Chr: a.Chr, Start: a.Pos, End: a.Pos, Orientation: Forward}
	}
	lo, hi := a, b
	if hi.Pos < lo.Pos {
		lo, hi = hi, lo
	}
	o := Forward
	if lo.Dir == Right && hi.Dir == Left {
		o = Reverse
	}
	return WalkSegment{RefIndex: -1, Chr: lo.Chr, Start: lo.Pos, End: hi.Pos, Orientation: o}
}

// chromosomeAdjacency ranks every breakend by its position within its own
// chromosome's (chr, pos, id) run, giving the ADJACENT priority test an O(1)
// lookup instead of a per-edge scan.
func chromosomeAdjacency(bs []Breakend) map[string]int {
	rank := map[string]int{}
	for _, run := range chromosomeRuns(sortedBreakends(bs)) {
		for i, b := range run {
			rank[b.Id] = i
		}
	}
	return rank
}

func edgeCounts(ti []Link) map[string]int {
	out := map[string]int{}
	for _, e := range ti {
		out[e.B1]++
		out[e.B2]++
	}
	return out
}

// scoreEdge assigns the priority class and tie-break score of spec.md 4.3
// to one TI edge.
func scoreEdge(idx map[string]Breakend, rank map[string]int, counts map[string]int, e Link) (Priority, float64) {
	a, b := idx[e.B1], idx[e.B2]

	if counts[e.B1] == 1 || counts[e.B2] == 1 {
		return PriorityOnly, 4
	}
	if abs(rank[e.B1]-rank[e.B2]) == 1 {
		return PriorityAdjacent, 3
	}
	if a.HasJcn && b.HasJcn {
		uncA, uncB := 0.5, 0.5
		if a.HasUnc {
			uncA = a.JcnUnc
		}
		if b.HasUnc {
			uncB = b.JcnUnc
		}
		limit := 0.5
		if s := uncA + uncB; s > limit {
			limit = s
		}
		if absf(a.Jcn-b.Jcn) < limit {
			return PriorityJcnMatch, 2
		}
	}
	dist := absf(float64(a.Pos - b.Pos))
	return PriorityNearest, 1 / (1 + dist)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// ScoreTIEdges returns ti annotated with the priority class and tie-break
// score of spec.md 4.3.
func ScoreTIEdges(bs []Breakend, ti []Link) []Link {
	idx := Index(bs)
	rank := chromosomeAdjacency(bs)
	counts := edgeCounts(ti)

	out := make([]Link, len(ti))
	for i, e := range ti {
		pr, score := scoreEdge(idx, rank, counts, e)
		e.Priority = pr
		e.Score = score
		out[i] = e
	}
	return out
}

// BuildChains runs the greedy splicing loop of spec.md 4.3: seed one
// partial chain per SV edge, then repeatedly splice or extend chains at
// their open ends using the highest-scoring still-usable TI edge.
func BuildChains(bs []Breakend, sv, ti []Link) []Chain {
	idx := Index(bs)
	scored := ScoreTIEdges(bs, ti)

	var chains []*wchain
	usable := map[string]*openEnd{}
	for _, e := range sv {
		c := &wchain{ends: [2]string{e.B1, e.B2}}
		chains = append(chains, c)
		usable[e.B1] = &openEnd{chain: c, slot: 0}
		usable[e.B2] = &openEnd{chain: c, slot: 1}
	}

	type candidate struct {
		edge  Link
		order int
	}

	// used marks TI edges already spliced in, so an extension whose far
	// endpoint becomes a new open end cannot pick the same edge again.
	used := make([]bool, len(scored))
	for {
		var cands []candidate
		for i, e := range scored {
			if used[i] {
				continue
			}
			if usable[e.B1] == nil && usable[e.B2] == nil {
				continue
			}
			cands = append(cands, candidate{edge: e, order: i})
		}
		if len(cands) == 0 {
			break
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].edge.Score != cands[j].edge.Score {
				return cands[i].edge.Score > cands[j].edge.Score
			}
			return cands[i].order < cands[j].order
		})

		applied := false
		for _, cand := range cands {
			e := cand.edge
			end1, ok1 := usable[e.B1]
			end2, ok2 := usable[e.B2]
			if !ok1 && !ok2 {
				continue
			}
			seg := spliceSegment(idx[e.B1], idx[e.B2])

			switch {
			case ok1 && ok2 && end1.chain == end2.chain:
				c := end1.chain
				if end1.slot == 0 {
					c.segs = append([]WalkSegment{seg}, c.segs...)
				} else {
					c.segs = append(c.segs, seg)
				}
				c.closed = true
				delete(usable, e.B1)
				delete(usable, e.B2)
			case ok1 && ok2:
				x, y := end1.chain, end2.chain
				if end1.slot == 0 {
					reverseChain(x)
				}
				if end2.slot == 1 {
					reverseChain(y)
				}
				merged := &wchain{}
				merged.segs = append(merged.segs, x.segs...)
				merged.segs = append(merged.segs, seg)
				merged.segs = append(merged.segs, y.segs...)
				merged.ends = [2]string{x.ends[0], y.ends[1]}
				x.dead = true
				y.dead = true
				delete(usable, e.B1)
				delete(usable, e.B2)
				if merged.ends[0] == merged.ends[1] {
					merged.closed = true
				} else {
					usable[merged.ends[0]] = &openEnd{chain: merged, slot: 0}
					usable[merged.ends[1]] = &openEnd{chain: merged, slot: 1}
				}
				chains = append(chains, merged)
			default:
				var end *openEnd
				var farId string
				if ok1 {
					end, farId = end1, e.B2
				} else {
					end, farId = end2, e.B1
				}
				c := end.chain
				if end.slot == 0 {
					c.segs = append([]WalkSegment{seg}, c.segs...)
				} else {
					c.segs = append(c.segs, seg)
				}
				delete(usable, e.B1)
				delete(usable, e.B2)
				c.ends[end.slot] = farId
				usable[farId] = &openEnd{chain: c, slot: end.slot}
			}
			used[cand.order] = true
			applied = true
			break
		}
		if !applied {
			break
		}
	}

	var out []Chain
	for _, c := range chains {
		if c.dead {
			continue
		}
		out = append(out, Chain{
			Segments: c.segs,
			IsClosed: c.closed,
			OpenEnds: [2]OpenEnd{toOpenEnd(idx[c.ends[0]]), toOpenEnd(idx[c.ends[1]])},
		})
	}
	return out
}

func toOpenEnd(b Breakend) OpenEnd {
	return OpenEnd{Chr: b.Chr, Pos: b.Pos, Dir: b.Dir}
}

// Derive is the chaining-path library entry point of spec.md 6.
func Derive(bs []Breakend, opts Options) []Chain {
	sv, ti, _ := BuildEdges(bs)
	ti = FilterTIByCN(bs, ti, opts)
	return BuildChains(bs, sv, ti)
}
