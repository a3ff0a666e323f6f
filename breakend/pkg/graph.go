package bnd

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// sortedBreakends returns bs sorted by (Chr, Pos, Id), the tie-break order
// the specification requires for every deterministic step downstream.
func sortedBreakends(bs []Breakend) []Breakend {
	out := append([]Breakend{}, bs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chr != out[j].Chr {
			return out[i].Chr < out[j].Chr
		}
		if out[i].Pos != out[j].Pos {
			return out[i].Pos < out[j].Pos
		}
		return out[i].Id < out[j].Id
	})
	return out
}

// facesInward reports whether a (at the lower position) and b (at the
// higher position) form a templated-insertion pair: a faces LEFT and b
// faces RIGHT.
func facesInward(a, b Breakend) bool {
	return a.Dir == Left && b.Dir == Right
}

// facesOutward reports whether a (at the lower position) and b (at the
// higher position) form a deletion-bridge pair: a faces RIGHT and b faces
// LEFT.
func facesOutward(a, b Breakend) bool {
	return a.Dir == Right && b.Dir == Left
}

func isMatePair(a, b Breakend) bool {
	return a.MateId == b.Id || b.MateId == a.Id
}

// BuildSVEdges emits one SV edge per resolved mate pair, each pair exactly
// once, in (Chr, Pos, Id) order of the lower-sorted endpoint.
func BuildSVEdges(bs []Breakend) []Link {
	idx := Index(bs)
	sorted := sortedBreakends(bs)
	seen := map[[2]string]bool{}
	var out []Link
	for _, b := range sorted {
		mate, ok := idx[b.MateId]
		if !ok {
			continue
		}
		if mate.Chr != b.MateChr || mate.Pos != b.MatePos || mate.Dir != b.MateDir {
			continue
		}
		key := pairKey(b.Id, mate.Id)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Link{Kind: SVLink, B1: b.Id, B2: mate.Id})
	}
	return out
}

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// chromosomeRuns splits a (Chr, Pos, Id)-sorted breakend slice into
// contiguous per-chromosome runs, in ascending chromosome-name order.
func chromosomeRuns(sorted []Breakend) [][]Breakend {
	var runs [][]Breakend
	start := 0
	for start < len(sorted) {
		end := start
		for end < len(sorted) && sorted[end].Chr == sorted[start].Chr {
			end++
		}
		runs = append(runs, sorted[start:end])
		start = end
	}
	return runs
}

// buildFacingEdges is the shared scan behind BuildTIEdges and BuildDBEdges:
// for every same-chromosome pair of non-mate breakends ordered by
// ascending position, emit an edge of kind `kind` when `facing` holds.
// Per-chromosome scans run concurrently (spec.md 5 permits this as long as
// the final ordering stays the deterministic lexicographic-chromosome
// order); each goroutine only ever writes its own output slot.
func buildFacingEdges(bs []Breakend, kind LinkKind, facing func(a, b Breakend) bool) []Link {
	runs := chromosomeRuns(sortedBreakends(bs))
	perChrom := make([][]Link, len(runs))

	var g errgroup.Group
	for i, chrom := range runs {
		i, chrom := i, chrom
		g.Go(func() error {
			var edges []Link
			for a := 0; a < len(chrom); a++ {
				for b := a + 1; b < len(chrom); b++ {
					x, y := chrom[a], chrom[b]
					if isMatePair(x, y) {
						continue
					}
					if facing(x, y) {
						edges = append(edges, Link{Kind: kind, B1: x.Id, B2: y.Id})
					}
				}
			}
			perChrom[i] = edges
			return nil
		})
	}
	_ = g.Wait()

	var out []Link
	for _, edges := range perChrom {
		out = append(out, edges...)
	}
	return out
}

// BuildTIEdges emits one templated-insertion edge for every same-chromosome,
// non-mate, facing-inward breakend pair (spec.md 4.1).
func BuildTIEdges(bs []Breakend) []Link {
	return buildFacingEdges(bs, TILink, facesInward)
}

// BuildDBEdges emits one deletion-bridge edge for every same-chromosome,
// non-mate, facing-outward breakend pair (spec.md 4.1).
func BuildDBEdges(bs []Breakend) []Link {
	return buildFacingEdges(bs, DBLink, facesOutward)
}

// BuildEdges runs all three edge builders and returns their results
// together, the contract the chaining engine consumes.
func BuildEdges(bs []Breakend) (sv, ti, db []Link) {
	return BuildSVEdges(bs), BuildTIEdges(bs), BuildDBEdges(bs)
}
