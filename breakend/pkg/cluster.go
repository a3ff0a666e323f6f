package bnd

import "sort"

// clusterUnion is a small union-find over breakend ids, used to fold event
// tags, mate linkage, and proximity windows into one partition (spec.md
// 4.5).
type clusterUnion struct {
	parent map[string]string
}

func newClusterUnion(bs []Breakend) *clusterUnion {
	u := &clusterUnion{parent: make(map[string]string, len(bs))}
	for _, b := range bs {
		u.parent[b.Id] = b.Id
	}
	return u
}

func (u *clusterUnion) find(x string) string {
	for u.parent[x] != x {
		x = u.parent[x]
	}
	return x
}

func (u *clusterUnion) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}

// Cluster groups breakends by event tag, then mate linkage, then
// same-chromosome proximity (spec.md 4.5). It returns clusters as slices of
// breakend ids, each sorted, the clusters themselves ordered by their
// lexicographically smallest member id.
func Cluster(bs []Breakend, proximityThreshold int64) [][]string {
	u := newClusterUnion(bs)

	byEvent := map[string][]string{}
	for _, b := range bs {
		if b.Event != "" {
			byEvent[b.Event] = append(byEvent[b.Event], b.Id)
		}
	}
	for _, ids := range byEvent {
		for i := 1; i < len(ids); i++ {
			u.union(ids[0], ids[i])
		}
	}

	idx := Index(bs)
	for _, b := range bs {
		if b.MateId != "" {
			if _, ok := idx[b.MateId]; ok {
				u.union(b.Id, b.MateId)
			}
		}
	}

	for _, run := range chromosomeRuns(sortedBreakends(bs)) {
		for i := 0; i < len(run); i++ {
			for j := i + 1; j < len(run); j++ {
				if run[j].Pos-run[i].Pos > proximityThreshold {
					break
				}
				u.union(run[i].Id, run[j].Id)
			}
		}
	}

	groups := map[string][]string{}
	for _, b := range bs {
		root := u.find(b.Id)
		groups[root] = append(groups[root], b.Id)
	}

	var out [][]string
	for _, ids := range groups {
		sort.Strings(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
