package bnd

import "testing"

func findCluster(clusters [][]string, id string) []string {
	for _, c := range clusters {
		for _, x := range c {
			if x == id {
				return c
			}
		}
	}
	return nil
}

func TestClusterByEvent(t *testing.T) {
	bs := []Breakend{
		{Id: "a", Chr: "chr1", Pos: 100, Event: "e1"},
		{Id: "b", Chr: "chr2", Pos: 9000000, Event: "e1"},
		{Id: "c", Chr: "chr3", Pos: 1, Event: "e2"},
	}
	clusters := Cluster(bs, 5000)
	ca := findCluster(clusters, "a")
	if len(ca) != 2 {
		t.Fatalf("cluster(a) = %v, want {a,b} via shared event tag", ca)
	}
	cc := findCluster(clusters, "c")
	if len(cc) != 1 {
		t.Errorf("cluster(c) = %v, want singleton", cc)
	}
}

func TestClusterByMate(t *testing.T) {
	bs := []Breakend{
		{Id: "a", Chr: "chr1", Pos: 100, MateId: "b"},
		{Id: "b", Chr: "chr2", Pos: 9000000, MateId: "a"},
	}
	clusters := Cluster(bs, 5000)
	if len(clusters) != 1 || len(clusters[0]) != 2 {
		t.Fatalf("clusters = %+v, want one cluster of 2 via mate linkage", clusters)
	}
}

func TestClusterByProximity(t *testing.T) {
	bs := []Breakend{
		{Id: "a", Chr: "chr1", Pos: 100},
		{Id: "b", Chr: "chr1", Pos: 3000},
		{Id: "c", Chr: "chr1", Pos: 20000},
	}
	clusters := Cluster(bs, 5000)
	ca := findCluster(clusters, "a")
	if len(ca) != 2 {
		t.Fatalf("cluster(a) = %v, want {a,b}: within 5000bp on chr1", ca)
	}
	cc := findCluster(clusters, "c")
	if len(cc) != 1 {
		t.Errorf("cluster(c) = %v, want singleton: farther than 5000bp", cc)
	}
}

func TestClusterUnresolvedMateIgnored(t *testing.T) {
	bs := []Breakend{
		{Id: "a", Chr: "chr1", Pos: 100, MateId: "missing"},
	}
	clusters := Cluster(bs, 5000)
	if len(clusters) != 1 || len(clusters[0]) != 1 {
		t.Errorf("clusters = %+v, want one singleton", clusters)
	}
}
