package bnd

import (
	"strings"
	"testing"
)

const derivePipelineVCF = `#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
chr1	1000	a	N	N]chr1:2000]	.	.	SVTYPE=BND;MATEID=b;EVENT=e1
chr1	2000	b	N	]chr1:1000]N	.	.	SVTYPE=BND;MATEID=a;EVENT=e1
`

// TestDerivePipeline runs the whole library surface end to end: parse,
// derive chains, classify, and print, the way cmd/svrecon does.
func TestDerivePipeline(t *testing.T) {
	bs, e := ParseVCF(strings.NewReader(derivePipelineVCF))
	if e != nil {
		t.Fatalf("ParseVCF: %v", e)
	}
	if len(bs) != 2 {
		t.Fatalf("len(bs) = %d, want 2", len(bs))
	}

	chains := Derive(bs, DefaultOptions())
	if len(chains) != 1 {
		t.Fatalf("len(chains) = %d, want 1", len(chains))
	}

	labels := ClassifyAll(chains)

	var out strings.Builder
	if e := WriteChains(&out, chains, labels); e != nil {
		t.Fatalf("WriteChains: %v", e)
	}
	if out.Len() == 0 {
		t.Errorf("expected non-empty output")
	}
}

func TestDeriveThenClusterConsistentIds(t *testing.T) {
	bs, e := ParseVCF(strings.NewReader(derivePipelineVCF))
	if e != nil {
		t.Fatalf("ParseVCF: %v", e)
	}
	clusters := Cluster(bs, DefaultOptions().ProximityThreshold)
	if len(clusters) != 1 || len(clusters[0]) != 2 {
		t.Fatalf("clusters = %+v, want one cluster of {a,b} via shared event tag", clusters)
	}
}
