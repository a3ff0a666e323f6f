package bnd

import (
	"bufio"
	"strings"
	"testing"
)

const cnBedgraph = "chr1\t0\t1000\t2,1\nchr1\t1000\t2000\t1,1\n"

func TestParseCNSegments(t *testing.T) {
	segs, e := ParseCNSegments(bufio.NewReader(strings.NewReader(cnBedgraph)))
	if e != nil {
		t.Fatalf("ParseCNSegments: %v", e)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	if segs[0].Chr != "chr1" || segs[0].Start != 0 || segs[0].End != 1000 || segs[0].MajorCN != 2 || segs[0].MinorCN != 1 {
		t.Errorf("segs[0] = %+v", segs[0])
	}
	if segs[1].MajorCN != 1 || segs[1].MinorCN != 1 {
		t.Errorf("segs[1] = %+v", segs[1])
	}
}
