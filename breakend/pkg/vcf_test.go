package bnd

import (
	"strings"
	"testing"
)

func TestParseAlt(t *testing.T) {
	tests := []struct {
		Name    string
		Alt     string
		Dir     Dir
		MateChr string
		MatePos int64
		MateDir Dir
		Ok      bool
	}{
		{"t-bracket-right", "A]chr1:2000]", Right, "chr1", 2000, Left, true},
		{"t-bracket-left", "A[chr1:2000[", Right, "chr1", 2000, Right, true},
		{"bracket-t-left", "]chr1:2000]A", Left, "chr1", 2000, Left, true},
		{"bracket-t-right", "[chr1:2000[A", Left, "chr1", 2000, Right, true},
		{"malformed", "A", DirUnknown, "", 0, DirUnknown, false},
		{"mismatched-brackets", "A]chr1:2000[", DirUnknown, "", 0, DirUnknown, false},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			dir, chr, pos, mdir, ok := ParseAlt(test.Alt)
			if ok != test.Ok {
				t.Fatalf("ok %v != expect %v", ok, test.Ok)
			}
			if !ok {
				return
			}
			if dir != test.Dir || chr != test.MateChr || pos != test.MatePos || mdir != test.MateDir {
				t.Errorf("got (%v,%v,%v,%v) != expect (%v,%v,%v,%v)", dir, chr, pos, mdir, test.Dir, test.MateChr, test.MatePos, test.MateDir)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	info := ParseInfo("SVTYPE=BND;MATEID=b;EVENT=e1;JCN=1.5;FLAG")
	if info["SVTYPE"] != "BND" || info["MATEID"] != "b" || info["EVENT"] != "e1" || info["JCN"] != "1.5" {
		t.Errorf("info %+v missing expected keys", info)
	}
	if v, ok := info["FLAG"]; !ok || v != "" {
		t.Errorf("flag field FLAG = %q, ok=%v", v, ok)
	}
}

const delVCF = `#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
chr1	1000	a	N	N]chr1:2000]	.	.	SVTYPE=BND;MATEID=b;EVENT=e1
chr1	2000	b	N	]chr1:1000]N	.	.	SVTYPE=BND;MATEID=a;EVENT=e1
`

func TestParseVCF(t *testing.T) {
	bs, e := ParseVCF(strings.NewReader(delVCF))
	if e != nil {
		t.Fatalf("ParseVCF: %v", e)
	}
	if len(bs) != 2 {
		t.Fatalf("len(bs) = %d, want 2", len(bs))
	}
	if bs[0].Id != "a" || bs[0].Dir != Right || bs[0].MateId != "b" {
		t.Errorf("bs[0] = %+v", bs[0])
	}
	if bs[1].Id != "b" || bs[1].Dir != Left || bs[1].MateId != "a" {
		t.Errorf("bs[1] = %+v", bs[1])
	}
}
