package bnd

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fasttsv"
	"github.com/jgbaldwinbrown/lscan/pkg"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// altSuffixRe matches t[p:q[ and t]p:q] (this breakend faces RIGHT).
var altSuffixRe = regexp.MustCompile(`^[A-Za-z]+([\[\]])([^:\[\]]+):(\d+)([\[\]])$`)

// altPrefixRe matches ]p:q]t and [p:q[t (this breakend faces LEFT).
var altPrefixRe = regexp.MustCompile(`^([\[\]])([^:\[\]]+):(\d+)([\[\]])[A-Za-z]+$`)

func mateDirFromBracket(b string) Dir {
	if b == "[" {
		return Right
	}
	return Left
}

// ParseAlt decodes a VCF breakend ALT field per the VCF 4.3 BND grammar.
// It returns ok=false for any ALT that does not match one of the four
// breakend patterns (malformed ALTs are a skippable fact, not an error).
func ParseAlt(alt string) (dir Dir, mateChr string, matePos int64, mateDir Dir, ok bool) {
	if m := altSuffixRe.FindStringSubmatch(alt); m != nil {
		if m[1] != m[4] {
			return
		}
		pos, e := strconv.ParseInt(m[3], 10, 64)
		if e != nil {
			return
		}
		return Right, m[2], pos, mateDirFromBracket(m[1]), true
	}
	if m := altPrefixRe.FindStringSubmatch(alt); m != nil {
		if m[1] != m[4] {
			return
		}
		pos, e := strconv.ParseInt(m[3], 10, 64)
		if e != nil {
			return
		}
		return Left, m[2], pos, mateDirFromBracket(m[1]), true
	}
	return
}

var infoSplit = lscan.ByByte(';')
var kvSplit = lscan.ByByte('=')

// ParseInfo splits a VCF INFO column into a key/value map. Flag fields
// with no '=' are mapped to the empty string.
func ParseInfo(raw string) map[string]string {
	out := map[string]string{}
	if raw == "" || raw == "." {
		return out
	}
	var fieldbuf []string
	fieldbuf = lscan.SplitByFunc(fieldbuf, raw, infoSplit)
	var kvbuf []string
	for _, field := range fieldbuf {
		kvbuf = lscan.SplitByFunc(kvbuf[:0], field, kvSplit)
		if len(kvbuf) == 0 {
			continue
		}
		if len(kvbuf) == 1 {
			out[kvbuf[0]] = ""
			continue
		}
		out[kvbuf[0]] = strings.Join(kvbuf[1:], "=")
	}
	return out
}

// ParseVCFLine converts one tab-split VCF data line into a Breakend. It
// returns ok=false for any line that is not a well-formed SVTYPE=BND
// record with a recognized ALT pattern.
func ParseVCFLine(fields []string) (b Breakend, ok bool) {
	if len(fields) < 8 {
		return
	}
	if len(fields[0]) > 0 && fields[0][0] == '#' {
		return
	}

	info := ParseInfo(fields[7])
	if info["SVTYPE"] != "BND" {
		return
	}

	pos, e := strconv.ParseInt(fields[1], 10, 64)
	if e != nil {
		return
	}

	dir, mateChr, matePos, mateDir, altOk := ParseAlt(fields[4])
	if !altOk {
		return
	}

	b.Id = fields[2]
	b.Chr = fields[0]
	b.Pos = pos
	b.Dir = dir
	b.MateId = info["MATEID"]
	b.MateChr = mateChr
	b.MatePos = matePos
	b.MateDir = mateDir
	b.Event = info["EVENT"]

	if jcnStr, hasJcn := info["JCN"]; hasJcn {
		if jcn, e := strconv.ParseFloat(jcnStr, 64); e == nil {
			b.Jcn = jcn
			b.HasJcn = true
		}
	}
	if uncStr, hasUnc := info["JCNUNCERT"]; hasUnc {
		if unc, e := strconv.ParseFloat(uncStr, 64); e == nil {
			b.JcnUnc = unc
			b.HasUnc = true
		}
	}

	return b, true
}

// ParseVCF reads breakend records out of a VCF stream, skipping header
// lines and any record that is not a recognized SVTYPE=BND breakend.
func ParseVCF(r io.Reader) ([]Breakend, error) {
	var out []Breakend
	s := fasttsv.NewScanner(r)
	for s.Scan() {
		b, ok := ParseVCFLine(s.Line())
		if !ok {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseVCFPath opens path (transparently decompressing .gz) and parses it
// as a breakend VCF.
func ParseVCFPath(path string) ([]Breakend, error) {
	h := handle("ParseVCFPath: %w")
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, h(e)
	}
	defer r.Close()
	return ParseVCF(r)
}

// Index builds a lookup from breakend id to breakend.
func Index(bs []Breakend) map[string]Breakend {
	out := make(map[string]Breakend, len(bs))
	for _, b := range bs {
		out[b.Id] = b
	}
	return out
}
