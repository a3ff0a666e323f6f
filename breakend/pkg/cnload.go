package bnd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/jgbaldwinbrown/iter"
)

// cnFields is the payload of one CN-segment bedgraph row beyond chr/start/end:
// major and minor copy number, comma-joined in column 4.
type cnFields struct {
	Major float64
	Minor float64
}

func parseCNFields(fields []string) (cnFields, error) {
	h := handle("parseCNFields: %w")
	if len(fields) < 1 {
		return cnFields{}, h(fmt.Errorf("missing major,minor column"))
	}
	parts := strings.SplitN(fields[0], ",", 2)
	if len(parts) != 2 {
		return cnFields{}, h(fmt.Errorf("expected major,minor, got %q", fields[0]))
	}
	major, e := strconv.ParseFloat(parts[0], 64)
	if e != nil {
		return cnFields{}, h(e)
	}
	minor, e := strconv.ParseFloat(parts[1], 64)
	if e != nil {
		return cnFields{}, h(e)
	}
	return cnFields{Major: major, Minor: minor}, nil
}

// ParseCNSegments reads a 4-column chr/start/end/major,minor bedgraph stream
// into CNSegment values, the concrete file format spec.md 4.4 assumes CN
// segments already arrive in.
func ParseCNSegments(r *bufio.Reader) ([]CNSegment, error) {
	bed, e := iter.Collect[fastats.BedEntry[cnFields]](fastats.ParseBed[cnFields](r, parseCNFields))
	if e != nil {
		return nil, handle("ParseCNSegments: %w")(e)
	}
	out := make([]CNSegment, len(bed))
	for i, entry := range bed {
		out[i] = CNSegment{
			Chr:     entry.Chr,
			Start:   int64(entry.Start),
			End:     int64(entry.End),
			MajorCN: entry.Fields.Major,
			MinorCN: entry.Fields.Minor,
		}
	}
	return out, nil
}

// ParseCNSegmentsPath opens path (transparently decompressing .gz) and reads
// it as a CN-segment bedgraph.
func ParseCNSegmentsPath(path string) ([]CNSegment, error) {
	h := handle("ParseCNSegmentsPath: %w")
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, h(e)
	}
	defer r.Close()
	return ParseCNSegments(bufio.NewReader(r))
}
