package bnd

import (
	"bufio"
	"fmt"
	"io"
)

// WriteChains prints one line per walk segment across all chains, tagged
// with its chain index and the chain's overall label, in the flat TSV shape
// the teacher's tools print everywhere (pairviz.go's PrintChromStats,
// breakpoints.go's Fprintln): chain_idx, chr, start, end, orientation,
// is_closed, label.
func WriteChains(w io.Writer, chains []Chain, labels []Label) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for i, c := range chains {
		label := UNKNOWN
		if i < len(labels) {
			label = labels[i]
		}
		if len(c.Segments) == 0 {
			e0, e1 := c.OpenEnds[0], c.OpenEnds[1]
			_, e := fmt.Fprintf(bw, "%d\t%s\t%d\t%d\t-\t%v\t%s\n",
				i, e0.Chr, e0.Pos, e1.Pos, c.IsClosed, label)
			if e != nil {
				return e
			}
			continue
		}
		for _, s := range c.Segments {
			_, e := fmt.Fprintf(bw, "%d\t%s\t%d\t%d\t%s\t%v\t%s\n",
				i, s.Chr, s.Start, s.End, s.Orientation, c.IsClosed, label)
			if e != nil {
				return e
			}
		}
	}
	return nil
}

// WriteClusters prints one line per breakend id, tagged with its cluster
// index, in the same flat TSV convention as WriteChains.
func WriteClusters(w io.Writer, clusters [][]string) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for i, ids := range clusters {
		for _, id := range ids {
			if _, e := fmt.Fprintf(bw, "%d\t%s\n", i, id); e != nil {
				return e
			}
		}
	}
	return nil
}
