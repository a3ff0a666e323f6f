// Command svrecon reconstructs derivative chromosomes from one or more
// breakend VCF files and prints the resulting chains as a flat TSV.
package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/jgbaldwinbrown/lscan/pkg"
	bnd "github.com/jgbaldwinbrown/svrecon/breakend/pkg"
)

// Flags mirrors the teacher's flat, package-level Flags struct
// (go_pairviz/util.go, register/cmd/register.go) rather than a
// subcommand framework.
type Flags struct {
	VCF        string
	BatchFile  string
	CNSegments string
	Ploidy     float64
	Proximity  int64
	Cluster    bool
	Walk       bool
}

func GetFlags() Flags {
	var f Flags
	flag.StringVar(&f.VCF, "v", "", "Breakend VCF path (use - for stdin). Ignored if -b is set.")
	flag.StringVar(&f.BatchFile, "b", "", "Path to a batch file listing one VCF path per line.")
	flag.StringVar(&f.CNSegments, "c", "", "Optional CN-segment bedgraph path for TI-edge copy-number filtering.")
	flag.Float64Var(&f.Ploidy, "p", 2, "Background ploidy for the copy-number filter.")
	flag.Int64Var(&f.Proximity, "d", 5000, "Proximity window (bp) for breakend clustering.")
	flag.BoolVar(&f.Cluster, "cluster", false, "Print breakend clusters instead of reconstructed chains.")
	flag.BoolVar(&f.Walk, "walk", false, "Use the deterministic segment-graph walker instead of the chaining engine.")
	flag.Parse()
	return f
}

// batchPaths reads one VCF path per line from path, splitting on tabs so a
// trailing sample-name column (unused here, kept for forward compatibility
// with per-sample batch manifests) doesn't break the scan.
func batchPaths(path string) ([]string, error) {
	r, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()

	split := lscan.ByByte('\t')
	var out []string
	var fieldbuf []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		fieldbuf = lscan.SplitByFunc(fieldbuf[:0], line, split)
		if len(fieldbuf) == 0 {
			continue
		}
		out = append(out, fieldbuf[0])
	}
	return out, s.Err()
}

func vcfPaths(f Flags) ([]string, error) {
	if f.BatchFile != "" {
		return batchPaths(f.BatchFile)
	}
	if f.VCF == "" || f.VCF == "-" {
		return []string{""}, nil
	}
	return []string{f.VCF}, nil
}

func loadBreakends(path string) ([]bnd.Breakend, error) {
	if path == "" {
		return bnd.ParseVCF(os.Stdin)
	}
	return bnd.ParseVCFPath(path)
}

func run(f Flags, w *bufio.Writer) error {
	paths, e := vcfPaths(f)
	if e != nil {
		return e
	}

	opts := bnd.DefaultOptions()
	opts.BackgroundPloidy = f.Ploidy
	opts.ProximityThreshold = f.Proximity
	if f.CNSegments != "" {
		cn, e := bnd.ParseCNSegmentsPath(f.CNSegments)
		if e != nil {
			return e
		}
		opts.CNSegments = cn
	}

	for _, path := range paths {
		bs, e := loadBreakends(path)
		if e != nil {
			return e
		}

		if f.Cluster {
			clusters := bnd.Cluster(bs, opts.ProximityThreshold)
			if e := bnd.WriteClusters(w, clusters); e != nil {
				return e
			}
			continue
		}

		var chains []bnd.Chain
		if f.Walk {
			chains = bnd.Reconstruct(bs).Chains
		} else {
			chains = bnd.Derive(bs, opts)
		}
		labels := bnd.ClassifyAll(chains)
		if e := bnd.WriteChains(w, chains, labels); e != nil {
			return e
		}
	}
	return nil
}

func main() {
	f := GetFlags()

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	if e := run(f, stdout); e != nil {
		panic(e)
	}
}
