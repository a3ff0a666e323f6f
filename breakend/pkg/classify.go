package bnd

// endAt is one open end of a chain: its chromosome, genomic position (used
// only to decide which end is "lower"), and facing direction.
type endAt struct {
	chr string
	pos int64
	dir Dir
}

// chainEnds derives the two open ends of a chain with 0 or 1 segments. For
// a single segment, the open ends are its own two boundaries, whose
// position ordering depends on orientation. For zero segments (an
// unspliced chainer seed), the ends come straight from the breakends the
// chainer recorded in Chain.OpenEnds.
func chainEnds(c Chain) (a, b endAt, ok bool) {
	switch len(c.Segments) {
	case 0:
		e0, e1 := c.OpenEnds[0], c.OpenEnds[1]
		if e0.Chr == "" && e1.Chr == "" {
			return endAt{}, endAt{}, false
		}
		return endAt{e0.Chr, e0.Pos, e0.Dir}, endAt{e1.Chr, e1.Pos, e1.Dir}, true
	case 1:
		s := c.Segments[0]
		frontDir, backDir := Left, Right
		frontPos, backPos := s.Start, s.End
		if s.Orientation == Reverse {
			frontDir, backDir = Right, Left
			frontPos, backPos = s.End, s.Start
		}
		return endAt{s.Chr, frontPos, frontDir}, endAt{s.Chr, backPos, backDir}, true
	default:
		return endAt{}, endAt{}, false
	}
}

// junctionShape classifies the junction between two consecutive chain
// segments by the breakend-direction pair it reconstructs: the exit side of
// the first segment paired with the entry side of the second. A FORWARD
// segment exits RIGHT and enters LEFT; a REVERSE segment exits LEFT and
// enters RIGHT (PortForBreakend's RIGHT/LEFT mapping run in reverse).
// FORWARD->FORWARD therefore reconstructs a RIGHT,LEFT junction (DEL-shaped),
// REVERSE->REVERSE a LEFT,RIGHT junction (DUP-shaped), and any orientation
// change an equal-direction junction (INV-shaped).
func junctionShape(a, b Orientation) Label {
	switch {
	case a == Forward && b == Forward:
		return DEL
	case a == Reverse && b == Reverse:
		return DUP
	default:
		return INV
	}
}

// Classify labels a single chain per the table in spec.md 4.6.
func Classify(c Chain) Label {
	if c.IsClosed {
		return COMPLEX
	}

	n := len(c.Segments)

	if n <= 1 {
		a, b, ok := chainEnds(c)
		if !ok || a.chr != b.chr {
			return TRA
		}
		lower, upper := a, b
		if upper.pos < lower.pos {
			lower, upper = upper, lower
		}
		switch {
		case lower.dir == Right && upper.dir == Left:
			return DEL
		case lower.dir == Left && upper.dir == Right:
			return DUP
		case lower.dir == upper.dir:
			return INV
		default:
			return TRA
		}
	}

	chroms := map[string]bool{}
	for _, s := range c.Segments {
		chroms[s.Chr] = true
	}

	if len(chroms) > 1 {
		if n <= 2 {
			return TRA
		}
		return COMPLEX
	}

	// Same chromosome, exactly two segments: the table maps any REVERSE
	// segment to INV (FORWARD,REVERSE / REVERSE,FORWARD / REVERSE,REVERSE
	// all count) and only FORWARD,FORWARD to DEL.
	if n == 2 {
		if c.Segments[0].Orientation == Reverse || c.Segments[1].Orientation == Reverse {
			return INV
		}
		return DEL
	}

	// Same chromosome, more than two segments: walk every junction's
	// shape. A chain where every junction reconstructs the same shape is
	// that shape (DEL/DUP/INV); a chain that mixes junction shapes is
	// COMPLEX.
	shape := junctionShape(c.Segments[0].Orientation, c.Segments[1].Orientation)
	for i := 1; i+1 < n; i++ {
		if junctionShape(c.Segments[i].Orientation, c.Segments[i+1].Orientation) != shape {
			return COMPLEX
		}
	}
	return shape
}

// ClassifyAll labels every chain in a result, preserving order.
func ClassifyAll(chains []Chain) []Label {
	out := make([]Label, len(chains))
	for i, c := range chains {
		out[i] = Classify(c)
	}
	return out
}
