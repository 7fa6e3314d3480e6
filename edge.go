package lzopt

// An Edge is an LZ77 phrase referring to text positions. D is the copy
// distance in bytes (0 if the edge is a literal run). Ell is the length in
// bytes (always >= 1 for a non-sentinel edge). CostID is an opaque index
// into a cost model's matrix, meaningless for literal edges.
type Edge struct {
	D      int
	Ell    int
	CostID int
}

// IsLiteral reports whether e is a literal run rather than a copy.
func (e Edge) IsLiteral() bool { return e.D == 0 }

// A Parsing is a sequence of edges tiling [0, n) for some text of length n.
// By format convention the first edge is always a literal.
type Parsing []Edge

// Len returns the sum of Ell over all edges, i.e. the length of the text
// the parsing tiles.
func (p Parsing) Len() int {
	n := 0
	for _, e := range p {
		n += e.Ell
	}
	return n
}

// Valid checks the well-formedness invariants from the data model: the
// parsing tiles [0, n), every copy edge has 0 < d <= position, and the
// first edge (if any) is a literal. It does not check that copy edges
// actually reproduce bytes of text; use VerifyAgainst for that.
func (p Parsing) Valid(n int) bool {
	if len(p) == 0 {
		return n == 0
	}
	if !p[0].IsLiteral() {
		return false
	}
	pos := 0
	for _, e := range p {
		if e.Ell <= 0 {
			return false
		}
		if !e.IsLiteral() && e.D > pos {
			return false
		}
		pos += e.Ell
	}
	return pos == n
}

// VerifyAgainst checks that every copy edge in p actually reproduces the
// bytes of text that it claims to, per the data-model invariant: for a
// copy edge at position p with distance d and length ell, text[p-d:p-d+ell]
// must equal text[p:p+ell]. Returns the (position, d, ell) of the first
// mismatch, or ok=true if none is found.
func (p Parsing) VerifyAgainst(text []byte) (pos, d, ell int, ok bool) {
	if !p.Valid(len(text)) {
		return 0, 0, 0, false
	}
	cur := 0
	for _, e := range p {
		if !e.IsLiteral() {
			src := cur - e.D
			for i := 0; i < e.Ell; i++ {
				if text[src+i] != text[cur+i] {
					return cur, e.D, e.Ell, false
				}
			}
		}
		cur += e.Ell
	}
	return 0, 0, 0, true
}
