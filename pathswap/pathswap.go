// Package pathswap implements the path swapper from spec.md section 4.I:
// given two compressed parsings of the same text and a bound W, it finds
// the swap point at which switching from one parsing to the other (via a
// bridge edge) yields a single feasible parsing of minimal cost.
package pathswap

import (
	"errors"

	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/costmodel"
)

// ErrNoSwapPoint indicates a logic error in the basis: per spec.md, a
// solution must always be found given the safety slack added to W.
var ErrNoSwapPoint = errors.New("pathswap: no valid swap point found (logic error in basis)")

// maxEdgeWeight returns the largest single-edge weight a model can
// produce, used for the "2*max_weight_of_single_edge" safety slack from
// spec.md section 4.I.
func maxEdgeWeight(m *costmodel.Model) float64 {
	max := m.LitFixed + float64(m.L[len(m.L)-1])*m.LitVar
	for _, v := range m.M {
		if v > max {
			max = v
		}
	}
	return max
}

// positions returns, for a parsing, the cumulative start position of each
// edge plus a sentinel equal to the text length.
func positions(p lzopt.Parsing) []int {
	out := make([]int, len(p)+1)
	pos := 0
	for i, e := range p {
		out[i] = pos
		pos += e.Ell
	}
	out[len(p)] = pos
	return out
}

// eval computes the total (cost, weight) of a parsing under the two
// fused models, per spec.md section 3's edge_cost formula.
func eval(p lzopt.Parsing, costModel, weightModel *costmodel.Model) (cost, weight float64) {
	for _, e := range p {
		cost += costModel.EdgeCost(e.D, e.Ell, e.CostID)
		weight += weightModel.EdgeCost(e.D, e.Ell, e.CostID)
	}
	return
}

// Swap finds the swap point between a and b (a.Parsing feasible, per
// spec.md's invariant that Basis.Left is feasible) and returns the
// concrete spliced edge sequence of lowest cost among all swap candidates
// whose weight (plus safety slack) stays within bound. costModel and
// weightModel are the fused models the two input solutions were computed
// under, so cost_id tags on both parsings' edges are interpretable by the
// same matrices.
func Swap(text []byte, a, b lzopt.SolutionInfo, bound float64, costModel, weightModel *costmodel.Model) (lzopt.Parsing, error) {
	slack := 2 * maxEdgeWeight(weightModel)
	boundWithSlack := bound + slack

	pa, pb := a.Parsing, b.Parsing
	posA, posB := positions(pa), positions(pb)

	var best lzopt.Parsing
	bestCost := 0.0
	found := false

	// splice builds the concrete candidate: prefix (edges of the
	// advancing side up to its head), a bridge edge if the other side's
	// head is further along, then the rest of the other side's edges.
	splice := func(prefix lzopt.Parsing, prefixEnd int, otherParsing lzopt.Parsing, otherPos []int, otherIdx int, costModel *costmodel.Model) (lzopt.Parsing, bool) {
		headOther := otherPos[otherIdx]
		if headOther < prefixEnd {
			return nil, false
		}
		out := append(lzopt.Parsing{}, prefix...)
		if headOther > prefixEnd {
			e := otherParsing[otherIdx]
			d := e.D
			if d == 0 {
				d = 1
			}
			ell := headOther - prefixEnd
			_, lenIdx := costModel.GetIdx(d, ell)
			dstIdx, _ := costModel.GetIdx(d, ell)
			out = append(out, lzopt.Edge{D: d, Ell: ell, CostID: costModel.CostID(dstIdx, lenIdx)})
		}
		out = append(out, otherParsing[otherIdx+1:]...)
		return out, true
	}

	tryCandidate := func(prefix lzopt.Parsing, prefixEnd int, otherParsing lzopt.Parsing, otherPos []int, otherIdx int) {
		candidate, ok := splice(prefix, prefixEnd, otherParsing, otherPos, otherIdx, costModel)
		if !ok || !candidate.Valid(len(text)) {
			return
		}
		c, w := eval(candidate, costModel, weightModel)
		if w > boundWithSlack {
			return
		}
		if !found || c < bestCost {
			best, bestCost, found = candidate, c, true
		}
	}

	ia, ib := 0, 0
	for ia < len(pa) && ib < len(pb) {
		if posA[ia] <= posB[ib] {
			tryCandidate(pa[:ia], posA[ia], pb, posB, ib)
			ia++
		} else {
			tryCandidate(pb[:ib], posB[ib], pa, posA, ia)
			ib++
		}
	}
	// Also consider the pure endpoints (no swap at all): a is already
	// feasible by the Basis invariant, so it is always a valid candidate.
	if ca, wa := eval(pa, costModel, weightModel); wa <= boundWithSlack {
		if !found || ca < bestCost {
			best, bestCost, found = pa, ca, true
		}
	}

	if !found {
		return nil, ErrNoSwapPoint
	}
	return best, nil
}
