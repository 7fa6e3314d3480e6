// Package parser implements the single-criterion bit-optimal parser from
// spec.md section 4.F: a dense forward relaxation shortest-path over the
// phrase DAG produced on-the-fly by an fsg.Generator, with a sliding-
// window monotone-deque literal generator standing in for the O(n) edges
// a naive "literal from every prior position" model would need.
//
// The monotone-deque shape is grounded in the teacher's DualHash/HashChain
// match finders only loosely (they don't need a windowed minimum); the
// literal generator here follows the classic monotone sliding-window-
// minimum algorithm referenced directly in spec.md's design notes.
package parser

import (
	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/costmodel"
	"github.com/go-lzopt/lzopt/fsg"
)

// Value is a parser edge cost: single-criterion parsing uses Cost alone;
// bicriteria parsing uses (Cost, Weight) with lexicographic comparison.
// Less implements that comparison.
type Value struct {
	Cost   float64
	Weight float64
	BiCost bool
}

// Less reports whether v is strictly better than other: by Cost alone for
// single-criterion values, or lexicographically (Cost then Weight) for
// bi-cost values, per spec.md section 4.F.
func (v Value) Less(other Value) bool {
	if v.Cost != other.Cost {
		return v.Cost < other.Cost
	}
	if v.BiCost || other.BiCost {
		return v.Weight < other.Weight
	}
	return false
}

// Add returns the sum of two values, component-wise.
func (v Value) Add(o Value) Value {
	return Value{Cost: v.Cost + o.Cost, Weight: v.Weight + o.Weight, BiCost: v.BiCost || o.BiCost}
}

// EdgeCoster computes the Value of an edge (copy or literal) under one or
// two fused cost models. Single-criterion parsing supplies a CostModel
// alone; bicriteria parsing supplies both a cost and a weight model over
// the same fused ladder.
type EdgeCoster struct {
	Cost   *costmodel.Model
	Weight *costmodel.Model // nil for single-criterion parsing
}

func (ec EdgeCoster) valueOf(d, ell, costID int) Value {
	c := ec.Cost.EdgeCost(d, ell, costID)
	if ec.Weight == nil {
		return Value{Cost: c}
	}
	w := ec.Weight.EdgeCost(d, ell, costID)
	return Value{Cost: c, Weight: w, BiCost: true}
}

func (ec EdgeCoster) literalValue(ell int) Value {
	return ec.valueOf(0, ell, 0)
}

// literalWindow bounds how far back the literal generator looks, per
// spec.md's "last W_lit positions"; callers set it to the encoder's
// literal-window limit.
const defaultLiteralWindow = 1 << 20

// dequeEntry is one (position, accumulated key) pair in the monotone
// deque, where key = C[s] - s*v_lit (cost-dimension) adjusted so that a
// plain minimum over the deque recovers the best literal source, per the
// "Literal generator" description in spec.md section 4.F.
type dequeEntry struct {
	pos int
	key Value // C[s] expressed so p - s gives ell directly on pop
}

// Result is a completed bit-optimal parsing plus its terminal Value.
type Result struct {
	Parsing lzopt.Parsing
	Total   Value
}

// Parse runs the forward relaxation over text of length n, producing the
// bit-optimal parsing under coster, consuming mesh edges from gen.
// literalWindow bounds the literal generator's lookback (0 means use the
// package default).
func Parse(text []byte, gen fsg.Generator, coster EdgeCoster, literalWindow int) Result {
	n := len(text)
	if literalWindow <= 0 {
		literalWindow = defaultLiteralWindow
	}

	const inf = 1e300
	cost := make([]Value, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = Value{Cost: inf, Weight: inf, BiCost: coster.Weight != nil}
	}
	edgeAt := make([]lzopt.Edge, n+1)

	// deque holds candidate literal sources in increasing-key order,
	// front = best.
	var deque []int

	relax := func(to int, v Value, e lzopt.Edge) {
		if v.Less(cost[to]) {
			cost[to] = v
			edgeAt[to] = e
		}
	}

	for p := 0; p <= n; p++ {
		if p < n {
			mesh := gen.Advance()
			for _, m := range mesh {
				cand := cost[p].Add(coster.valueOf(m.D, m.Ell, m.CostID))
				relax(p+m.Ell, cand, lzopt.Edge{D: m.D, Ell: m.Ell, CostID: m.CostID})
			}
		}

		// Evict deque entries that fall outside the literal window or
		// are dominated by a strictly better, more recent entry.
		for len(deque) > 0 && deque[0] < p+1-literalWindow {
			deque = deque[1:]
		}
		for len(deque) > 0 {
			back := deque[len(deque)-1]
			if !dominates(cost, coster, back, p) {
				break
			}
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, p)

		if p < n {
			if s, ok := bestLiteralSource(cost, coster, deque, p+1); ok {
				ell := p + 1 - s
				v := cost[s].Add(coster.literalValue(ell))
				relax(p+1, v, lzopt.Edge{D: 0, Ell: ell})
			}
		}
	}

	return Result{Parsing: recover(edgeAt, n), Total: cost[n]}
}

// dominates reports whether source `cand`'s key is no better than
// source `newer`'s at every future position, so cand can be evicted from
// the back of the monotone deque without losing the optimum (classic
// sliding-window-minimum maintenance).
func dominates(cost []Value, coster EdgeCoster, cand, newer int) bool {
	candKey := cost[cand].Add(coster.literalValue(1))
	newerKey := cost[newer].Add(coster.literalValue(1))
	// cand is dominated if, even at the smallest possible run length (1),
	// its key is already no better than newer's; since per-byte literal
	// cost is uniform, a non-better key now implies a non-better key for
	// every larger run length too.
	return !candKey.Less(newerKey)
}

// bestLiteralSource scans the deque (small; literal windows here are not
// adversarially large) for the source s < to that minimizes
// cost[s] + literalValue(to-s).
func bestLiteralSource(cost []Value, coster EdgeCoster, deque []int, to int) (int, bool) {
	best := -1
	var bestV Value
	for _, s := range deque {
		if s >= to {
			continue
		}
		v := cost[s].Add(coster.literalValue(to - s))
		if best == -1 || v.Less(bestV) {
			best, bestV = s, v
		}
	}
	return best, best != -1
}

// recover walks edgeAt from n backwards via Ell, reversing into a
// front-to-back parsing, per spec.md's recovery contract.
func recover(edgeAt []lzopt.Edge, n int) lzopt.Parsing {
	var rev lzopt.Parsing
	p := n
	for p > 0 {
		e := edgeAt[p]
		rev = append(rev, e)
		p -= e.Ell
	}
	out := make(lzopt.Parsing, len(rev))
	for i, e := range rev {
		out[len(rev)-1-i] = e
	}
	return out
}
