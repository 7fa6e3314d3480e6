package fsg

import (
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/go-lzopt/lzopt/costmodel"
)

// HashChainGenerator is a non-suffix-array FSG substitute, adapted from
// the teacher's HashChain match finder (chain.go): a 4-byte rolling hash
// with chained candidates, capped search length. It trades parsing
// quality for not needing a suffix array at all, and is exposed by the
// "gens" CLI subcommand and the "-g hashchain" bit-optimal flag per the
// supplement documented in SPEC_FULL.md (grounded in
// original_source/tools' -g dispatch).
type HashChainGenerator struct {
	cfg       Config
	pos       int
	searchLen int

	table [hashTableSize]int32
	chain []int32
}

const (
	hashTableSize = 1 << 14
	hashShift     = 32 - 14
)

// NewHashChain builds a hash-chain generator over cfg.Text using the same
// cost-class ladder as the suffix-array-based generators, so its mesh
// output is shaped identically even though match discovery is cheaper and
// lower quality.
func NewHashChain(cfg Config, searchLen int) *HashChainGenerator {
	if searchLen <= 0 {
		searchLen = 1
	}
	g := &HashChainGenerator{cfg: cfg, searchLen: searchLen}
	g.chain = make([]int32, len(cfg.Text))
	for i := range g.table {
		g.table[i] = -1
	}
	for i := range g.chain {
		g.chain[i] = -1
	}
	return g
}

// hash4 folds 4 bytes down to a table index using the same xxHash32
// checksum the teacher's lz4 frame encoder uses for its content hash
// (lz4/frame.go), seeded with 0 and truncated to the table's bit width.
func hash4(b []byte) uint32 {
	return xxHash32.Checksum(b, 0) >> hashShift
}

func (g *HashChainGenerator) Pos() int { return g.pos }

func (g *HashChainGenerator) Advance() []Edge {
	p := g.pos
	src := g.cfg.Text
	model := g.cfg.Model

	if p+4 <= len(src) {
		h := hash4(src[p : p+4])
		cand := g.table[h]
		g.table[h] = int32(p)
		g.chain[p] = cand
	}

	bestD, bestEll := 0, 0
	if p+4 <= len(src) {
		h := hash4(src[p : p+4])
		cand := g.chain[p]
		if cand < 0 {
			cand = g.table[h]
		}
		tries := g.searchLen
		maxD := model.D[len(model.D)-1]
		for cand >= 0 && tries > 0 {
			d := p - int(cand)
			if d > 0 && d <= maxD {
				ell := matchLen(src, int(cand), p)
				if ell > bestEll {
					bestEll, bestD = ell, d
				}
			}
			cand = g.chain[cand]
			tries--
		}
	}

	g.pos++
	if bestEll == 0 {
		return nil
	}
	distClass, _ := model.GetIdx(bestD, bestEll)
	distClassPlain := &plain{cfg: g.cfg}
	return distClassPlain.emitLadder(bestD, clampLen(model, bestEll), distClass)
}

func clampLen(model *costmodel.Model, ell int) int {
	max := model.L[len(model.L)-1]
	if ell > max {
		return max
	}
	return ell
}
