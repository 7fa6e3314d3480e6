package fsg

import (
	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/costmodel"
)

// debug is the package's debug-gated logging switch, matching the
// teacher's zstd/zstd.go const-bool-gate idiom.
const debug = false

// Generalized returns the generator used for the "generalized" protocol
// name. It is the plain generator (New) over the model's full
// distance-class ladder: no subsequence of classes is selected and no
// cost_id remapping is done, so its mesh is the same as New's.
func Generalized(cfg Config) Generator {
	return New(cfg)
}

// cachingEntry holds one level's gamma-coded length stream plus the table
// used to encode/decode it.
type cachingEntry struct {
	table bitio.GammaTable
	w     *bitio.Writer
	buf   []byte
}

// Caching wraps a Generator, recording for every position the longest ell
// produced at each level into a per-level gamma-coded stream (the value
// ell+1 is stored as is, not as a delta from the previous record), so a
// later parse of the same (text, cost model) can replay without
// re-scanning the suffix array (spec.md section 4.E "caching wrapper").
// Each level's buffer starts with capacity for ceil(UpperBoundBits * n * 2
// / 8) bytes plus SafeTrailingBytes and grows if more is written.
type Caching struct {
	inner Generator
	cfg   Config
	entry []cachingEntry
}

// NewCaching builds a caching wrapper around inner for a text of n bytes.
func NewCaching(cfg Config, inner Generator, n int) *Caching {
	c := &Caching{inner: inner, cfg: cfg}
	c.entry = make([]cachingEntry, len(cfg.Model.D))
	for k := range c.entry {
		bound := uint64(cfg.Model.L[len(cfg.Model.L)-1]) + 1
		table := bitio.NewGammaTable(gammaBoundsFor(bound), gammaWidthsFor(bound))
		buf := make([]byte, 0, ubGammaBytes(table, n))
		c.entry[k] = cachingEntry{table: table, w: bitio.NewWriter(buf)}
	}
	return c
}

func gammaBoundsFor(max uint64) []uint64 {
	// A simple power-of-two class ladder sized to cover [1, max].
	var bounds []uint64
	b := uint64(1)
	for b < max {
		b <<= 1
		bounds = append(bounds, b)
	}
	bounds = append(bounds, max)
	return bounds
}

func gammaWidthsFor(max uint64) []uint {
	bounds := gammaBoundsFor(max)
	widths := make([]uint, len(bounds))
	for i, b := range bounds {
		w := uint(0)
		for (uint64(1) << w) < b {
			w++
		}
		widths[i] = w
	}
	return widths
}

func ubGammaBytes(t bitio.GammaTable, n int) int {
	bits := t.UpperBoundBits() * n * 2
	return (bits+7)/8 + bitio.SafeTrailingBytes
}

func (c *Caching) Pos() int { return c.inner.Pos() }

func (c *Caching) Advance() []Edge {
	mesh := c.inner.Advance()

	// One record per level per position: levelEll[k] ends up holding the
	// longest ell the inner generator produced for class k at this
	// position (0 if the class produced no new-max edge here), so Cached
	// can later call Next exactly once per level per position and stay in
	// lockstep with this encode loop.
	levelEll := make([]int, len(c.entry))
	for _, e := range mesh {
		level := levelOf(c.cfg.Model, e.D)
		if e.Ell > levelEll[level] {
			levelEll[level] = e.Ell
		}
	}
	for level, ell := range levelEll {
		c.entry[level].table.Encode(c.entry[level].w, uint64(ell)+1)
	}
	return mesh
}

// Bytes returns the encoded per-level cache streams, in cost-class order,
// ready to be persisted and later fed to NewCached.
func (c *Caching) Bytes() [][]byte {
	out := make([][]byte, len(c.entry))
	for i, e := range c.entry {
		out[i] = append(e.w.Bytes(), make([]byte, bitio.SafeTrailingBytes)...)
	}
	return out
}

func levelOf(model *costmodel.Model, d int) int {
	dstIdx, _ := model.GetIdx(d, 1)
	return dstIdx
}

// Cached replays a warm caching-generator stream without touching the
// suffix array, per spec.md section 4.E's "cached" variant.
type Cached struct {
	readers []*bitio.Reader
	tables  []bitio.GammaTable
	ds      []int
	model   *costmodel.Model
	pos     int
}

// NewCached builds a replay generator from the byte streams produced by
// Caching.Bytes for the same (text, cost model).
func NewCached(cfg Config, streams [][]byte) *Cached {
	c := &Cached{
		readers: make([]*bitio.Reader, len(streams)),
		tables:  make([]bitio.GammaTable, len(streams)),
		ds:      cfg.Model.D,
		model:   cfg.Model,
	}
	for k, s := range streams {
		bound := uint64(cfg.Model.L[len(cfg.Model.L)-1]) + 1
		c.tables[k] = bitio.NewGammaTable(gammaBoundsFor(bound), gammaWidthsFor(bound))
		c.readers[k] = bitio.NewReader(s)
	}
	return c
}

func (c *Cached) Pos() int { return c.pos }

// Advance rebuilds the mesh for the current position by calling Next once
// per level, the same number of records Caching.Advance wrote for that
// position, and re-expanding any recorded match into the same ladder of
// edges the original generator would have produced (emitLadderFor), so
// Cached is usable anywhere a live Generator is (parser.Parse, Integrate),
// not only through direct Next calls.
func (c *Cached) Advance() []Edge {
	var mesh []Edge
	for level := range c.readers {
		d, ell, ok := c.Next(level)
		if !ok || ell <= 0 {
			continue
		}
		mesh = append(mesh, emitLadderFor(c.model, d, ell, level)...)
	}
	c.pos++
	return mesh
}

// Next decodes the next recorded length for level k, returning the
// distance D[k] and the reconstructed length, per spec.md's "(D[k],
// reconstructed ell)" contract. ok is false only when level is out of
// range; the end of a stream is not detected, so callers stop after n
// calls, matching the encode side.
func (c *Cached) Next(level int) (d, ell int, ok bool) {
	if level >= len(c.readers) {
		return 0, 0, false
	}
	v := c.tables[level].Decode(c.readers[level])
	return c.ds[level], int(v) - 1, true
}
