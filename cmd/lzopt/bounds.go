package main

import (
	"fmt"
	"strconv"
	"strings"
)

// boundItem is one comma-separated item of a -b bound spec: a numeric
// value with a unit suffix (m=ms, s=sec, K=KiB, M=MiB), per spec.md
// section 6.
type boundItem struct {
	value float64
	unit  byte
}

func parseBoundSpec(spec string) ([]boundItem, error) {
	var out []boundItem
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		unit := part[len(part)-1]
		switch unit {
		case 'm', 's', 'K', 'M':
		default:
			return nil, fmt.Errorf("bad bound unit %q in %q (want m/s/K/M)", string(unit), part)
		}
		v, err := strconv.ParseFloat(part[:len(part)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad bound value in %q: %w", part, err)
		}
		out = append(out, boundItem{value: v, unit: unit})
	}
	return out, nil
}

// nanos converts a time bound item (m, s) to nanoseconds and returns 0 for
// space units; bytes converts a space bound item (K, M) to bytes and
// returns 0 for time units. The caller picks the axis with isTime/isSpace.
func (b boundItem) nanos() float64 {
	switch b.unit {
	case 'm':
		return b.value * 1e6
	case 's':
		return b.value * 1e9
	}
	return 0
}

func (b boundItem) bytes() float64 {
	switch b.unit {
	case 'K':
		return b.value * 1024
	case 'M':
		return b.value * 1024 * 1024
	}
	return 0
}

func (b boundItem) isTime() bool  { return b.unit == 'm' || b.unit == 's' }
func (b boundItem) isSpace() bool { return b.unit == 'K' || b.unit == 'M' }

// levelItem is one comma-separated item of a -l level spec: a float in
// [0,1] suffixed by 's' (space axis) or 't' (time axis), per spec.md
// section 6.
type levelItem struct {
	x    float64
	axis byte // 's' or 't'
}

func parseLevelSpec(spec string) ([]levelItem, error) {
	var out []levelItem
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		axis := part[len(part)-1]
		if axis != 's' && axis != 't' {
			return nil, fmt.Errorf("bad level axis %q in %q (want s/t)", string(axis), part)
		}
		x, err := strconv.ParseFloat(part[:len(part)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad level value in %q: %w", part, err)
		}
		if x < 0 || x > 1 {
			return nil, fmt.Errorf("level value %v in %q out of [0,1]", x, part)
		}
		out = append(out, levelItem{x: x, axis: axis})
	}
	return out, nil
}

// effectiveBound computes min + x*(max-min) along the item's axis, per
// spec.md section 6's level syntax.
func (l levelItem) effectiveBound(min, max float64) float64 {
	return min + l.x*(max-min)
}

// boundLabel renders a bound item for the output filename
// "<input>#<encoder>#<bound_label>.lzo".
func boundLabel(items []boundItem) string {
	var parts []string
	for _, b := range items {
		parts = append(parts, fmt.Sprintf("%g%c", b.value, b.unit))
	}
	return strings.Join(parts, "-")
}
