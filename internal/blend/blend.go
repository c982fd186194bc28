// Package blend mixes a skin's base features with its active expressions.
//
// Every active expression contributes its proportion. When the proportions
// sum to less than one the base makes up the difference; when they sum to
// more they are scaled down to one.
package blend

import (
	"sort"

	"ballface/internal/mathutil"
)

// Part is one weighted contribution to a blend.
type Part[T any] struct {
	Weight float64
	Value  T
}

// Parts collects the contributions of the active expressions. extract
// reports false for expressions that do not touch the blended value.
// Names are visited in sorted order so the result is deterministic.
func Parts[T any](active map[string]float64, base T, extract func(name string) (T, bool)) []Part[T] {
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []Part[T]
	total := 0.0
	for _, name := range names {
		v, ok := extract(name)
		if !ok {
			continue
		}
		parts = append(parts, Part[T]{Weight: active[name], Value: v})
		total += active[name]
	}
	switch {
	case total < 1:
		parts = append(parts, Part[T]{Weight: 1 - total, Value: base})
	case total > 1:
		m := 1 / total
		for i := range parts {
			parts[i].Weight *= m
		}
	}
	return parts
}

// Points writes the weighted sum of the parts into dst. Every part must
// hold at least len(dst) points.
func Points(dst []mathutil.Vec3, parts []Part[[]mathutil.Vec3]) {
	for i := range dst {
		var p mathutil.Vec3
		for _, part := range parts {
			p = p.Add(part.Value[i].Scale(part.Weight))
		}
		dst[i] = p
	}
}
