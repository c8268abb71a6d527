package main

import (
	"math"
	"sort"
)

type limits struct {
	Time   float64
	Bytes  float64
	Allocs float64
}

type regression struct {
	Name   string
	Metric string
	Base   float64
	Head   float64
	Ratio  float64
}

func ratio(base, head float64) float64 {
	if base == 0 {
		if head == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return head / base
}

// compare checks every benchmark present in both runs and returns the
// regressions worst-first, plus how many benchmarks overlapped.
func compare(base, head map[string]result, lim limits) ([]regression, int) {
	var regressions []regression
	compared := 0
	check := func(name, metric string, b, h, max float64) {
		if math.IsNaN(b) || math.IsNaN(h) {
			return
		}
		if r := ratio(b, h); r > max {
			regressions = append(regressions, regression{Name: name, Metric: metric, Base: b, Head: h, Ratio: r})
		}
	}

	for name, b := range base {
		h, ok := head[name]
		if !ok {
			continue
		}
		compared++
		check(name, "time/op", b.TimeNs, h.TimeNs, lim.Time)
		check(name, "B/op", b.BytesOp, h.BytesOp, lim.Bytes)
		check(name, "allocs/op", b.AllocsOp, h.AllocsOp, lim.Allocs)
	}

	sort.Slice(regressions, func(i, j int) bool {
		ri, rj := regressions[i], regressions[j]
		if ri.Ratio != rj.Ratio {
			return ri.Ratio > rj.Ratio
		}
		if ri.Name != rj.Name {
			return ri.Name < rj.Name
		}
		return ri.Metric < rj.Metric
	})
	return regressions, compared
}
