package main

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// result is one benchmark line. Missing memory metrics are NaN.
type result struct {
	Name     string
	TimeNs   float64
	BytesOp  float64
	AllocsOp float64
}

var nsPerUnit = map[string]float64{
	"ns/op": 1,
	"us/op": 1e3,
	"µs/op": 1e3,
	"ms/op": 1e6,
	"s/op":  1e9,
}

func parseFile(path string) (map[string]result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// parse reads `go test -bench` output. Non-benchmark lines are ignored; a
// repeated name (from -count) keeps its last run.
func parse(r io.Reader) (map[string]result, error) {
	results := make(map[string]result)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		res, ok := parseLine(sc.Text())
		if ok {
			results[res.Name] = res
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseLine(line string) (result, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || !strings.HasPrefix(fields[0], "Benchmark") {
		return result{}, false
	}

	res := result{Name: fields[0], TimeNs: math.NaN(), BytesOp: math.NaN(), AllocsOp: math.NaN()}
	for i := 2; i < len(fields); i++ {
		v, err := strconv.ParseFloat(fields[i-1], 64)
		if err != nil {
			continue
		}
		unit := fields[i]
		switch {
		case unit == "B/op":
			res.BytesOp = v
		case unit == "allocs/op":
			res.AllocsOp = v
		case math.IsNaN(res.TimeNs) && nsPerUnit[unit] > 0:
			res.TimeNs = v * nsPerUnit[unit]
		}
	}
	if math.IsNaN(res.TimeNs) {
		return result{}, false
	}
	return res, true
}
