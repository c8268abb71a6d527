// Command benchguard fails CI when logview's benchmarks regress.
//
//	go test -bench . -benchmem ./internal/... > head.txt
//	go run ./scripts/benchguard --base base.txt --head head.txt
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type cmd struct {
	Base           string  `required:"" type:"existingfile" help:"Benchmark output of the baseline"`
	Head           string  `required:"" type:"existingfile" help:"Benchmark output to check"`
	MaxTimeRatio   float64 `default:"2.0" help:"Fail if time/op grows by more than this ratio"`
	MaxBytesRatio  float64 `default:"1.5" help:"Fail if B/op grows by more than this ratio"`
	MaxAllocsRatio float64 `default:"1.5" help:"Fail if allocs/op grows by more than this ratio"`
}

// run returns the process exit code
func (c *cmd) run(stdout, stderr io.Writer) int {
	base, err := parseFile(c.Base)
	if err != nil {
		fmt.Fprintf(stderr, "failed to parse base: %v\n", err)
		return 2
	}
	head, err := parseFile(c.Head)
	if err != nil {
		fmt.Fprintf(stderr, "failed to parse head: %v\n", err)
		return 2
	}

	regressions, compared := compare(base, head, limits{
		Time:   c.MaxTimeRatio,
		Bytes:  c.MaxBytesRatio,
		Allocs: c.MaxAllocsRatio,
	})
	if compared == 0 {
		fmt.Fprintln(stderr, "no overlapping benchmarks found between base and head outputs")
		return 2
	}

	if len(regressions) == 0 {
		fmt.Fprintf(stdout, "benchguard: ok (%d benchmarks compared)\n", compared)
		return 0
	}

	fmt.Fprintf(stdout, "benchguard: found %d regressions (%d benchmarks compared)\n", len(regressions), compared)
	for _, r := range regressions {
		if r.Metric == "time/op" {
			fmt.Fprintf(stdout, "- %s %s: %.0fns -> %.0fns (x%.2f)\n", r.Name, r.Metric, r.Base, r.Head, r.Ratio)
			continue
		}
		fmt.Fprintf(stdout, "- %s %s: %.0f -> %.0f (x%.2f)\n", r.Name, r.Metric, r.Base, r.Head, r.Ratio)
	}
	return 1
}

func main() {
	var c cmd
	kong.Parse(&c,
		kong.Name("benchguard"),
		kong.Description("Compare two `go test -bench` outputs and fail on regressions"),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			if code != 0 {
				code = 2
			}
			os.Exit(code)
		}),
	)
	os.Exit(c.run(os.Stdout, os.Stderr))
}
