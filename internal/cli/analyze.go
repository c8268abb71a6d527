package cli

import (
	"fmt"
	"os"

	"github.com/vburojevic/logview/internal/output"
)

// AnalyzeCmd analyzes a single log file
type AnalyzeCmd struct {
	File string `arg:"" required:"" help:"Log file to analyze"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	info, err := os.Stat(c.File)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	if info.IsDir() {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("%s is a directory", c.File),
			"Use `logview list --path "+c.File+"` to see the logs inside it")
	}

	// A failed analysis is reported in the result, not as a command error.
	result := output.NewAnalyzer().AnalyzeFile(c.File)
	if result.Failed() {
		globals.Debug("Analysis of %s failed: %s", c.File, result.Error)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteAnalysis(c.File, result)
	}
	return output.NewTextWriter(globals.Stdout).WriteAnalysis(c.File, result)
}
