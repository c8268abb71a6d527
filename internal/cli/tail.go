package cli

import (
	"github.com/vburojevic/logview/internal/logtail"
	"github.com/vburojevic/logview/internal/output"
)

// TailCmd prints the last lines of a single log file
type TailCmd struct {
	File  string `arg:"" required:"" help:"Log file to read"`
	Lines int    `short:"n" help:"Number of trailing lines (default: 200)"`
}

// Run executes the tail command
func (c *TailCmd) Run(globals *Globals) error {
	lines, err := tailLength(globals, c.Lines)
	if err != nil {
		return err
	}

	content, err := logtail.Read(c.File, lines)
	if err != nil {
		return outputErrorCommon(globals, "READ_FAILED", content)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteTail(c.File, lines, content)
	}
	return output.NewTextWriter(globals.Stdout).WriteTail(content)
}
