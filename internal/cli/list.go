package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vburojevic/logview/internal/discover"
	"github.com/vburojevic/logview/internal/domain"
	"github.com/vburojevic/logview/internal/output"
)

// ListCmd lists discovered log files grouped by directory
type ListCmd struct {
	Path    string   `short:"p" help:"Directory to scan for log files (required unless set in config)"`
	Ext     string   `help:"File name suffix that marks a log file (default: .log)"`
	Exclude []string `help:"Glob of paths to skip, relative to the root (repeatable)"`
}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	maybeNoStyle(globals)

	target, err := resolveScan(globals, c.Path, c.Ext, c.Exclude)
	if err != nil {
		return err
	}

	files, err := discover.Find(ctx, target.Root, target.Opts)
	if err != nil {
		return outputErrorCommon(globals, "DISCOVER_FAILED", err.Error())
	}
	categories := discover.Categorize(files, discover.HomeDir())

	if globals.Format == "ndjson" {
		return c.outputNDJSON(globals, target.Root, categories)
	}
	return c.outputText(globals, categories)
}

func (c *ListCmd) outputNDJSON(globals *Globals, root string, categories []domain.Category) error {
	w := output.NewNDJSONWriter(globals.Stdout)
	if len(categories) == 0 {
		return w.WriteInfo("No log files found", root)
	}
	for _, cat := range categories {
		for _, f := range cat.Files {
			if err := w.WriteLogFile(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *ListCmd) outputText(globals *Globals, categories []domain.Category) error {
	w := output.NewTextWriter(globals.Stdout)
	if len(categories) == 0 {
		return w.WriteInfo("No log files found")
	}
	return w.WriteCategories(categories)
}
