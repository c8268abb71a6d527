package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vburojevic/logview/internal/browser"
	"github.com/vburojevic/logview/internal/config"
	"github.com/vburojevic/logview/internal/discover"
	"github.com/vburojevic/logview/internal/output"
	"github.com/vburojevic/logview/internal/page"
)

// RenderCmd scans a tree for log files and writes the HTML viewer
type RenderCmd struct {
	Path    string   `short:"p" help:"Directory to scan for log files (required unless set in config)"`
	Lines   int      `short:"n" help:"Trailing lines shown per file (default: 200)"`
	Output  string   `short:"o" help:"Where to write the HTML page (default: <tmp>/index.html)"`
	Ext     string   `help:"File name suffix that marks a log file (default: .log)"`
	Exclude []string `help:"Glob of paths to skip, relative to the root (repeatable)"`
	NoOpen  bool     `help:"Write the page without opening a browser"`
}

// Run executes the render command
func (c *RenderCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	maybeNoStyle(globals)
	cfg := globals.config()

	target, err := resolveScan(globals, c.Path, c.Ext, c.Exclude)
	if err != nil {
		return err
	}

	lines, err := tailLength(globals, c.Lines)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = cfg.Output
	}
	if dest == "" {
		dest = config.DefaultOutput()
	}

	files, err := discover.Find(ctx, target.Root, target.Opts)
	if err != nil {
		return outputErrorCommon(globals, "DISCOVER_FAILED", err.Error())
	}
	globals.Debug("Found %d log files under %s", len(files), target.Root)

	path, p, err := page.Generate(files, dest, page.Options{
		Root:   target.Root,
		Home:   discover.HomeDir(),
		Lines:  lines,
		Clock:  globals.clock(),
		Debugf: globals.Debug,
	})
	if err != nil {
		return outputErrorCommon(globals, "WRITE_FAILED", err.Error(), hintForWrite(err))
	}

	url, err := browser.FileURL(path)
	if err != nil {
		return outputErrorCommon(globals, "WRITE_FAILED", err.Error())
	}

	opened := false
	if cfg.OpenBrowser && !c.NoOpen {
		globals.Debug("Opening %s", url)
		if err := globals.opener().Open(url); err != nil {
			return outputErrorCommon(globals, "BROWSER_FAILED", fmt.Sprintf("cannot open browser: %s", err),
				"The page was written to "+path+"; rerun with --no-open to skip the browser")
		}
		opened = true
	}

	if globals.Quiet {
		return nil
	}

	out := output.RenderedOutput{
		Path:       path,
		URL:        url,
		Root:       target.Root,
		Files:      p.FileCount,
		Categories: len(p.Categories),
		Opened:     opened,
	}
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRendered(out)
	}
	return output.NewTextWriter(globals.Stdout).WriteRendered(out)
}
