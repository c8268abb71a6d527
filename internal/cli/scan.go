package cli

import (
	"fmt"

	"github.com/vburojevic/logview/internal/discover"
)

// scanTarget is a validated scan root plus discovery options
type scanTarget struct {
	Root string
	Opts discover.Options
}

// resolveScan merges scan flags with config and validates them. Failures are
// emitted before returning.
func resolveScan(globals *Globals, path, ext string, exclude []string) (scanTarget, error) {
	cfg := globals.config()

	root := path
	if root == "" {
		root = cfg.Root
	}
	if root == "" {
		return scanTarget{}, outputErrorCommon(globals, "ROOT_REQUIRED", "no scan root given", hintRootRequired)
	}
	if err := discover.CheckRoot(root); err != nil {
		return scanTarget{}, outputErrorCommon(globals, "ROOT_NOT_FOUND", fmt.Sprintf("cannot scan %s: %s", root, err), hintForRoot(err))
	}

	if ext == "" {
		ext = cfg.Extension
	}
	if len(exclude) == 0 {
		exclude = cfg.Exclude
	}
	if err := discover.ValidatePatterns(exclude); err != nil {
		return scanTarget{}, outputErrorCommon(globals, "INVALID_EXCLUDE", err.Error(), "Exclude patterns use doublestar syntax, e.g. '**/archive/**'")
	}

	opts := discover.DefaultOptions()
	if ext != "" {
		opts.Extension = ext
	}
	opts.Exclude = exclude
	return scanTarget{Root: root, Opts: opts}, nil
}

// tailLength resolves the trailing line count. An explicit --lines is taken
// as given, so `--lines 0` is rejected rather than read as unset.
func tailLength(globals *Globals, flag int) (int, error) {
	lines := flag
	if lines == 0 && !globals.FlagProvided("lines") {
		lines = globals.config().TailLines
	}
	if lines <= 0 {
		return 0, outputErrorCommon(globals, "INVALID_LINES", fmt.Sprintf("tail length must be positive, got %d", lines))
	}
	return lines, nil
}
