package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vburojevic/logview/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.config()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":         "config",
			"format":       cfg.Format,
			"quiet":        cfg.Quiet,
			"verbose":      cfg.Verbose,
			"root":         cfg.Root,
			"tail_lines":   cfg.TailLines,
			"extension":    cfg.Extension,
			"output":       cfg.Output,
			"open_browser": cfg.OpenBrowser,
			"exclude":      cfg.Exclude,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	root := cfg.Root
	if root == "" {
		root = "(not set)"
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:       %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:        %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose:      %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  root:         %s\n", root)
	fmt.Fprintf(globals.Stdout, "  tail_lines:   %d\n", cfg.TailLines)
	fmt.Fprintf(globals.Stdout, "  extension:    %s\n", cfg.Extension)
	fmt.Fprintf(globals.Stdout, "  output:       %s\n", cfg.Output)
	fmt.Fprintf(globals.Stdout, "  open_browser: %v\n", cfg.OpenBrowser)
	if len(cfg.Exclude) > 0 {
		fmt.Fprintf(globals.Stdout, "  exclude:      %s\n", strings.Join(cfg.Exclude, ", "))
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":     "config_path",
			"path":     path,
			"searched": config.SearchPaths(),
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Searched (first match wins):")
		for _, p := range config.SearchPaths() {
			fmt.Fprintf(globals.Stdout, "  %s\n", p)
		}
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Run `logview config generate > ~/.logview.yaml` to create one.")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# logview configuration file
# Place this file at ~/.logview.yaml, ./.logview.yaml, or ~/.config/logview/config.yaml

# Output format for command results: "text" (default) or "ndjson"
format: text

# Suppress non-error output
quiet: false

# Enable verbose/debug output
verbose: false

# Directory to scan. There is no default; set it here or pass --path.
# root: /var/log

# Trailing lines shown per file
tail_lines: 200

# File name suffix that marks a log file (case-sensitive)
extension: .log

# Where the HTML page is written (overwritten on every run)
# output: /tmp/index.html

# Open the page in the default browser after writing it
open_browser: true

# Paths to skip, relative to root (doublestar globs)
# exclude:
#   - "**/archive/**"
#   - "journal/**"
`

	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
