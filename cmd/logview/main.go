package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/logview/internal/cli"
	"github.com/vburojevic/logview/internal/config"
)

const quickStart = `logview - browse the tails of your log files in one HTML page

START HERE:
  logview --path /var/log

Flags:
  -p    Directory to scan for *.log files
  -n    Trailing lines shown per file (default 200)
  -o    Where to write the page (default <tmp>/index.html)

Other useful commands:
  logview list -p /var/log              List log files by directory
  logview analyze /var/log/syslog.log   Count errors and event tokens
  logview tail -n 50 app.log            Print the last lines of one file
  logview config generate               Print a sample config file
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config defaults; explicit flags still win
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("logview"),
		kong.Description("logview: render the tails of a directory tree's log files as one filterable HTML page"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	globals.FlagsSet = cli.ProvidedFlags(ctx)

	if err := ctx.Run(globals); err != nil {
		// CLIErrors have already been reported in the selected format
		if cli.ErrorCode(err) == "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
