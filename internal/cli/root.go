package cli

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"
	"github.com/vburojevic/logview/internal/browser"
	"github.com/vburojevic/logview/internal/config"
	"github.com/vburojevic/logview/internal/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI is the root command structure for logview
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress non-error output"`
	Verbose bool   `short:"v" help:"Show debug output (files found, read and analysis failures)"`

	// Commands
	Render  RenderCmd  `cmd:"" default:"withargs" help:"Scan for log files and write the HTML viewer"`
	List    ListCmd    `cmd:"" help:"List discovered log files by directory"`
	Analyze AnalyzeCmd `cmd:"" help:"Count errors and event tokens in one log file"`
	Tail    TailCmd    `cmd:"" help:"Print the last lines of one log file"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	// FlagsSet records flags given explicitly on the command line.
	FlagsSet map[string]bool

	Clock  clock.Clock
	Opener browser.Opener

	logger *zap.SugaredLogger
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Clock:   clock.New(),
	}

	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}

	g.Opener = browser.System{Stdout: g.Stderr, Stderr: g.Stderr}
	return g
}

// ProvidedFlags returns the names of flags given explicitly on the command
// line, for Globals.FlagsSet
func ProvidedFlags(ctx *kong.Context) map[string]bool {
	set := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			set[p.Flag.Name] = true
		}
	}
	return set
}

// FlagProvided reports whether a flag was set on the command line
func (g *Globals) FlagProvided(name string) bool {
	return g.FlagsSet[name]
}

// Debug logs a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	g.log().Debugf(format, args...)
}

func (g *Globals) log() *zap.SugaredLogger {
	if g.logger == nil {
		g.logger = newLogger(g.Stderr, g.Verbose)
	}
	return g.logger
}

func (g *Globals) config() *config.Config {
	if g.Config == nil {
		g.Config = config.Default()
	}
	return g.Config
}

func (g *Globals) clock() clock.Clock {
	if g.Clock == nil {
		g.Clock = clock.New()
	}
	return g.Clock
}

func (g *Globals) opener() browser.Opener {
	if g.Opener == nil {
		g.Opener = browser.System{Stdout: g.Stderr, Stderr: g.Stderr}
	}
	return g.Opener
}

// newLogger returns a console logger on w, or a no-op logger when not verbose
func newLogger(w io.Writer, verbose bool) *zap.SugaredLogger {
	if !verbose || w == nil {
		return zap.NewNop().Sugar()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core).Sugar()
}

// maybeNoStyle drops text styling unless stdout is a terminal
func maybeNoStyle(globals *Globals) {
	if f, ok := globals.Stdout.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return
		}
	}
	output.PlainStyles()
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "version",
			"schemaVersion": output.SchemaVersion,
			"version":       Version,
			"commit":        Commit,
		})
	}
	_, err := io.WriteString(globals.Stdout, "logview version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
