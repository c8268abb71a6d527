package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/vburojevic/logview/internal/config"
	"github.com/vburojevic/logview/internal/output"
)

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

// testGlobals creates a Globals struct with captured stdout/stderr
func testGlobals(format string) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	return &Globals{
		Format:  format,
		Quiet:   false,
		Verbose: false,
		Stdout:  stdout,
		Stderr:  stderr,
		Config:  config.Default(),
		Clock:   mock,
		Opener:  &fakeOpener{},
	}, stdout, stderr
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// logTree creates data/a.log and data/sub/b.log under a temp dir
func logTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(root, "a.log"), "INFO start\nERROR fail\n")
	writeFile(t, filepath.Join(root, "sub", "b.log"), strings.Repeat("DEBUG tick\n", 300))
	writeFile(t, filepath.Join(root, "sub", "readme.txt"), "not a log\n")
	return root
}

func cliCode(t *testing.T, err error) string {
	t.Helper()
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %v", err)
	return cliErr.Code
}

// runArgs parses args like main does, then runs the selected command
func runArgs(t *testing.T, globals *Globals, args ...string) error {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c,
		kong.Vars{"config_format": globals.Format},
		kong.Writers(globals.Stdout, globals.Stderr),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	globals.FlagsSet = ProvidedFlags(ctx)
	return ctx.Run(globals)
}

// --- Render Command Tests ---

func TestRenderCmd_Run(t *testing.T) {
	t.Run("writes the page and opens it", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		root := logTree(t)
		out := filepath.Join(t.TempDir(), "index.html")

		cmd := &RenderCmd{Path: root, Output: out}
		require.NoError(t, cmd.Run(globals))

		rec := stdout.String()
		assert.Equal(t, "rendered", gjson.Get(rec, "type").String())
		assert.Equal(t, out, gjson.Get(rec, "path").String())
		assert.Equal(t, int64(2), gjson.Get(rec, "files").Int())
		assert.Equal(t, int64(2), gjson.Get(rec, "categories").Int())
		assert.True(t, gjson.Get(rec, "opened").Bool())

		opener := globals.Opener.(*fakeOpener)
		require.Len(t, opener.urls, 1)
		assert.Equal(t, "file://"+filepath.ToSlash(out), opener.urls[0])

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		doc := string(data)
		assert.Contains(t, doc, `data-name="a.log"`)
		assert.Contains(t, doc, `data-name="b.log"`)
		assert.Equal(t, 200, strings.Count(doc, "DEBUG tick\n"))
		assert.Contains(t, doc, "2026-01-02 03:04:05 UTC")
	})

	t.Run("skips the browser with --no-open", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		out := filepath.Join(t.TempDir(), "index.html")

		cmd := &RenderCmd{Path: logTree(t), Output: out, NoOpen: true}
		require.NoError(t, cmd.Run(globals))

		assert.Empty(t, globals.Opener.(*fakeOpener).urls)
		assert.False(t, gjson.Get(stdout.String(), "opened").Bool())
	})

	t.Run("skips the browser when config disables it", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.OpenBrowser = false

		cmd := &RenderCmd{Path: logTree(t), Output: filepath.Join(t.TempDir(), "index.html")}
		require.NoError(t, cmd.Run(globals))
		assert.Empty(t, globals.Opener.(*fakeOpener).urls)
	})

	t.Run("uses root, lines and output from config", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		out := filepath.Join(t.TempDir(), "from-config.html")
		globals.Config.Root = logTree(t)
		globals.Config.TailLines = 5
		globals.Config.Output = out

		require.NoError(t, (&RenderCmd{NoOpen: true}).Run(globals))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, 5, strings.Count(string(data), "DEBUG tick\n"))
	})

	t.Run("excludes matching paths", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		cmd := &RenderCmd{
			Path:    logTree(t),
			Output:  filepath.Join(t.TempDir(), "index.html"),
			Exclude: []string{"sub/**"},
			NoOpen:  true,
		}
		require.NoError(t, cmd.Run(globals))
		assert.Equal(t, int64(1), gjson.Get(stdout.String(), "files").Int())
	})

	t.Run("text output", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		out := filepath.Join(t.TempDir(), "index.html")

		require.NoError(t, (&RenderCmd{Path: logTree(t), Output: out, NoOpen: true}).Run(globals))
		assert.Contains(t, stdout.String(), "Wrote "+out)
		assert.Regexp(t, `files:\s+2`, stdout.String())
	})

	t.Run("quiet suppresses the summary", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		globals.Quiet = true

		cmd := &RenderCmd{Path: logTree(t), Output: filepath.Join(t.TempDir(), "index.html")}
		require.NoError(t, cmd.Run(globals))
		assert.Empty(t, stdout.String())
	})

	t.Run("empty tree still writes a page", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		out := filepath.Join(t.TempDir(), "index.html")

		require.NoError(t, (&RenderCmd{Path: t.TempDir(), Output: out, NoOpen: true}).Run(globals))
		assert.Equal(t, int64(0), gjson.Get(stdout.String(), "files").Int())
		assert.FileExists(t, out)
	})
}

func TestRenderCmd_Errors(t *testing.T) {
	t.Run("requires a root", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		err := (&RenderCmd{}).Run(globals)
		require.Error(t, err)
		assert.Equal(t, "ROOT_REQUIRED", cliCode(t, err))
		assert.Equal(t, "error", gjson.Get(stdout.String(), "type").String())
		assert.Equal(t, "ROOT_REQUIRED", gjson.Get(stdout.String(), "code").String())
		assert.NotEmpty(t, gjson.Get(stdout.String(), "hint").String())
	})

	t.Run("rejects a missing root", func(t *testing.T) {
		globals, _, stderr := testGlobals("text")

		err := (&RenderCmd{Path: filepath.Join(t.TempDir(), "nope")}).Run(globals)
		require.Error(t, err)
		assert.Equal(t, "ROOT_NOT_FOUND", cliCode(t, err))
		assert.Contains(t, stderr.String(), "Error [ROOT_NOT_FOUND]")
	})

	t.Run("rejects a file as root", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "")

		err := (&RenderCmd{Path: file}).Run(globals)
		assert.Equal(t, "ROOT_NOT_FOUND", cliCode(t, err))
	})

	t.Run("rejects a non-positive tail length", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")

		err := (&RenderCmd{Path: logTree(t), Lines: -3}).Run(globals)
		assert.Equal(t, "INVALID_LINES", cliCode(t, err))
	})

	t.Run("rejects bad exclude patterns", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")

		err := (&RenderCmd{Path: logTree(t), Exclude: []string{"[oops"}}).Run(globals)
		assert.Equal(t, "INVALID_EXCLUDE", cliCode(t, err))
	})

	t.Run("reports an unwritable output", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		out := filepath.Join(t.TempDir(), "no-such-dir", "index.html")

		err := (&RenderCmd{Path: logTree(t), Output: out}).Run(globals)
		assert.Equal(t, "WRITE_FAILED", cliCode(t, err))
		assert.NotEmpty(t, gjson.Get(stdout.String(), "hint").String())
		assert.Empty(t, globals.Opener.(*fakeOpener).urls)
	})

	t.Run("reports a browser failure after writing", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Opener = &fakeOpener{err: errors.New("no display")}
		out := filepath.Join(t.TempDir(), "index.html")

		err := (&RenderCmd{Path: logTree(t), Output: out}).Run(globals)
		assert.Equal(t, "BROWSER_FAILED", cliCode(t, err))
		assert.FileExists(t, out)
	})
}

func TestRenderCmd_LinesFlag(t *testing.T) {
	t.Run("explicit zero is rejected", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		out := filepath.Join(t.TempDir(), "index.html")

		err := runArgs(t, globals, "render", "--path", logTree(t), "--lines", "0", "--no-open", "-o", out)
		assert.Equal(t, "INVALID_LINES", cliCode(t, err))
		assert.Equal(t, "INVALID_LINES", gjson.Get(stdout.String(), "code").String())
		assert.NoFileExists(t, out)
	})

	t.Run("short flag zero is rejected", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")

		err := runArgs(t, globals, "render", "-p", logTree(t), "-n", "0", "--no-open")
		assert.Equal(t, "INVALID_LINES", cliCode(t, err))
	})

	t.Run("absent flag falls back to config", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.TailLines = 7
		out := filepath.Join(t.TempDir(), "index.html")

		require.NoError(t, runArgs(t, globals, "--path", logTree(t), "--no-open", "-o", out))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, 7, strings.Count(string(data), "DEBUG tick\n"))
	})

	t.Run("explicit value wins over config", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.TailLines = 7
		out := filepath.Join(t.TempDir(), "index.html")

		require.NoError(t, runArgs(t, globals, "render", "--path", logTree(t), "--lines", "3", "--no-open", "-o", out))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, 3, strings.Count(string(data), "DEBUG tick\n"))
	})
}

func TestRenderCmd_VerboseLogsFailures(t *testing.T) {
	globals, _, stderr := testGlobals("ndjson")
	globals.Verbose = true
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bin.log"), "\xff\xfe\n")

	cmd := &RenderCmd{Path: root, Output: filepath.Join(t.TempDir(), "index.html"), NoOpen: true}
	require.NoError(t, cmd.Run(globals))

	assert.Contains(t, stderr.String(), "Found 1 log files")
	assert.Contains(t, stderr.String(), "Failed to analyze log: invalid UTF-8 on line 1")
}

// --- List Command Tests ---

func TestListCmd_Run(t *testing.T) {
	t.Run("emits one record per file", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		root := logTree(t)

		require.NoError(t, (&ListCmd{Path: root}).Run(globals))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Equal(t, "log_file", gjson.Get(line, "type").String())
		}
		assert.Equal(t, "a.log", gjson.Get(lines[0], "name").String())
		assert.Equal(t, filepath.Join(root, "sub", "b.log"), gjson.Get(lines[1], "path").String())
	})

	t.Run("prints a table", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")

		require.NoError(t, (&ListCmd{Path: logTree(t)}).Run(globals))
		assert.Contains(t, stdout.String(), "a.log")
		assert.Contains(t, stdout.String(), "b.log")
		assert.NotContains(t, stdout.String(), "readme.txt")
	})

	t.Run("reports an empty tree", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		require.NoError(t, (&ListCmd{Path: t.TempDir()}).Run(globals))
		assert.Equal(t, "info", gjson.Get(stdout.String(), "type").String())
	})

	t.Run("honours the extension flag", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		require.NoError(t, (&ListCmd{Path: logTree(t), Ext: ".txt"}).Run(globals))
		assert.Equal(t, "readme.txt", gjson.Get(stdout.String(), "name").String())
	})

	t.Run("requires a root", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		assert.Equal(t, "ROOT_REQUIRED", cliCode(t, (&ListCmd{}).Run(globals)))
	})
}

// --- Analyze Command Tests ---

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Run("outputs counts in NDJSON", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "INFO start\nERROR fail\n")

		require.NoError(t, (&AnalyzeCmd{File: file}).Run(globals))

		out := stdout.String()
		assert.Equal(t, "analysis", gjson.Get(out, "type").String())
		assert.Equal(t, int64(1), gjson.Get(out, "result.error_count").Int())
		assert.Equal(t, int64(3), gjson.Get(out, "result.total_lines").Int())
		assert.Equal(t, `{"INFO":1,"ERROR":1}`, gjson.Get(out, "result.event_counts").Raw)
	})

	t.Run("outputs counts as text", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "WARN low disk\n")

		require.NoError(t, (&AnalyzeCmd{File: file}).Run(globals))
		assert.Regexp(t, `Errors:\s+0`, stdout.String())
		assert.Contains(t, stdout.String(), "WARN")
	})

	t.Run("embeds analysis failures in the result", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		file := writeFile(t, filepath.Join(t.TempDir(), "bin.log"), "\xff\n")

		require.NoError(t, (&AnalyzeCmd{File: file}).Run(globals))
		assert.True(t, strings.HasPrefix(gjson.Get(stdout.String(), "result.error").String(), "Failed to analyze log: "))
	})

	t.Run("missing file", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		err := (&AnalyzeCmd{File: filepath.Join(t.TempDir(), "gone.log")}).Run(globals)
		assert.Equal(t, "FILE_NOT_FOUND", cliCode(t, err))
	})

	t.Run("directory", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		err := (&AnalyzeCmd{File: t.TempDir()}).Run(globals)
		assert.Equal(t, "FILE_NOT_FOUND", cliCode(t, err))
	})
}

// --- Tail Command Tests ---

func TestTailCmd_Run(t *testing.T) {
	t.Run("prints the last lines", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "1\n2\n3\n")

		require.NoError(t, (&TailCmd{File: file, Lines: 2}).Run(globals))
		assert.Equal(t, "2\n3\n", stdout.String())
	})

	t.Run("defaults to the configured length", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		globals.Config.TailLines = 1
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "1\n2\n3\n")

		require.NoError(t, (&TailCmd{File: file}).Run(globals))
		assert.Equal(t, "3\n", gjson.Get(stdout.String(), "content").String())
		assert.Equal(t, int64(1), gjson.Get(stdout.String(), "lines").Int())
	})

	t.Run("rejects an explicit zero", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		file := writeFile(t, filepath.Join(t.TempDir(), "a.log"), "1\n")

		err := runArgs(t, globals, "tail", "-n", "0", file)
		assert.Equal(t, "INVALID_LINES", cliCode(t, err))
		assert.Empty(t, stdout.String())
	})

	t.Run("reports read errors", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		err := (&TailCmd{File: filepath.Join(t.TempDir(), "gone.log")}).Run(globals)
		assert.Equal(t, "READ_FAILED", cliCode(t, err))
		assert.True(t, strings.HasPrefix(gjson.Get(stdout.String(), "message").String(), "Error reading file: "))
	})
}

// --- Config Command Tests ---

func TestConfigShowCmd_Run(t *testing.T) {
	t.Run("outputs config in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")

		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "Current Configuration:")
		assert.Contains(t, out, "root:         (not set)")
		assert.Contains(t, out, "tail_lines:   200")
	})

	t.Run("outputs config in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		globals.Config.Exclude = []string{"**/old/**"}

		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		out := stdout.String()
		assert.Equal(t, "config", gjson.Get(out, "type").String())
		assert.Equal(t, int64(200), gjson.Get(out, "tail_lines").Int())
		assert.Equal(t, "**/old/**", gjson.Get(out, "exclude.0").String())
	})
}

func TestConfigPathCmd_Run(t *testing.T) {
	t.Run("outputs path info in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")

		require.NoError(t, (&ConfigPathCmd{}).Run(globals))

		out := stdout.String()
		assert.True(t, strings.Contains(out, "Config file:") || strings.Contains(out, "No configuration file found"))
	})

	t.Run("outputs path in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		require.NoError(t, (&ConfigPathCmd{}).Run(globals))
		assert.Equal(t, "config_path", gjson.Get(stdout.String(), "type").String())
		assert.True(t, gjson.Get(stdout.String(), "searched").IsArray())
		assert.True(t, gjson.Get(stdout.String(), "path").Exists())
	})
}

func TestConfigGenerateCmd_Run(t *testing.T) {
	globals, stdout, _ := testGlobals("text")

	require.NoError(t, (&ConfigGenerateCmd{}).Run(globals))

	out := stdout.String()
	assert.Contains(t, out, "# logview configuration file")
	assert.Contains(t, out, "tail_lines: 200")
	assert.Contains(t, out, "extension: .log")

	// The sample must load cleanly.
	path := filepath.Join(t.TempDir(), "logview.yaml")
	require.NoError(t, os.WriteFile(path, stdout.Bytes(), 0o644))
	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.TailLines)
	assert.True(t, cfg.OpenBrowser)
}

// --- Error Tests ---

func TestCLIError(t *testing.T) {
	err := &CLIError{Code: "READ_FAILED", Message: "boom", Hint: "try again"}
	assert.Equal(t, "READ_FAILED: boom", err.Error())
	assert.Equal(t, "boom", (&CLIError{Message: "boom"}).Error())
	assert.Equal(t, "", (*CLIError)(nil).Error())

	assert.Equal(t, "READ_FAILED", ErrorCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestOutputErrorCommon_Text(t *testing.T) {
	globals, stdout, stderr := testGlobals("text")
	output.PlainStyles()
	defer output.ResetStyles()

	err := outputErrorCommon(globals, "FILE_NOT_FOUND", "gone", "look elsewhere")
	assert.Equal(t, "FILE_NOT_FOUND", ErrorCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error [FILE_NOT_FOUND]: gone\nHint: look elsewhere\n", stderr.String())
}

// --- Version / Globals Tests ---

func TestVersionCmd_Run(t *testing.T) {
	t.Run("ndjson", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		require.NoError(t, (&VersionCmd{}).Run(globals))
		assert.Equal(t, "version", gjson.Get(stdout.String(), "type").String())
		assert.Equal(t, Version, gjson.Get(stdout.String(), "version").String())
	})

	t.Run("text", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&VersionCmd{}).Run(globals))
		assert.Equal(t, "logview version dev (none)\n", stdout.String())
	})
}

func TestNewGlobalsWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Verbose = true
	cfg.Quiet = true

	g := NewGlobalsWithConfig(&CLI{Format: "text"}, cfg)
	assert.True(t, g.Verbose)
	assert.True(t, g.Quiet)
	assert.NotNil(t, g.Opener)
	assert.NotNil(t, g.Clock)

	d := NewGlobals(&CLI{Format: "ndjson"})
	assert.Equal(t, "ndjson", d.Format)
	assert.Equal(t, 200, d.Config.TailLines)
	assert.False(t, d.FlagProvided("path"))
}

func TestGlobals_Debug(t *testing.T) {
	t.Run("silent unless verbose", func(t *testing.T) {
		globals, _, stderr := testGlobals("text")
		globals.Debug("hello %s", "there")
		assert.Empty(t, stderr.String())
	})

	t.Run("writes to stderr when verbose", func(t *testing.T) {
		globals, stdout, stderr := testGlobals("text")
		globals.Verbose = true
		globals.Debug("hello %s", "there")
		assert.Contains(t, stderr.String(), "hello there")
		assert.Empty(t, stdout.String())
	})
}
