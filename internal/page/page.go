package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/vburojevic/logview/internal/discover"
	"github.com/vburojevic/logview/internal/logtail"
	"github.com/vburojevic/logview/internal/output"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Options controls how a page is built
type Options struct {
	Root  string // Scan root shown in the page header
	Home  string // Prefix stripped from category labels
	Lines int    // Tail length per file; logtail.DefaultLines if zero
	Clock clock.Clock

	// Debugf receives per-file read and analysis failures. May be nil.
	Debugf func(format string, args ...interface{})
}

// Page is the view model of the generated document
type Page struct {
	Root        string
	GeneratedAt time.Time
	FileCount   int
	Categories  []CategoryView
}

// CategoryView is one collapsible directory section
type CategoryView struct {
	ID    string
	Label string
	Files []FileView
}

// FileView is one file row with its tail and analysis
type FileView struct {
	ID       string
	Name     string
	Path     string
	Tail     string
	Analysis string
	Failed   bool
}

// Build reads and analyzes every file and assembles the page model.
// DOM ids are positional (cat-N, log-N) so duplicate names never collide.
func Build(files []string, opts Options) *Page {
	if opts.Lines == 0 {
		opts.Lines = logtail.DefaultLines
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	debugf := opts.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	analyzer := output.NewAnalyzer()
	p := &Page{
		Root:        opts.Root,
		GeneratedAt: clk.Now(),
		FileCount:   len(files),
	}

	fileIndex := 0
	for ci, category := range discover.Categorize(files, opts.Home) {
		view := CategoryView{
			ID:    "cat-" + strconv.Itoa(ci),
			Label: category.Label,
		}
		for _, f := range category.Files {
			tail, err := logtail.Read(f.Path, opts.Lines)
			if err != nil {
				debugf("tail %s: %v", f.Path, err)
			}
			result := analyzer.AnalyzeFile(f.Path)
			if result.Failed() {
				debugf("analyze %s: %s", f.Path, result.Error)
			}
			view.Files = append(view.Files, FileView{
				ID:       "log-" + strconv.Itoa(fileIndex),
				Name:     f.Name,
				Path:     f.Path,
				Tail:     tail,
				Analysis: result.String(),
				Failed:   result.Failed(),
			})
			fileIndex++
		}
		p.Categories = append(p.Categories, view)
	}

	return p
}

// Render writes the page as a self-contained HTML document
func (p *Page) Render(w io.Writer) error {
	return indexTemplate.Execute(w, p)
}

// WriteFile renders the page to path, replacing any existing file, and
// returns the path written.
func (p *Page) WriteFile(path string) (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write page: %w", err)
	}
	return path, nil
}

// Generate builds the page for files and writes it to path
func Generate(files []string, path string, opts Options) (string, *Page, error) {
	p := Build(files, opts)
	written, err := p.WriteFile(path)
	if err != nil {
		return "", p, err
	}
	return written, p, nil
}
