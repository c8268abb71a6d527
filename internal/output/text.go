package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/vburojevic/logview/internal/domain"
)

// TextWriter writes human-readable output
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteRendered outputs a styled summary of a written page
func (w *TextWriter) WriteRendered(out RenderedOutput) error {
	line := Styles.Success.Render("Wrote") + " " + Styles.Path.Render(out.Path) + "\n"
	line += Styles.Label.Render("  root:       ") + out.Root + "\n"
	line += Styles.Label.Render("  files:      ") + Styles.Value.Render(strconv.Itoa(out.Files)) + "\n"
	line += Styles.Label.Render("  categories: ") + Styles.Value.Render(strconv.Itoa(out.Categories)) + "\n"
	if !out.Opened {
		line += Styles.Label.Render("  open:       ") + out.URL + "\n"
	}
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteCategories outputs discovered files as a table
func (w *TextWriter) WriteCategories(categories []domain.Category) error {
	table := tablewriter.NewWriter(w.w)
	table.Header("Category", "File", "Path")
	for _, c := range categories {
		for _, f := range c.Files {
			if err := table.Append([]string{c.Label, f.Name, f.Path}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

// WriteAnalysis outputs a styled analysis of path
func (w *TextWriter) WriteAnalysis(path string, result domain.AnalysisResult) error {
	header := Styles.Header.Render("Analysis of " + path)
	line := header + "\n"
	if result.Failed() {
		line += Styles.Danger.Render(result.Error) + "\n"
		_, err := io.WriteString(w.w, line)
		return err
	}

	line += Styles.Label.Render("Total lines: ") + Styles.Value.Render(strconv.Itoa(result.TotalLines)) + "\n"
	line += Styles.Label.Render("Errors:      ") + ErrorCountText(result.ErrorCount) + "\n"
	if result.EventCounts.Len() > 0 {
		line += Styles.Label.Render("Events:") + "\n"
		for _, k := range result.EventCounts.Keys() {
			line += "  " + padRight(k, 16) + " " + Styles.Value.Render(strconv.Itoa(result.EventCounts.Get(k))) + "\n"
		}
	}
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteTail outputs tail content unchanged
func (w *TextWriter) WriteTail(content string) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w.w, content)
	return err
}

// WriteInfo outputs an informational line
func (w *TextWriter) WriteInfo(message string) error {
	_, err := io.WriteString(w.w, Styles.Label.Render(message)+"\n")
	return err
}

// WriteError outputs a styled error
func (w *TextWriter) WriteError(code, message string) error {
	errorLabel := Styles.Danger.Render("Error")
	codeStr := Styles.Warning.Render("[" + code + "]")
	line := errorLabel + " " + codeStr + ": " + message + "\n"
	_, err := io.WriteString(w.w, line)
	return err
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
