package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/logview/internal/domain"
)

// NDJSONWriter writes one JSON record per line
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // paths and log text stay readable
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// RenderedOutput reports a written viewer page
type RenderedOutput struct {
	Type          string `json:"type"` // Always "rendered"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	URL           string `json:"url"`
	Root          string `json:"root"`
	Files         int    `json:"files"`
	Categories    int    `json:"categories"`
	Opened        bool   `json:"opened"`
}

// LogFileOutput describes one discovered log file
type LogFileOutput struct {
	Type          string `json:"type"` // Always "log_file"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Name          string `json:"name"`
	Category      string `json:"category"`
}

// AnalysisOutput carries the analysis of one file
type AnalysisOutput struct {
	Type          string                `json:"type"` // Always "analysis"
	SchemaVersion int                   `json:"schemaVersion"`
	Path          string                `json:"path"`
	Result        domain.AnalysisResult `json:"result"`
}

// TailOutput carries the trailing lines of one file
type TailOutput struct {
	Type          string `json:"type"` // Always "tail"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Lines         int    `json:"lines"`
	Content       string `json:"content"`
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Root          string `json:"root,omitempty"`
}

// WriteRendered outputs a rendered-page record
func (w *NDJSONWriter) WriteRendered(out RenderedOutput) error {
	out.Type = "rendered"
	out.SchemaVersion = SchemaVersion
	return w.encoder.Encode(&out)
}

// WriteLogFile outputs one discovered file
func (w *NDJSONWriter) WriteLogFile(f domain.LogFile) error {
	return w.encoder.Encode(&LogFileOutput{
		Type:          "log_file",
		SchemaVersion: SchemaVersion,
		Path:          f.Path,
		Name:          f.Name,
		Category:      f.Category,
	})
}

// WriteAnalysis outputs the analysis of path
func (w *NDJSONWriter) WriteAnalysis(path string, result domain.AnalysisResult) error {
	return w.encoder.Encode(&AnalysisOutput{
		Type:          "analysis",
		SchemaVersion: SchemaVersion,
		Path:          path,
		Result:        result,
	})
}

// WriteTail outputs the tail of path
func (w *NDJSONWriter) WriteTail(path string, lines int, content string) error {
	return w.encoder.Encode(&TailOutput{
		Type:          "tail",
		SchemaVersion: SchemaVersion,
		Path:          path,
		Lines:         lines,
		Content:       content,
	})
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, root string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Root:          root,
	})
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
