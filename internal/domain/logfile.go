package domain

// LogFile is a discovered log file identified by its absolute path
type LogFile struct {
	Path     string `json:"path"`
	Name     string `json:"name"`     // Base name, used for display
	Category string `json:"category"` // Parent directory, home prefix stripped
}

// Category groups the log files found in one directory.
// Files keep traversal order.
type Category struct {
	Label string    `json:"label"`
	Files []LogFile `json:"files"`
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
