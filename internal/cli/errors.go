package cli

import (
	"fmt"

	"github.com/vburojevic/logview/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	cliErr := &CLIError{Code: code, Message: message}
	if len(hint) > 0 {
		cliErr.Hint = hint[0]
	}

	if globals != nil && globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		_ = output.NewTextWriter(globals.Stderr).WriteError(code, message)
		if cliErr.Hint != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", cliErr.Hint)
		}
	}
	return cliErr
}
