package cli

import "errors"

// CLIError is returned by a command once its error record has been written.
// Code is one of ROOT_REQUIRED, ROOT_NOT_FOUND, INVALID_LINES, INVALID_EXCLUDE,
// DISCOVER_FAILED, WRITE_FAILED, BROWSER_FAILED, FILE_NOT_FOUND, READ_FAILED.
type CLIError struct {
	Code    string
	Message string
	Hint    string
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// ErrorCode returns the code of the first CLIError in err's chain, or ""
// when err was not produced by outputErrorCommon.
func ErrorCode(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ""
}
